// Package billing содержит чистые функции нормализации стоимости подписок
// к месячному и годовому эквиваленту для сравнения расходов.
//
// Сумма подписки всегда задана за один цикл списания в минорных единицах
// валюты. Недельный цикл приводится к месяцу с коэффициентом 4.33 —
// среднее количество недель в месяце.
package billing

import (
	"math"

	"github.com/magabrotheeeer/lifetrack-dashboard/internal/models"
)

// WeeksPerMonth — усреднённое количество недель в месяце.
const WeeksPerMonth = 4.33

// MonthlyEquivalent приводит стоимость за один цикл к месячной.
func MonthlyEquivalent(amountCents int, cycle string) float64 {
	a := float64(amountCents)
	switch cycle {
	case models.CycleMonthly:
		return a
	case models.CycleYearly:
		return a / 12
	case models.CycleWeekly:
		return a * WeeksPerMonth
	default:
		return 0
	}
}

// YearlyEquivalent приводит стоимость за один цикл к годовой.
func YearlyEquivalent(amountCents int, cycle string) float64 {
	a := float64(amountCents)
	switch cycle {
	case models.CycleMonthly:
		return a * 12
	case models.CycleYearly:
		return a
	case models.CycleWeekly:
		return a * 52
	default:
		return 0
	}
}

// Round2 округляет значение до двух знаков после запятой.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// Analytics считает агрегат по списку активных подписок: суммы месячных
// и годовых эквивалентов и разбивку месячных эквивалентов по категориям.
//
// Категории сравниваются как точные строки, порядок в разбивке — порядок
// первого появления категории в списке. Пустой список даёт нули
// и пустую разбивку.
func Analytics(subs []*models.Subscription) models.Analytics {
	var monthlyTotal, yearlyTotal float64
	byCategory := make(map[string]float64)
	var order []string

	for _, sub := range subs {
		monthly := MonthlyEquivalent(sub.AmountCents, sub.BillingCycle)
		monthlyTotal += monthly
		yearlyTotal += YearlyEquivalent(sub.AmountCents, sub.BillingCycle)

		if _, ok := byCategory[sub.Category]; !ok {
			order = append(order, sub.Category)
		}
		byCategory[sub.Category] += monthly
	}

	result := models.Analytics{
		MonthlyTotal: Round2(monthlyTotal),
		YearlyTotal:  Round2(yearlyTotal),
		ActiveCount:  len(subs),
		ByCategory:   []models.CategorySpending{},
	}
	for _, category := range order {
		result.ByCategory = append(result.ByCategory, models.CategorySpending{
			Category: category,
			Amount:   Round2(byCategory[category]),
		})
	}
	return result
}
