// Package calendar содержит чистые функции календарной арифметики:
// разбор и форматирование дат вида 2006-01-02, длину месяца
// и подсчёт серии последовательных дней с тренировками.
//
// Все вычисления выполняются по календарной дате UTC, чтобы результат
// не зависел от часового пояса и переходов на летнее время.
package calendar

import (
	"fmt"
	"time"
)

// DayLayout — формат обмена календарными датами во всём API.
const DayLayout = "2006-01-02"

// ParseDay разбирает дату вида 2006-01-02 в полночь UTC.
func ParseDay(s string) (time.Time, error) {
	const op = "calendar.ParseDay"
	t, err := time.Parse(DayLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", op, err)
	}
	return t, nil
}

// FormatDay форматирует дату в строку вида 2006-01-02.
func FormatDay(t time.Time) string {
	return t.Format(DayLayout)
}

// DaysInMonth возвращает количество дней в месяце с учётом високосных лет.
// month должен быть в диапазоне [1, 12].
func DaysInMonth(year, month int) int {
	// День 0 следующего месяца — последний день текущего.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthBounds возвращает полуинтервал [первый день месяца, первый день
// следующего месяца) в виде строк вида 2006-01-02.
func MonthBounds(year, month int) (string, string) {
	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)
	return FormatDay(start), FormatDay(end)
}

// Streak считает количество последовательных календарных дней с завершённой
// тренировкой, заканчивающихся сегодняшним днём. Идём назад от today
// со смещением 0, 1, 2, … и останавливаемся на первом дне, которого нет
// в множестве завершённых дат.
//
// Если сегодняшняя тренировка не завершена, серия равна 0.
// Пустой список дат даёт 0.
func Streak(completedDates []string, today time.Time) int {
	if len(completedDates) == 0 {
		return 0
	}

	set := make(map[string]struct{}, len(completedDates))
	for _, d := range completedDates {
		set[d] = struct{}{}
	}

	day := time.Date(today.UTC().Year(), today.UTC().Month(), today.UTC().Day(), 0, 0, 0, 0, time.UTC)
	streak := 0
	for {
		if _, ok := set[FormatDay(day)]; !ok {
			break
		}
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak
}
