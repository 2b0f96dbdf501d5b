package models

// Циклы списания подписки. Сумма всегда хранится за один цикл
// и никогда не нормализуется заранее.
const (
	CycleWeekly  = "weekly"
	CycleMonthly = "monthly"
	CycleYearly  = "yearly"
)

// Subscription представляет регулярную подписку пользователя.
// AmountCents — стоимость за один цикл списания в минорных единицах
// валюты (копейки, центы), нормализация к месяцу и году выполняется
// только при расчёте аналитики.
type Subscription struct {
	ID              int     `json:"id"`                // Идентификатор записи
	UserUID         string  `json:"-"`                 // UID владельца
	ServiceName     string  `json:"service_name"`      // Название сервиса
	AmountCents     int     `json:"amount_cents"`      // Стоимость за цикл в минорных единицах
	BillingCycle    string  `json:"billing_cycle"`     // Цикл списания: weekly, monthly или yearly
	Category        string  `json:"category"`          // Категория (свободный текст)
	NextBillingDate string  `json:"next_billing_date"` // Дата следующего списания, 2006-01-02
	IsActive        bool    `json:"is_active"`         // Признак активной подписки
	URL             *string `json:"url,omitempty"`     // Ссылка на сервис (опционально)
	Notes           *string `json:"notes,omitempty"`   // Заметки (опционально)
}

// DummySubscription используется для приёма данных из JSON-запроса
// на создание подписки до их валидации.
type DummySubscription struct {
	ServiceName     string  `json:"service_name" validate:"required"`                              // Название сервиса
	AmountCents     int     `json:"amount_cents" validate:"required,gt=0"`                         // Стоимость за цикл (>0)
	BillingCycle    string  `json:"billing_cycle" validate:"required,oneof=weekly monthly yearly"` // Цикл списания
	Category        string  `json:"category" validate:"required"`                                  // Категория
	NextBillingDate string  `json:"next_billing_date" validate:"required,datetime=2006-01-02"`     // Дата следующего списания
	IsActive        *bool   `json:"is_active,omitempty" validate:"omitempty"`                      // Признак активности (по умолчанию true)
	URL             *string `json:"url,omitempty" validate:"omitempty"`                            // Ссылка на сервис
	Notes           *string `json:"notes,omitempty" validate:"omitempty"`                          // Заметки
}

// DummySubscriptionUpdate используется для частичного обновления подписки.
// Отсутствующие поля не изменяют сохранённые значения.
type DummySubscriptionUpdate struct {
	ServiceName     *string `json:"service_name,omitempty" validate:"omitempty,min=1"`                        // Название сервиса
	AmountCents     *int    `json:"amount_cents,omitempty" validate:"omitempty,gt=0"`                         // Стоимость за цикл (>0)
	BillingCycle    *string `json:"billing_cycle,omitempty" validate:"omitempty,oneof=weekly monthly yearly"` // Цикл списания
	Category        *string `json:"category,omitempty" validate:"omitempty,min=1"`                            // Категория
	NextBillingDate *string `json:"next_billing_date,omitempty" validate:"omitempty,datetime=2006-01-02"`     // Дата следующего списания
	IsActive        *bool   `json:"is_active,omitempty" validate:"omitempty"`                                 // Признак активности
	URL             *string `json:"url,omitempty" validate:"omitempty"`                                       // Ссылка на сервис
	Notes           *string `json:"notes,omitempty" validate:"omitempty"`                                     // Заметки
}

// CategorySpending содержит месячный эквивалент расходов по одной категории.
type CategorySpending struct {
	Category string  `json:"category"` // Категория (точное совпадение строки)
	Amount   float64 `json:"amount"`   // Месячный эквивалент в минорных единицах, округлён до сотых
}

// Analytics содержит агрегат по активным подпискам пользователя.
type Analytics struct {
	MonthlyTotal float64            `json:"monthly_total"` // Сумма месячных эквивалентов, округлена до сотых
	YearlyTotal  float64            `json:"yearly_total"`  // Сумма годовых эквивалентов, округлена до сотых
	ActiveCount  int                `json:"active_count"`  // Количество активных подписок
	ByCategory   []CategorySpending `json:"by_category"`   // Разбивка по категориям в порядке первого появления
}
