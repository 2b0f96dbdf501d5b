package models

// Workout представляет отметку о тренировке пользователя на календарную дату.
// Для пары (пользователь, дата) существует не более одной записи.
type Workout struct {
	ID          int     `json:"id"`                     // Идентификатор записи
	UserUID     string  `json:"-"`                      // UID владельца
	Date        string  `json:"date"`                   // Дата тренировки, 2006-01-02
	Completed   bool    `json:"completed"`              // Признак завершённой тренировки
	WorkoutType *string `json:"workout_type,omitempty"` // Тип тренировки (опционально)
	Notes       *string `json:"notes,omitempty"`        // Заметки (опционально)
}

// DummyWorkout используется для приёма данных из JSON-запроса
// на отметку тренировки до их валидации.
type DummyWorkout struct {
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"` // Дата тренировки
	Completed   bool    `json:"completed"`                                    // Признак завершённой тренировки
	WorkoutType *string `json:"workout_type,omitempty" validate:"omitempty"`  // Тип тренировки
	Notes       *string `json:"notes,omitempty" validate:"omitempty"`         // Заметки
}

// MonthlyStats содержит статистику тренировок за календарный месяц.
type MonthlyStats struct {
	Completed  int `json:"completed"`  // Количество завершённых тренировок
	Total      int `json:"total"`      // Количество дней в месяце
	Percentage int `json:"percentage"` // Процент выполнения, округлён до целого
}
