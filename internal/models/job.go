package models

// Статусы воронки отклика на вакансию.
const (
	StatusNotApplied   = "not_applied"
	StatusApplied      = "applied"
	StatusInterviewing = "interviewing"
	StatusOffer        = "offer"
	StatusRejected     = "rejected"
)

// IsValidJobStatus сообщает, входит ли status в набор статусов воронки.
func IsValidJobStatus(status string) bool {
	switch status {
	case StatusNotApplied, StatusApplied, StatusInterviewing, StatusOffer, StatusRejected:
		return true
	}
	return false
}

// JobApplication представляет отклик пользователя на вакансию.
type JobApplication struct {
	ID            int     `json:"id"`                        // Идентификатор записи
	UserUID       string  `json:"-"`                         // UID владельца
	CompanyName   string  `json:"company_name"`              // Название компании
	Position      string  `json:"position"`                  // Должность
	Status        string  `json:"status"`                    // Статус воронки
	DueDate       *string `json:"due_date,omitempty"`        // Дедлайн подачи, 2006-01-02 (опционально)
	AppliedDate   *string `json:"applied_date,omitempty"`    // Дата подачи, 2006-01-02 (опционально)
	JobPostingURL *string `json:"job_posting_url,omitempty"` // Ссылка на вакансию (опционально)
	Notes         *string `json:"notes,omitempty"`           // Заметки (опционально)
	Salary        *string `json:"salary,omitempty"`          // Зарплатная вилка (опционально)
	Location      *string `json:"location,omitempty"`        // Локация (опционально)
}

// DummyJobApplication используется для приёма данных из JSON-запроса
// на создание отклика до их валидации.
type DummyJobApplication struct {
	CompanyName   string  `json:"company_name" validate:"required"`                                             // Название компании
	Position      string  `json:"position" validate:"required"`                                                 // Должность
	Status        string  `json:"status" validate:"required,oneof=not_applied applied interviewing offer rejected"` // Статус воронки
	DueDate       *string `json:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`                  // Дедлайн подачи
	AppliedDate   *string `json:"applied_date,omitempty" validate:"omitempty,datetime=2006-01-02"`              // Дата подачи
	JobPostingURL *string `json:"job_posting_url,omitempty" validate:"omitempty"`                               // Ссылка на вакансию
	Notes         *string `json:"notes,omitempty" validate:"omitempty"`                                         // Заметки
	Salary        *string `json:"salary,omitempty" validate:"omitempty"`                                        // Зарплатная вилка
	Location      *string `json:"location,omitempty" validate:"omitempty"`                                      // Локация
}

// DummyJobApplicationUpdate используется для частичного обновления отклика.
// Отсутствующие поля не изменяют сохранённые значения.
type DummyJobApplicationUpdate struct {
	CompanyName   *string `json:"company_name,omitempty" validate:"omitempty,min=1"`                                         // Название компании
	Position      *string `json:"position,omitempty" validate:"omitempty,min=1"`                                             // Должность
	Status        *string `json:"status,omitempty" validate:"omitempty,oneof=not_applied applied interviewing offer rejected"` // Статус воронки
	DueDate       *string `json:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`                               // Дедлайн подачи
	AppliedDate   *string `json:"applied_date,omitempty" validate:"omitempty,datetime=2006-01-02"`                           // Дата подачи
	JobPostingURL *string `json:"job_posting_url,omitempty" validate:"omitempty"`                                            // Ссылка на вакансию
	Notes         *string `json:"notes,omitempty" validate:"omitempty"`                                                      // Заметки
	Salary        *string `json:"salary,omitempty" validate:"omitempty"`                                                     // Зарплатная вилка
	Location      *string `json:"location,omitempty" validate:"omitempty"`                                                   // Локация
}

// JobStats содержит количество откликов пользователя по каждому статусу воронки.
type JobStats struct {
	Total        int `json:"total"`        // Общее количество откликов
	NotApplied   int `json:"not_applied"`  // Ещё не поданные
	Applied      int `json:"applied"`      // Поданные
	Interviewing int `json:"interviewing"` // На этапе собеседований
	Offer        int `json:"offer"`        // С оффером
	Rejected     int `json:"rejected"`     // Отклонённые
}
