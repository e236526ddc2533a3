package api

type BreakdownGroup struct {
	Subject      string   `json:"subject"`
	StudentCount int      `json:"studentCount"`
	Count        int      `json:"count"`
	UnitPrice    float64  `json:"unitPrice"`
	Subtotal     float64  `json:"subtotal"`
	Students     []string `json:"students"`
	Lessons      []Lesson `json:"lessons"`
}

type MonthlyReport struct {
	Year      int              `json:"year"`
	Month     int              `json:"month"`
	Total     float64          `json:"total"`
	Count     int              `json:"count"`
	Skipped   int              `json:"skipped"`
	Breakdown []BreakdownGroup `json:"breakdown"`
}

type GetMonthlyReportRequest struct {
	TutorID string `json:"tutorId,omitempty"`
	Year    int    `json:"year"`
	Month   int    `json:"month"`
}

// GetMonthlyReportResponse keeps the computed estimate and the recorded salary apart.
type GetMonthlyReportResponse struct {
	Estimate MonthlyReport `json:"estimate"`
	Actual   *float64      `json:"actual,omitempty"`
	Source   string        `json:"source"`
}

type GetSalaryRequest struct {
	TutorID string `json:"tutorId,omitempty"`
	Year    int    `json:"year"`
	Month   int    `json:"month"`
}

type GetSalaryResponse struct {
	Salary *SalaryRecord `json:"salary,omitempty"`
}

type SetSalaryRequest struct {
	TutorID string  `json:"tutorId,omitempty"`
	Year    int     `json:"year"`
	Month   int     `json:"month"`
	Salary  float64 `json:"salary"`
}

type SetSalaryResponse struct {
	Salary SalaryRecord `json:"salary"`
}
