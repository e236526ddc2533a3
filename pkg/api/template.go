package api

type GetTemplatesRequest struct {
	TutorID string `json:"tutorId,omitempty"`
}

type GetTemplatesResponse struct {
	Templates Templates `json:"templates"`
	Source    string    `json:"source"`
}

type ReplaceTemplatesRequest struct {
	TutorID string     `json:"tutorId,omitempty"`
	Odd     RawRecords `json:"odd"`
	Even    RawRecords `json:"even"`
}

type ReplaceTemplatesResponse struct {
	Templates Templates `json:"templates"`
	// Rejection indexes are positions within their own list.
	RejectedOdd  []Rejection `json:"rejectedOdd,omitempty"`
	RejectedEven []Rejection `json:"rejectedEven,omitempty"`
}

type ApplyTemplateRequest struct {
	TutorID string `json:"tutorId,omitempty"`
	Parity  string `json:"parity"`
	Year    int    `json:"year"`
	Month   int    `json:"month"`
}

type ApplyTemplateResponse struct {
	Added []Lesson `json:"added"`
}

// SelectionState mirrors the day-selection machine of one tutor.
type SelectionState struct {
	State  string `json:"state"`
	Parity string `json:"parity,omitempty"`
	Year   int    `json:"year,omitempty"`
	Month  int    `json:"month,omitempty"`
	Days   []int  `json:"days,omitempty"`
}

type BeginDaySelectionRequest struct {
	TutorID string `json:"tutorId,omitempty"`
	Parity  string `json:"parity"`
	Year    int    `json:"year"`
	Month   int    `json:"month"`
}

type BeginDaySelectionResponse struct {
	Selection SelectionState `json:"selection"`
}

type ToggleDayRequest struct {
	TutorID string `json:"tutorId,omitempty"`
	Day     int    `json:"day"`
}

type ToggleDayResponse struct {
	Selected  bool           `json:"selected"`
	Selection SelectionState `json:"selection"`
}

type ConfirmDaySelectionRequest struct {
	TutorID string `json:"tutorId,omitempty"`
}

type ConfirmDaySelectionResponse struct {
	Added     []Lesson       `json:"added"`
	Selection SelectionState `json:"selection"`
}

type CancelDaySelectionRequest struct {
	TutorID string `json:"tutorId,omitempty"`
}

type CancelDaySelectionResponse struct {
	Selection SelectionState `json:"selection"`
}
