package api

// Every tutor-scoped request carries TutorID: a user ID or email address.
// Empty means the caller.

type GetLessonsRequest struct {
	TutorID string `json:"tutorId,omitempty"`
}

type GetLessonsResponse struct {
	Lessons   []Lesson       `json:"lessons"`
	Templates Templates      `json:"templates"`
	Salaries  []SalaryRecord `json:"salaries"`
	// Corrupted counts stored lessons without a date; they are not listed.
	Corrupted int    `json:"corrupted"`
	Source    string `json:"source"`
}

type ReplaceLessonsRequest struct {
	TutorID string     `json:"tutorId,omitempty"`
	Lessons RawRecords `json:"lessons"`
}

type ReplaceLessonsResponse struct {
	Saved    int         `json:"saved"`
	Rejected []Rejection `json:"rejected,omitempty"`
}

type AddLessonRequest struct {
	TutorID string `json:"tutorId,omitempty"`
	Lesson  Lesson `json:"lesson"`
}

type AddLessonResponse struct {
	Lesson Lesson  `json:"lesson"`
	Price  float64 `json:"price"`
}

type DeleteLessonRequest struct {
	TutorID  string `json:"tutorId,omitempty"`
	LessonID string `json:"lessonId"`
}

type DeleteLessonResponse struct{}

type ClearDayRequest struct {
	TutorID string `json:"tutorId,omitempty"`
	Date    string `json:"date"`
}

type ClearDayResponse struct {
	Cleared int `json:"cleared"`
}

type ClearMonthRequest struct {
	TutorID string `json:"tutorId,omitempty"`
	Year    int    `json:"year"`
	Month   int    `json:"month"`
}

type ClearMonthResponse struct {
	Cleared int `json:"cleared"`
}

type ClearCorruptedRequest struct {
	TutorID string `json:"tutorId,omitempty"`
}

type ClearCorruptedResponse struct {
	Cleared int `json:"cleared"`
	Kept    int `json:"kept"`
}
