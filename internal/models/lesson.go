package models

import (
	"strings"
	"time"
)

const (
	// DateLayout is the persisted layout of Lesson.Date.
	DateLayout = "2006-01-02"
	// TimeLayout is the persisted layout of Lesson.Time and LessonSkeleton.Time.
	TimeLayout = "15:04"
)

// Lesson represents a single lesson on a tutor's calendar.
type Lesson struct {
	// ID is the unique identifier for the lesson (UUID format for generated lessons).
	ID string `json:"id" bson:"id"`

	// Date is the calendar day of the lesson, "YYYY-MM-DD".
	// Lessons without a parseable date are corrupt and excluded from date-based views.
	Date string `json:"date" bson:"date"`

	// Time is the start time, "HH:MM".
	Time string `json:"time" bson:"time"`

	Subject string `json:"subject" bson:"subject"`

	// StudentName holds one or more comma-separated student names.
	// The number of names drives pricing.
	StudentName string `json:"studentName" bson:"studentName"`

	Notes string `json:"notes,omitempty" bson:"notes,omitempty"`

	// Duration is the lesson length in minutes.
	Duration int `json:"duration" bson:"duration"`

	IsGroupLesson bool   `json:"isGroupLesson,omitempty" bson:"isGroupLesson,omitempty"`
	GroupID       string `json:"groupId,omitempty" bson:"groupId,omitempty"`

	// GroupDays are the weekdays the group attends, 1..7 with 1 = Monday.
	GroupDays []int `json:"groupDays,omitempty" bson:"groupDays,omitempty"`

	// TeacherID is denormalized onto every lesson when it is persisted.
	TeacherID string `json:"teacherId,omitempty" bson:"teacherId,omitempty"`
}

// Day parses the lesson date. ok is false for corrupt records.
func (l Lesson) Day() (day time.Time, ok bool) {
	date := strings.TrimSpace(l.Date)
	if date == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// HasDate reports whether the lesson carries a well-formed date.
func (l Lesson) HasDate() bool {
	_, ok := l.Day()
	return ok
}

// Slot is the (date, time) pair that identifies an occupied calendar slot.
type Slot struct {
	Date string
	Time string
}

// Slot returns the calendar slot the lesson occupies.
func (l Lesson) Slot() Slot {
	return Slot{Date: l.Date, Time: l.Time}
}

// SplitDated separates lessons with a well-formed date from corrupt ones.
func SplitDated(lessons []Lesson) (dated, undated []Lesson) {
	for _, l := range lessons {
		if l.HasDate() {
			dated = append(dated, l)
		} else {
			undated = append(undated, l)
		}
	}
	return dated, undated
}
