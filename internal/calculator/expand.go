package calculator

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/tutorbook/internal/models"
)

// Expander turns template skeletons into dated lessons.
type Expander struct {
	newID func() string
}

// ExpanderOption configures an Expander.
type ExpanderOption func(*Expander)

// WithIDFunc replaces the UUID generator used for new lesson IDs.
func WithIDFunc(fn func() string) ExpanderOption {
	return func(e *Expander) { e.newID = fn }
}

// NewExpander creates an Expander that assigns UUIDs to generated lessons.
func NewExpander(opts ...ExpanderOption) *Expander {
	e := &Expander{newID: uuid.NewString}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Expand generates a lesson for every skeleton on every day of (year, month)
// whose weekday belongs to parity.
//
// A candidate is dropped when existing already has a lesson at the same date
// and time; subject and students are not part of the key. Accepted lessons
// occupy their slot too, so one call never books a slot twice.
// The caller merges the result into the tutor's collection.
func (e *Expander) Expand(template []models.LessonSkeleton, parity models.Parity, year int, month time.Month, existing []models.Lesson) []models.Lesson {
	var days []int
	for _, day := range MonthDays(year, month) {
		if parity.Includes(day.Weekday()) {
			days = append(days, day.Day())
		}
	}
	return e.generate(template, days, year, month, existing)
}

// ExpandDays is Expand restricted to an explicit set of day numbers instead
// of a parity sweep. Days outside the month are ignored.
func (e *Expander) ExpandDays(template []models.LessonSkeleton, days []int, year int, month time.Month, existing []models.Lesson) []models.Lesson {
	last := DaysIn(year, month)
	seen := make(map[int]bool, len(days))
	var valid []int
	for _, d := range days {
		if d < 1 || d > last || seen[d] {
			continue
		}
		seen[d] = true
		valid = append(valid, d)
	}
	sort.Ints(valid)
	return e.generate(template, valid, year, month, existing)
}

func (e *Expander) generate(template []models.LessonSkeleton, days []int, year int, month time.Month, existing []models.Lesson) []models.Lesson {
	if len(template) == 0 || len(days) == 0 {
		return nil
	}

	occupied := make(map[models.Slot]bool, len(existing))
	for _, l := range existing {
		occupied[l.Slot()] = true
	}

	var out []models.Lesson
	for _, day := range days {
		date := time.Date(year, month, day, 12, 0, 0, 0, time.UTC).Format(models.DateLayout)
		for _, sk := range template {
			candidate := models.Lesson{
				ID:          e.newID(),
				Date:        date,
				Time:        sk.Time,
				Subject:     sk.Subject,
				StudentName: sk.StudentName,
				Notes:       sk.Notes,
				Duration:    sk.Duration,
			}
			if occupied[candidate.Slot()] {
				continue
			}
			occupied[candidate.Slot()] = true
			out = append(out, candidate)
		}
	}
	return out
}

// Expand runs a default Expander.
func Expand(template []models.LessonSkeleton, parity models.Parity, year int, month time.Month, existing []models.Lesson) []models.Lesson {
	return NewExpander().Expand(template, parity, year, month, existing)
}

// DaysIn returns the number of days in (year, month).
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 12, 0, 0, 0, time.UTC).Day()
}

// MonthDays returns every day of (year, month) at 12:00 UTC.
func MonthDays(year int, month time.Month) []time.Time {
	n := DaysIn(year, month)
	days := make([]time.Time, n)
	for i := range days {
		days[i] = time.Date(year, month, i+1, 12, 0, 0, 0, time.UTC)
	}
	return days
}
