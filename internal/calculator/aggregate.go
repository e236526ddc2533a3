package calculator

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/mmynk/tutorbook/internal/models"
)

// ErrInvalidPeriod is returned for a month outside 1..12.
var ErrInvalidPeriod = errors.New("invalid salary period")

// Period is a salary period: the first through the last day of a calendar month.
// Both bounds are at 12:00 UTC so day comparisons never shift across offsets.
type Period struct {
	Year  int
	Month time.Month
	Start time.Time
	End   time.Time
}

// NewPeriod returns the salary period for (year, month).
func NewPeriod(year, month int) (Period, error) {
	if month < 1 || month > 12 {
		return Period{}, fmt.Errorf("%w: month %d", ErrInvalidPeriod, month)
	}
	m := time.Month(month)
	return Period{
		Year:  year,
		Month: m,
		Start: time.Date(year, m, 1, 12, 0, 0, 0, time.UTC),
		End:   time.Date(year, m+1, 0, 12, 0, 0, 0, time.UTC),
	}, nil
}

// Contains reports whether the lesson's date falls in the period.
// Corrupt lessons are never contained.
func (p Period) Contains(l models.Lesson) bool {
	day, ok := l.Day()
	if !ok {
		return false
	}
	day = time.Date(day.Year(), day.Month(), day.Day(), 12, 0, 0, 0, time.UTC)
	return !day.Before(p.Start) && !day.After(p.End)
}

// Filter returns the lessons inside the period.
func (p Period) Filter(lessons []models.Lesson) []models.Lesson {
	var out []models.Lesson
	for _, l := range lessons {
		if p.Contains(l) {
			out = append(out, l)
		}
	}
	return out
}

// BreakdownGroup is one (subject, student count) bucket of a monthly report.
type BreakdownGroup struct {
	Subject      string
	StudentCount int
	Lessons      []models.Lesson
	Count        int
	Subtotal     float64
	// UnitPrice is the fee of one lesson in this group.
	UnitPrice float64
	// Students are the distinct names across the group's lessons, sorted.
	Students []string
}

// MonthlyReport is the computed salary estimate for one month.
type MonthlyReport struct {
	Period    Period
	Total     float64
	Count     int
	Breakdown []BreakdownGroup
	// Skipped counts corrupt lessons left out of the computation.
	Skipped int
}

type groupKey struct {
	subject string
	count   int
}

// Aggregate sums lesson fees over the salary period of (year, month).
func (c *Calculator) Aggregate(lessons []models.Lesson, year, month int, tutorID string) (MonthlyReport, error) {
	period, err := NewPeriod(year, month)
	if err != nil {
		return MonthlyReport{}, err
	}

	report := MonthlyReport{Period: period}
	groups := make(map[groupKey]*BreakdownGroup)

	for _, l := range lessons {
		if !l.HasDate() {
			report.Skipped++
			continue
		}
		if !period.Contains(l) {
			continue
		}

		count := StudentCount(l.StudentName)
		price := c.PriceForCount(l.Subject, count, tutorID)
		report.Total += price
		report.Count++

		key := groupKey{subject: l.Subject, count: count}
		g, ok := groups[key]
		if !ok {
			g = &BreakdownGroup{Subject: l.Subject, StudentCount: count, UnitPrice: price}
			groups[key] = g
		}
		g.Lessons = append(g.Lessons, l)
		g.Count++
		g.Subtotal += price
	}

	report.Breakdown = make([]BreakdownGroup, 0, len(groups))
	for _, g := range groups {
		sort.SliceStable(g.Lessons, func(i, j int) bool {
			if g.Lessons[i].Date != g.Lessons[j].Date {
				return g.Lessons[i].Date < g.Lessons[j].Date
			}
			return g.Lessons[i].Time < g.Lessons[j].Time
		})
		g.Students = distinctStudents(g.Lessons)
		report.Breakdown = append(report.Breakdown, *g)
	}
	sort.Slice(report.Breakdown, func(i, j int) bool {
		a, b := report.Breakdown[i], report.Breakdown[j]
		if a.Subject != b.Subject {
			return a.Subject < b.Subject
		}
		return a.StudentCount < b.StudentCount
	})

	return report, nil
}

func distinctStudents(lessons []models.Lesson) []string {
	set := make(map[string]bool)
	for _, l := range lessons {
		for _, name := range StudentNames(l.StudentName) {
			set[name] = true
		}
	}
	names := make([]string, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
