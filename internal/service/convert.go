package service

import (
	"sort"

	"github.com/mmynk/tutorbook/internal/calculator"
	"github.com/mmynk/tutorbook/internal/models"
	"github.com/mmynk/tutorbook/internal/selection"
	"github.com/mmynk/tutorbook/internal/validation"
	"github.com/mmynk/tutorbook/pkg/api"
)

func toAPILesson(l models.Lesson) api.Lesson {
	return api.Lesson{
		ID:            l.ID,
		Date:          l.Date,
		Time:          l.Time,
		Subject:       l.Subject,
		StudentName:   l.StudentName,
		Notes:         l.Notes,
		Duration:      l.Duration,
		IsGroupLesson: l.IsGroupLesson,
		GroupID:       l.GroupID,
		GroupDays:     l.GroupDays,
		TeacherID:     l.TeacherID,
	}
}

func toAPILessons(lessons []models.Lesson) []api.Lesson {
	out := make([]api.Lesson, len(lessons))
	for i, l := range lessons {
		out[i] = toAPILesson(l)
	}
	return out
}

func fromAPILesson(l api.Lesson) models.Lesson {
	return models.Lesson{
		ID:            l.ID,
		Date:          l.Date,
		Time:          l.Time,
		Subject:       l.Subject,
		StudentName:   l.StudentName,
		Notes:         l.Notes,
		Duration:      l.Duration,
		IsGroupLesson: l.IsGroupLesson,
		GroupID:       l.GroupID,
		GroupDays:     l.GroupDays,
		TeacherID:     l.TeacherID,
	}
}

func toAPISkeletons(skeletons []models.LessonSkeleton) []api.LessonSkeleton {
	out := make([]api.LessonSkeleton, len(skeletons))
	for i, s := range skeletons {
		out[i] = api.LessonSkeleton{
			ID:          s.ID,
			Time:        s.Time,
			Subject:     s.Subject,
			StudentName: s.StudentName,
			Notes:       s.Notes,
			Duration:    s.Duration,
			TeacherID:   s.TeacherID,
		}
	}
	return out
}

func toAPITemplates(t models.Templates) api.Templates {
	return api.Templates{
		Odd:  toAPISkeletons(t.Odd),
		Even: toAPISkeletons(t.Even),
	}
}

func toAPISalary(tutorID string, r models.SalaryRecord) api.SalaryRecord {
	return api.SalaryRecord{
		TeacherID: tutorID,
		Year:      r.Year,
		Month:     r.Month,
		Salary:    r.Salary,
	}
}

func toAPISalaries(tutorID string, records []models.SalaryRecord) []api.SalaryRecord {
	out := make([]api.SalaryRecord, len(records))
	for i, r := range records {
		out[i] = toAPISalary(tutorID, r)
	}
	return out
}

func toAPIUser(u *models.User) api.User {
	return api.User{
		ID:    u.ID,
		Email: u.Email,
		Name:  u.Name,
		Role:  string(u.Role),
	}
}

func toAPITiers(tiers []models.PricingTier) []api.PricingTier {
	out := make([]api.PricingTier, len(tiers))
	for i, t := range tiers {
		out[i] = api.PricingTier{MinStudents: t.MinStudents, MaxStudents: t.MaxStudents, Price: t.Price}
	}
	return out
}

func toAPISubjects(table []models.SubjectPricing) []api.SubjectPricing {
	out := make([]api.SubjectPricing, len(table))
	for i, sp := range table {
		out[i] = api.SubjectPricing{Subject: sp.Subject, Tiers: toAPITiers(sp.Tiers)}
	}
	return out
}

// toAPIOverrides lists a tutor's overrides sorted by subject.
func toAPIOverrides(pricing models.TutorPricing) []api.SubjectPricing {
	out := make([]api.SubjectPricing, 0, len(pricing))
	for subject, tiers := range pricing {
		out = append(out, api.SubjectPricing{Subject: subject, Tiers: toAPITiers(tiers)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Subject < out[j].Subject })
	return out
}

func fromAPISubjects(subjects []api.SubjectPricing) []models.SubjectPricing {
	out := make([]models.SubjectPricing, len(subjects))
	for i, sp := range subjects {
		tiers := make([]models.PricingTier, len(sp.Tiers))
		for j, t := range sp.Tiers {
			tiers[j] = models.PricingTier{MinStudents: t.MinStudents, MaxStudents: t.MaxStudents, Price: t.Price}
		}
		out[i] = models.SubjectPricing{Subject: sp.Subject, Tiers: tiers}
	}
	return out
}

func toAPIRejections(rejected []validation.Rejection) []api.Rejection {
	if len(rejected) == 0 {
		return nil
	}
	out := make([]api.Rejection, len(rejected))
	for i, r := range rejected {
		out[i] = api.Rejection{Index: r.Index, ID: r.ID, Reason: r.Reason}
	}
	return out
}

func toAPIReport(r calculator.MonthlyReport) api.MonthlyReport {
	out := api.MonthlyReport{
		Year:      r.Period.Year,
		Month:     int(r.Period.Month),
		Total:     r.Total,
		Count:     r.Count,
		Skipped:   r.Skipped,
		Breakdown: make([]api.BreakdownGroup, len(r.Breakdown)),
	}
	for i, g := range r.Breakdown {
		out.Breakdown[i] = api.BreakdownGroup{
			Subject:      g.Subject,
			StudentCount: g.StudentCount,
			Count:        g.Count,
			UnitPrice:    g.UnitPrice,
			Subtotal:     g.Subtotal,
			Students:     g.Students,
			Lessons:      toAPILessons(g.Lessons),
		}
	}
	return out
}

func toAPISelection(m *selection.Machine) api.SelectionState {
	s := api.SelectionState{State: m.State().String()}
	if m.State() == selection.Idle {
		return s
	}
	year, month := m.Month()
	s.Parity = string(m.Parity())
	s.Year = year
	s.Month = int(month)
	s.Days = m.Selected()
	return s
}
