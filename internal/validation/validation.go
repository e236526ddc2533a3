// Package validation is the boundary where untyped lesson and template
// records become models. Records that fail validation are rejected with a
// reason instead of flowing into storage.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/mmynk/tutorbook/internal/models"
)

// ErrInvalidLesson wraps every validation failure.
var ErrInvalidLesson = errors.New("invalid lesson")

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Use JSON tag names in errors instead of Go struct names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// LessonInput is the accepted wire shape of a lesson.
type LessonInput struct {
	ID            string `json:"id"`
	Date          string `json:"date" validate:"required,datetime=2006-01-02"`
	Time          string `json:"time" validate:"required,datetime=15:04"`
	Subject       string `json:"subject" validate:"required"`
	StudentName   string `json:"studentName" validate:"required"`
	Notes         string `json:"notes"`
	Duration      int    `json:"duration" validate:"gte=0"`
	IsGroupLesson bool   `json:"isGroupLesson"`
	GroupID       string `json:"groupId"`
	GroupDays     []int  `json:"groupDays" validate:"omitempty,dive,min=1,max=7"`
	TeacherID     string `json:"teacherId"`
}

// SkeletonInput is the accepted wire shape of a template entry.
type SkeletonInput struct {
	ID          string `json:"id"`
	Time        string `json:"time" validate:"required,datetime=15:04"`
	Subject     string `json:"subject" validate:"required"`
	StudentName string `json:"studentName" validate:"required"`
	Notes       string `json:"notes"`
	Duration    int    `json:"duration" validate:"gte=0"`
	TeacherID   string `json:"teacherId"`
}

// Rejection describes one record refused at the boundary.
type Rejection struct {
	Index  int    `json:"index"`
	ID     string `json:"id,omitempty"`
	Reason string `json:"reason"`
}

// Lesson validates a typed lesson, trimming its text fields first.
// A missing ID is filled with a new UUID.
func Lesson(l models.Lesson) (models.Lesson, error) {
	in := LessonInput{
		ID:            strings.TrimSpace(l.ID),
		Date:          strings.TrimSpace(l.Date),
		Time:          strings.TrimSpace(l.Time),
		Subject:       strings.TrimSpace(l.Subject),
		StudentName:   strings.TrimSpace(l.StudentName),
		Notes:         l.Notes,
		Duration:      l.Duration,
		IsGroupLesson: l.IsGroupLesson,
		GroupID:       l.GroupID,
		GroupDays:     l.GroupDays,
		TeacherID:     l.TeacherID,
	}
	if err := check(in); err != nil {
		return models.Lesson{}, err
	}
	if in.ID == "" {
		in.ID = uuid.NewString()
	}
	return models.Lesson{
		ID:            in.ID,
		Date:          in.Date,
		Time:          in.Time,
		Subject:       in.Subject,
		StudentName:   in.StudentName,
		Notes:         in.Notes,
		Duration:      in.Duration,
		IsGroupLesson: in.IsGroupLesson,
		GroupID:       in.GroupID,
		GroupDays:     in.GroupDays,
		TeacherID:     in.TeacherID,
	}, nil
}

// Skeleton validates a typed template entry.
func Skeleton(s models.LessonSkeleton) (models.LessonSkeleton, error) {
	in := SkeletonInput{
		ID:          strings.TrimSpace(s.ID),
		Time:        strings.TrimSpace(s.Time),
		Subject:     strings.TrimSpace(s.Subject),
		StudentName: strings.TrimSpace(s.StudentName),
		Notes:       s.Notes,
		Duration:    s.Duration,
		TeacherID:   s.TeacherID,
	}
	if err := check(in); err != nil {
		return models.LessonSkeleton{}, err
	}
	if in.ID == "" {
		in.ID = uuid.NewString()
	}
	return models.LessonSkeleton{
		ID:          in.ID,
		Time:        in.Time,
		Subject:     in.Subject,
		StudentName: in.StudentName,
		Notes:       in.Notes,
		Duration:    in.Duration,
		TeacherID:   in.TeacherID,
	}, nil
}

// ParseLessons decodes and validates raw lesson records one by one.
// Valid lessons keep their input order; everything else is rejected.
func ParseLessons(raw []json.RawMessage) ([]models.Lesson, []Rejection) {
	var (
		valid    []models.Lesson
		rejected []Rejection
	)
	for i, r := range raw {
		var l models.Lesson
		if err := json.Unmarshal(r, &l); err != nil {
			rejected = append(rejected, Rejection{Index: i, Reason: fmt.Sprintf("malformed record: %v", err)})
			continue
		}
		lesson, err := Lesson(l)
		if err != nil {
			rejected = append(rejected, Rejection{Index: i, ID: l.ID, Reason: err.Error()})
			continue
		}
		valid = append(valid, lesson)
	}
	return valid, rejected
}

// ParseSkeletons decodes and validates raw template records.
func ParseSkeletons(raw []json.RawMessage) ([]models.LessonSkeleton, []Rejection) {
	var (
		valid    []models.LessonSkeleton
		rejected []Rejection
	)
	for i, r := range raw {
		var s models.LessonSkeleton
		if err := json.Unmarshal(r, &s); err != nil {
			rejected = append(rejected, Rejection{Index: i, Reason: fmt.Sprintf("malformed record: %v", err)})
			continue
		}
		sk, err := Skeleton(s)
		if err != nil {
			rejected = append(rejected, Rejection{Index: i, ID: s.ID, Reason: err.Error()})
			continue
		}
		valid = append(valid, sk)
	}
	return valid, rejected
}

func check(v any) error {
	return checkAs(ErrInvalidLesson, v)
}

// checkAs validates v and wraps any failure in sentinel.
func checkAs(sentinel error, v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("%w: %v", sentinel, err)
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, message(fe))
	}
	return fmt.Errorf("%w: %s", sentinel, strings.Join(msgs, "; "))
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "datetime":
		switch fe.Param() {
		case models.DateLayout:
			return fe.Field() + " must be YYYY-MM-DD"
		case models.TimeLayout:
			return fe.Field() + " must be HH:MM"
		}
		return fe.Field() + " has the wrong format"
	case "gte":
		return fe.Field() + " must not be negative"
	case "gt":
		return fe.Field() + " must not be empty"
	case "min", "max":
		return fe.Field() + " must be between 1 and 7"
	default:
		return fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag())
	}
}
