package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/tutorbook/internal/calculator"
	"github.com/mmynk/tutorbook/internal/models"
	"github.com/mmynk/tutorbook/internal/repository"
	"github.com/mmynk/tutorbook/internal/storage"
	"github.com/mmynk/tutorbook/internal/validation"
	"github.com/mmynk/tutorbook/pkg/api"
	"github.com/mmynk/tutorbook/pkg/api/apiconnect"
)

// LessonService implements the Connect LessonService
type LessonService struct {
	apiconnect.UnimplementedLessonServiceHandler
	repo   *repository.Repository
	prices *PriceBook
	locks  *tutorLocks
}

// NewLessonService creates a new LessonService.
func NewLessonService(repo *repository.Repository, prices *PriceBook) *LessonService {
	return &LessonService{repo: repo, prices: prices, locks: &tutorLocks{}}
}

// GetLessons returns the tutor's dated lessons ordered by date and time,
// together with templates and recorded salaries.
func (s *LessonService) GetLessons(ctx context.Context, req *connect.Request[api.GetLessonsRequest]) (*connect.Response[api.GetLessonsResponse], error) {
	tutorID, err := resolveTutor(ctx, s.repo, req.Msg.TutorID)
	if err != nil {
		return nil, toConnectError(err)
	}

	slog.Info("GetLessons request", "tutor_id", tutorID)

	snap, err := s.repo.Load(ctx, tutorID)
	if err != nil {
		slog.Error("GetLessons failed", "tutor_id", tutorID, "error", err)
		return nil, toConnectError(err)
	}

	dated, undated := models.SplitDated(snap.Lessons)
	sortLessons(dated)
	if len(undated) > 0 {
		slog.Warn("Tutor has lessons without a date", "tutor_id", tutorID, "count", len(undated))
	}

	return connect.NewResponse(&api.GetLessonsResponse{
		Lessons:   toAPILessons(dated),
		Templates: toAPITemplates(snap.Templates),
		Salaries:  toAPISalaries(tutorID, snap.Salaries),
		Corrupted: len(undated),
		Source:    string(snap.Source),
	}), nil
}

// ReplaceLessons overwrites the tutor's lessons with the valid input records.
// Invalid records are reported back and not saved.
func (s *LessonService) ReplaceLessons(ctx context.Context, req *connect.Request[api.ReplaceLessonsRequest]) (*connect.Response[api.ReplaceLessonsResponse], error) {
	tutorID, err := resolveTutor(ctx, s.repo, req.Msg.TutorID)
	if err != nil {
		return nil, toConnectError(err)
	}

	lessons, rejected := validation.ParseLessons(req.Msg.Lessons)
	slog.Info("ReplaceLessons request", "tutor_id", tutorID, "valid", len(lessons), "rejected", len(rejected))

	defer s.locks.lock(tutorID)()
	if err := s.repo.SaveLessons(ctx, tutorID, lessons); err != nil {
		slog.Error("ReplaceLessons failed", "tutor_id", tutorID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.ReplaceLessonsResponse{
		Saved:    len(lessons),
		Rejected: toAPIRejections(rejected),
	}), nil
}

// AddLesson validates and appends one lesson and returns its price.
// A lesson with the same ID replaces the stored one.
func (s *LessonService) AddLesson(ctx context.Context, req *connect.Request[api.AddLessonRequest]) (*connect.Response[api.AddLessonResponse], error) {
	tutorID, err := resolveTutor(ctx, s.repo, req.Msg.TutorID)
	if err != nil {
		return nil, toConnectError(err)
	}

	lesson, err := validation.Lesson(fromAPILesson(req.Msg.Lesson))
	if err != nil {
		slog.Warn("AddLesson rejected", "tutor_id", tutorID, "error", err)
		return nil, toConnectError(err)
	}
	lesson.TeacherID = tutorID

	slog.Info("AddLesson request", "tutor_id", tutorID, "lesson_id", lesson.ID, "date", lesson.Date)

	unlock := s.locks.lock(tutorID)
	defer unlock()

	snap, err := s.repo.Load(ctx, tutorID)
	if err != nil {
		return nil, toConnectError(err)
	}

	lessons := make([]models.Lesson, 0, len(snap.Lessons)+1)
	for _, l := range snap.Lessons {
		if l.ID != lesson.ID {
			lessons = append(lessons, l)
		}
	}
	lessons = append(lessons, lesson)

	if err := s.repo.SaveLessons(ctx, tutorID, lessons); err != nil {
		slog.Error("AddLesson failed", "tutor_id", tutorID, "error", err)
		return nil, toConnectError(err)
	}

	price := s.prices.For(ctx, tutorID).Price(lesson.Subject, lesson.StudentName, tutorID)
	return connect.NewResponse(&api.AddLessonResponse{Lesson: toAPILesson(lesson), Price: price}), nil
}

// DeleteLesson removes one lesson by ID.
func (s *LessonService) DeleteLesson(ctx context.Context, req *connect.Request[api.DeleteLessonRequest]) (*connect.Response[api.DeleteLessonResponse], error) {
	tutorID, err := resolveTutor(ctx, s.repo, req.Msg.TutorID)
	if err != nil {
		return nil, toConnectError(err)
	}

	lessonID := strings.TrimSpace(req.Msg.LessonID)
	slog.Info("DeleteLesson request", "tutor_id", tutorID, "lesson_id", lessonID)

	removed, err := s.removeWhere(ctx, tutorID, func(l models.Lesson) bool { return l.ID == lessonID })
	if err != nil {
		return nil, toConnectError(err)
	}
	if removed == 0 {
		return nil, toConnectError(fmt.Errorf("lesson %q: %w", lessonID, storage.ErrNotFound))
	}

	return connect.NewResponse(&api.DeleteLessonResponse{}), nil
}

// ClearDay removes every lesson on one date.
func (s *LessonService) ClearDay(ctx context.Context, req *connect.Request[api.ClearDayRequest]) (*connect.Response[api.ClearDayResponse], error) {
	tutorID, err := resolveTutor(ctx, s.repo, req.Msg.TutorID)
	if err != nil {
		return nil, toConnectError(err)
	}

	date := strings.TrimSpace(req.Msg.Date)
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return nil, toConnectError(fmt.Errorf("%w: %q", ErrInvalidDate, req.Msg.Date))
	}

	slog.Info("ClearDay request", "tutor_id", tutorID, "date", date)

	cleared, err := s.removeWhere(ctx, tutorID, func(l models.Lesson) bool { return l.Date == date })
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.ClearDayResponse{Cleared: cleared}), nil
}

// ClearMonth removes every lesson dated within (year, month).
func (s *LessonService) ClearMonth(ctx context.Context, req *connect.Request[api.ClearMonthRequest]) (*connect.Response[api.ClearMonthResponse], error) {
	tutorID, err := resolveTutor(ctx, s.repo, req.Msg.TutorID)
	if err != nil {
		return nil, toConnectError(err)
	}

	period, err := calculator.NewPeriod(req.Msg.Year, req.Msg.Month)
	if err != nil {
		return nil, toConnectError(err)
	}

	slog.Info("ClearMonth request", "tutor_id", tutorID, "year", req.Msg.Year, "month", req.Msg.Month)

	cleared, err := s.removeWhere(ctx, tutorID, period.Contains)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.ClearMonthResponse{Cleared: cleared}), nil
}

// ClearCorrupted purges stored lessons that have no usable date.
func (s *LessonService) ClearCorrupted(ctx context.Context, req *connect.Request[api.ClearCorruptedRequest]) (*connect.Response[api.ClearCorruptedResponse], error) {
	tutorID, err := resolveTutor(ctx, s.repo, req.Msg.TutorID)
	if err != nil {
		return nil, toConnectError(err)
	}

	slog.Info("ClearCorrupted request", "tutor_id", tutorID)

	defer s.locks.lock(tutorID)()

	snap, err := s.repo.Load(ctx, tutorID)
	if err != nil {
		return nil, toConnectError(err)
	}

	dated, undated := models.SplitDated(snap.Lessons)
	if len(undated) > 0 {
		if err := s.repo.SaveLessons(ctx, tutorID, dated); err != nil {
			slog.Error("ClearCorrupted failed", "tutor_id", tutorID, "error", err)
			return nil, toConnectError(err)
		}
	}

	slog.Info("Corrupted lessons cleared", "tutor_id", tutorID, "cleared", len(undated), "kept", len(dated))
	return connect.NewResponse(&api.ClearCorruptedResponse{Cleared: len(undated), Kept: len(dated)}), nil
}

// removeWhere deletes matching lessons and saves only when something changed.
func (s *LessonService) removeWhere(ctx context.Context, tutorID string, match func(models.Lesson) bool) (int, error) {
	defer s.locks.lock(tutorID)()

	snap, err := s.repo.Load(ctx, tutorID)
	if err != nil {
		return 0, err
	}

	kept := make([]models.Lesson, 0, len(snap.Lessons))
	for _, l := range snap.Lessons {
		if !match(l) {
			kept = append(kept, l)
		}
	}
	removed := len(snap.Lessons) - len(kept)
	if removed == 0 {
		return 0, nil
	}

	if err := s.repo.SaveLessons(ctx, tutorID, kept); err != nil {
		slog.Error("Failed to save lessons", "tutor_id", tutorID, "error", err)
		return 0, err
	}
	return removed, nil
}

func sortLessons(lessons []models.Lesson) {
	sort.SliceStable(lessons, func(i, j int) bool {
		if lessons[i].Date != lessons[j].Date {
			return lessons[i].Date < lessons[j].Date
		}
		return lessons[i].Time < lessons[j].Time
	})
}
