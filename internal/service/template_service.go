package service

import (
	"context"
	"log/slog"
	"sync"

	"connectrpc.com/connect"

	"github.com/mmynk/tutorbook/internal/calculator"
	"github.com/mmynk/tutorbook/internal/models"
	"github.com/mmynk/tutorbook/internal/repository"
	"github.com/mmynk/tutorbook/internal/selection"
	"github.com/mmynk/tutorbook/internal/validation"
	"github.com/mmynk/tutorbook/pkg/api"
	"github.com/mmynk/tutorbook/pkg/api/apiconnect"
)

// TemplateService implements the Connect TemplateService
type TemplateService struct {
	apiconnect.UnimplementedTemplateServiceHandler
	repo     *repository.Repository
	expander *calculator.Expander
	locks    *tutorLocks

	mu       sync.Mutex
	machines map[string]*machineEntry
}

type machineEntry struct {
	mu      sync.Mutex
	machine *selection.Machine
}

// NewTemplateService creates a new TemplateService.
func NewTemplateService(repo *repository.Repository, expander *calculator.Expander) *TemplateService {
	return &TemplateService{
		repo:     repo,
		expander: expander,
		locks:    &tutorLocks{},
		machines: make(map[string]*machineEntry),
	}
}

// GetTemplates returns both template buckets.
func (s *TemplateService) GetTemplates(ctx context.Context, req *connect.Request[api.GetTemplatesRequest]) (*connect.Response[api.GetTemplatesResponse], error) {
	tutorID, err := resolveTutor(ctx, s.repo, req.Msg.TutorID)
	if err != nil {
		return nil, toConnectError(err)
	}

	snap, err := s.repo.Load(ctx, tutorID)
	if err != nil {
		slog.Error("GetTemplates failed", "tutor_id", tutorID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.GetTemplatesResponse{
		Templates: toAPITemplates(snap.Templates),
		Source:    string(snap.Source),
	}), nil
}

// ReplaceTemplates overwrites both buckets with the valid input skeletons.
func (s *TemplateService) ReplaceTemplates(ctx context.Context, req *connect.Request[api.ReplaceTemplatesRequest]) (*connect.Response[api.ReplaceTemplatesResponse], error) {
	tutorID, err := resolveTutor(ctx, s.repo, req.Msg.TutorID)
	if err != nil {
		return nil, toConnectError(err)
	}

	odd, rejectedOdd := validation.ParseSkeletons(req.Msg.Odd)
	even, rejectedEven := validation.ParseSkeletons(req.Msg.Even)
	templates := models.Templates{Odd: odd, Even: even}

	slog.Info("ReplaceTemplates request", "tutor_id", tutorID,
		"odd", len(odd), "even", len(even),
		"rejected", len(rejectedOdd)+len(rejectedEven))

	defer s.locks.lock(tutorID)()
	if err := s.repo.SaveTemplates(ctx, tutorID, templates); err != nil {
		slog.Error("ReplaceTemplates failed", "tutor_id", tutorID, "error", err)
		return nil, toConnectError(err)
	}

	stamped := models.Templates{Odd: stamp(odd, tutorID), Even: stamp(even, tutorID)}
	return connect.NewResponse(&api.ReplaceTemplatesResponse{
		Templates:    toAPITemplates(stamped),
		RejectedOdd:  toAPIRejections(rejectedOdd),
		RejectedEven: toAPIRejections(rejectedEven),
	}), nil
}

// ApplyTemplate expands the parity template over every matching day of the month.
func (s *TemplateService) ApplyTemplate(ctx context.Context, req *connect.Request[api.ApplyTemplateRequest]) (*connect.Response[api.ApplyTemplateResponse], error) {
	tutorID, err := resolveTutor(ctx, s.repo, req.Msg.TutorID)
	if err != nil {
		return nil, toConnectError(err)
	}

	parity, err := models.ParseParity(req.Msg.Parity)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	period, err := calculator.NewPeriod(req.Msg.Year, req.Msg.Month)
	if err != nil {
		return nil, toConnectError(err)
	}

	slog.Info("ApplyTemplate request", "tutor_id", tutorID, "parity", parity, "year", period.Year, "month", int(period.Month))

	added, err := s.apply(ctx, tutorID, parity, func(template []models.LessonSkeleton, existing []models.Lesson) []models.Lesson {
		return s.expander.Expand(template, parity, period.Year, period.Month, existing)
	})
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.ApplyTemplateResponse{Added: toAPILessons(added)}), nil
}

// BeginDaySelection starts picking days of a month for the parity template.
func (s *TemplateService) BeginDaySelection(ctx context.Context, req *connect.Request[api.BeginDaySelectionRequest]) (*connect.Response[api.BeginDaySelectionResponse], error) {
	tutorID, err := resolveTutor(ctx, s.repo, req.Msg.TutorID)
	if err != nil {
		return nil, toConnectError(err)
	}

	parity, err := models.ParseParity(req.Msg.Parity)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	period, err := calculator.NewPeriod(req.Msg.Year, req.Msg.Month)
	if err != nil {
		return nil, toConnectError(err)
	}

	entry := s.machine(tutorID)
	entry.mu.Lock()
	defer entry.mu.Unlock()

	if err := entry.machine.Begin(parity, period.Year, period.Month); err != nil {
		return nil, toConnectError(err)
	}

	slog.Info("Day selection started", "tutor_id", tutorID, "parity", parity)
	return connect.NewResponse(&api.BeginDaySelectionResponse{Selection: toAPISelection(entry.machine)}), nil
}

// ToggleDay adds or removes a day of the displayed month.
func (s *TemplateService) ToggleDay(ctx context.Context, req *connect.Request[api.ToggleDayRequest]) (*connect.Response[api.ToggleDayResponse], error) {
	tutorID, err := resolveTutor(ctx, s.repo, req.Msg.TutorID)
	if err != nil {
		return nil, toConnectError(err)
	}

	entry := s.machine(tutorID)
	entry.mu.Lock()
	defer entry.mu.Unlock()

	selected, err := entry.machine.Toggle(req.Msg.Day)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.ToggleDayResponse{
		Selected:  selected,
		Selection: toAPISelection(entry.machine),
	}), nil
}

// ConfirmDaySelection applies the template to the selected days. The
// selection ends whether or not the apply step succeeds.
func (s *TemplateService) ConfirmDaySelection(ctx context.Context, req *connect.Request[api.ConfirmDaySelectionRequest]) (*connect.Response[api.ConfirmDaySelectionResponse], error) {
	tutorID, err := resolveTutor(ctx, s.repo, req.Msg.TutorID)
	if err != nil {
		return nil, toConnectError(err)
	}

	entry := s.machine(tutorID)
	entry.mu.Lock()
	defer entry.mu.Unlock()

	parity := entry.machine.Parity()
	year, month := entry.machine.Month()

	var added []models.Lesson
	err = entry.machine.Confirm(func(days []int) error {
		slog.Info("Applying template to selected days", "tutor_id", tutorID, "parity", parity, "days", days)
		var err error
		added, err = s.apply(ctx, tutorID, parity, func(template []models.LessonSkeleton, existing []models.Lesson) []models.Lesson {
			return s.expander.ExpandDays(template, days, year, month, existing)
		})
		return err
	})
	if err != nil {
		slog.Warn("Day selection not applied", "tutor_id", tutorID, "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.ConfirmDaySelectionResponse{
		Added:     toAPILessons(added),
		Selection: toAPISelection(entry.machine),
	}), nil
}

// CancelDaySelection abandons the current selection.
func (s *TemplateService) CancelDaySelection(ctx context.Context, req *connect.Request[api.CancelDaySelectionRequest]) (*connect.Response[api.CancelDaySelectionResponse], error) {
	tutorID, err := resolveTutor(ctx, s.repo, req.Msg.TutorID)
	if err != nil {
		return nil, toConnectError(err)
	}

	entry := s.machine(tutorID)
	entry.mu.Lock()
	defer entry.mu.Unlock()

	if err := entry.machine.Cancel(); err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&api.CancelDaySelectionResponse{Selection: toAPISelection(entry.machine)}), nil
}

func (s *TemplateService) machine(tutorID string) *machineEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.machines[tutorID]
	if !ok {
		entry = &machineEntry{machine: selection.New()}
		s.machines[tutorID] = entry
	}
	return entry
}

// apply expands the parity template with generate, merges the new lessons into
// the tutor's collection and saves it.
func (s *TemplateService) apply(ctx context.Context, tutorID string, parity models.Parity, generate func(template []models.LessonSkeleton, existing []models.Lesson) []models.Lesson) ([]models.Lesson, error) {
	defer s.locks.lock(tutorID)()

	snap, err := s.repo.Load(ctx, tutorID)
	if err != nil {
		return nil, err
	}

	template := snap.Templates.For(parity)
	if len(template) == 0 {
		return nil, ErrNoTemplate
	}

	added := generate(template, snap.Lessons)
	for i := range added {
		added[i].TeacherID = tutorID
	}
	if len(added) == 0 {
		return nil, nil
	}

	lessons := append(append([]models.Lesson{}, snap.Lessons...), added...)
	if err := s.repo.SaveLessons(ctx, tutorID, lessons); err != nil {
		slog.Error("Failed to save expanded lessons", "tutor_id", tutorID, "error", err)
		return nil, err
	}

	slog.Info("Template applied", "tutor_id", tutorID, "parity", parity, "added", len(added))
	return added, nil
}

func stamp(skeletons []models.LessonSkeleton, tutorID string) []models.LessonSkeleton {
	out := make([]models.LessonSkeleton, len(skeletons))
	for i, sk := range skeletons {
		sk.TeacherID = tutorID
		out[i] = sk
	}
	return out
}
