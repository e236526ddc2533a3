package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/tutorbook/internal/repository"
	"github.com/mmynk/tutorbook/pkg/api"
	"github.com/mmynk/tutorbook/pkg/api/apiconnect"
)

// TutorService implements the Connect TutorService
type TutorService struct {
	apiconnect.UnimplementedTutorServiceHandler
	repo *repository.Repository
}

// NewTutorService creates a new TutorService.
func NewTutorService(repo *repository.Repository) *TutorService {
	return &TutorService{repo: repo}
}

// ListTutors returns all EMPLOYEE accounts sorted by name.
func (s *TutorService) ListTutors(ctx context.Context, req *connect.Request[api.ListTutorsRequest]) (*connect.Response[api.ListTutorsResponse], error) {
	if err := requireManager(ctx); err != nil {
		return nil, toConnectError(err)
	}

	tutors, err := s.repo.ListTutors(ctx)
	if err != nil {
		slog.Error("ListTutors failed", "error", err)
		return nil, toConnectError(err)
	}

	out := make([]api.User, len(tutors))
	for i, u := range tutors {
		out[i] = toAPIUser(u)
	}

	slog.Info("ListTutors successful", "count", len(out))
	return connect.NewResponse(&api.ListTutorsResponse{Tutors: out}), nil
}
