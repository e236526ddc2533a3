package service

import (
	"context"
	"strings"

	"github.com/mmynk/tutorbook/internal/auth"
	"github.com/mmynk/tutorbook/internal/middleware"
	"github.com/mmynk/tutorbook/internal/repository"
)

// resolveTutor returns the user ID a request operates on. An empty requested
// value means the caller. EMPLOYEE callers may only address themselves.
func resolveTutor(ctx context.Context, repo *repository.Repository, requested string) (string, error) {
	callerID := middleware.GetUserID(ctx)
	if callerID == "" {
		return "", auth.ErrMissingToken
	}

	requested = strings.TrimSpace(requested)
	if requested == "" || requested == callerID || strings.EqualFold(requested, middleware.GetEmail(ctx)) {
		return callerID, nil
	}

	if !middleware.GetRole(ctx).CanManageOthers() {
		return "", ErrPermissionDenied
	}
	return repo.ResolveTutorID(ctx, requested)
}

// requireManager fails unless the caller is an ADMIN or MANAGER.
func requireManager(ctx context.Context) error {
	if middleware.GetUserID(ctx) == "" {
		return auth.ErrMissingToken
	}
	if !middleware.GetRole(ctx).CanManageOthers() {
		return ErrManagersOnly
	}
	return nil
}
