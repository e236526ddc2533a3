package service

import (
	"errors"

	"connectrpc.com/connect"

	"github.com/mmynk/tutorbook/internal/auth"
	"github.com/mmynk/tutorbook/internal/calculator"
	"github.com/mmynk/tutorbook/internal/repository"
	"github.com/mmynk/tutorbook/internal/selection"
	"github.com/mmynk/tutorbook/internal/storage"
	"github.com/mmynk/tutorbook/internal/validation"
)

var (
	ErrNoTemplate       = errors.New("no template configured")
	ErrPermissionDenied = errors.New("not allowed to access another tutor's data")
	ErrManagersOnly     = errors.New("only admins and managers may do this")
	ErrInvalidDate      = errors.New("date must be YYYY-MM-DD")
	ErrInvalidSalary    = errors.New("salary must not be negative")
)

// toConnectError maps domain errors to Connect codes. It is the only place
// where errors become connect.Error.
func toConnectError(err error) *connect.Error {
	var connectErr *connect.Error
	if errors.As(err, &connectErr) {
		return connectErr
	}

	switch {
	case errors.Is(err, validation.ErrInvalidLesson),
		errors.Is(err, validation.ErrInvalidPricing),
		errors.Is(err, calculator.ErrInvalidPeriod),
		errors.Is(err, selection.ErrDayOutside),
		errors.Is(err, auth.ErrWeakPassword),
		errors.Is(err, auth.ErrMissingFields),
		errors.Is(err, ErrInvalidDate),
		errors.Is(err, ErrInvalidSalary):
		return connect.NewError(connect.CodeInvalidArgument, err)
	case errors.Is(err, storage.ErrNotFound):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, auth.ErrEmailExists), errors.Is(err, storage.ErrDuplicateEmail):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, auth.ErrInvalidCredentials),
		errors.Is(err, auth.ErrInvalidToken),
		errors.Is(err, auth.ErrMissingToken):
		return connect.NewError(connect.CodeUnauthenticated, err)
	case errors.Is(err, ErrPermissionDenied), errors.Is(err, ErrManagersOnly):
		return connect.NewError(connect.CodePermissionDenied, err)
	case errors.Is(err, ErrNoTemplate),
		errors.Is(err, selection.ErrBusy),
		errors.Is(err, selection.ErrNotSelecting):
		return connect.NewError(connect.CodeFailedPrecondition, err)
	case errors.Is(err, repository.ErrUnavailable):
		return connect.NewError(connect.CodeUnavailable, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}
