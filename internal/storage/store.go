// Package storage provides abstractions for persistent data storage.
//
// Two kinds of backends exist: a Store is the authoritative remote copy of
// user documents, a Cache is the local key/value mirror used as a fallback
// when the Store cannot be reached.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/tutorbook/internal/models"
)

var (
	// ErrNotFound is returned when a user document does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicateEmail is returned when creating a user whose email is taken.
	ErrDuplicateEmail = errors.New("email already registered")
)

// Store defines the remote persistence operations on user documents.
// This abstraction allows swapping storage backends (MongoDB, in-memory)
// without changing the service layer.
type Store interface {
	// CreateUser persists a new user. user.ID is populated by the store.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByID returns ErrNotFound when no user has the ID.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// GetUserByEmail returns ErrNotFound when no user has the email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// ListUsersByRole returns users with the role sorted by name.
	ListUsersByRole(ctx context.Context, role models.Role) ([]*models.User, error)

	// UpdateUserRole changes the role of an existing user.
	UpdateUserRole(ctx context.Context, id string, role models.Role) error

	// UpdatePassword replaces the password hash of an existing user.
	UpdatePassword(ctx context.Context, id, passwordHash string) error

	// ReplaceLessons overwrites the user's whole lesson collection.
	ReplaceLessons(ctx context.Context, userID string, lessons []models.Lesson) error

	// ReplaceTemplates overwrites both template buckets.
	ReplaceTemplates(ctx context.Context, userID string, templates models.Templates) error

	// UpsertSalary sets the manual salary for (record.Year, record.Month).
	UpsertSalary(ctx context.Context, userID string, record models.SalaryRecord) error

	// GetPricing returns the tutor's pricing overrides; empty when none are stored.
	GetPricing(ctx context.Context, userID string) (models.TutorPricing, error)

	// ReplacePricing overwrites the tutor's pricing overrides.
	ReplacePricing(ctx context.Context, userID string, pricing models.TutorPricing) error

	// Close releases any resources held by the store.
	Close() error
}

// Cache is a local key/value store holding JSON documents.
type Cache interface {
	// Get returns ok=false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)

	Set(ctx context.Context, key string, value []byte) error

	Delete(ctx context.Context, key string) error

	// Keys lists every key starting with prefix.
	Keys(ctx context.Context, prefix string) ([]string, error)

	Close() error
}
