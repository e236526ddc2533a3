// Package memstore provides an in-memory implementation of storage.Store.
// It backs tests and local runs without a MongoDB instance.
package memstore

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/tutorbook/internal/models"
	"github.com/mmynk/tutorbook/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store keeps user documents in a map guarded by a RWMutex.
type Store struct {
	mu      sync.RWMutex
	users   map[string]*models.User
	pricing map[string]models.TutorPricing
}

// New creates an empty Store.
func New() *Store {
	return &Store{
		users:   make(map[string]*models.User),
		pricing: make(map[string]models.TutorPricing),
	}
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := models.NormalizeEmail(user.Email)
	for _, u := range s.users {
		if u.Email == email {
			return storage.ErrDuplicateEmail
		}
	}

	user.ID = uuid.New().String()
	user.Email = email
	if user.Role == "" {
		user.Role = models.RoleEmployee
	}
	s.users[user.ID] = clone(user)
	return nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return clone(u), nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	email = models.NormalizeEmail(email)
	for _, u := range s.users {
		if u.Email == email {
			return clone(u), nil
		}
	}
	return nil, storage.ErrNotFound
}

func (s *Store) ListUsersByRole(ctx context.Context, role models.Role) ([]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var res []*models.User
	for _, u := range s.users {
		if u.Role == role {
			res = append(res, clone(u))
		}
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].Name != res[j].Name {
			return res[i].Name < res[j].Name
		}
		return res[i].ID < res[j].ID
	})
	return res, nil
}

func (s *Store) UpdateUserRole(ctx context.Context, id string, role models.Role) error {
	return s.update(id, func(u *models.User) { u.Role = role })
}

func (s *Store) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return s.update(id, func(u *models.User) { u.PasswordHash = passwordHash })
}

func (s *Store) ReplaceLessons(ctx context.Context, userID string, lessons []models.Lesson) error {
	return s.update(userID, func(u *models.User) { u.Lessons = slices.Clone(lessons) })
}

func (s *Store) ReplaceTemplates(ctx context.Context, userID string, templates models.Templates) error {
	return s.update(userID, func(u *models.User) {
		u.Templates = models.Templates{
			Odd:  slices.Clone(templates.Odd),
			Even: slices.Clone(templates.Even),
		}
	})
}

func (s *Store) UpsertSalary(ctx context.Context, userID string, record models.SalaryRecord) error {
	return s.update(userID, func(u *models.User) {
		record.TeacherID = ""
		for i, r := range u.Salaries {
			if r.Year == record.Year && r.Month == record.Month {
				u.Salaries[i] = record
				return
			}
		}
		u.Salaries = append(u.Salaries, record)
	})
}

func (s *Store) GetPricing(ctx context.Context, userID string) (models.TutorPricing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res := make(models.TutorPricing)
	for subject, tiers := range s.pricing[userID] {
		res[subject] = slices.Clone(tiers)
	}
	return res, nil
}

func (s *Store) ReplacePricing(ctx context.Context, userID string, pricing models.TutorPricing) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := make(models.TutorPricing, len(pricing))
	for subject, tiers := range pricing {
		cp[subject] = slices.Clone(tiers)
	}
	s.pricing[userID] = cp
	return nil
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) update(id string, fn func(u *models.User)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return storage.ErrNotFound
	}
	fn(u)
	u.UpdatedAt = time.Now().UTC()
	return nil
}

// clone copies the user so callers never share slices with the store.
func clone(u *models.User) *models.User {
	cp := *u
	cp.Lessons = slices.Clone(u.Lessons)
	cp.Templates = models.Templates{
		Odd:  slices.Clone(u.Templates.Odd),
		Even: slices.Clone(u.Templates.Even),
	}
	cp.Salaries = slices.Clone(u.Salaries)
	return &cp
}
