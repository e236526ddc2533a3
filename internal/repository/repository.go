// Package repository combines the remote store and the local cache behind an
// explicit SyncPolicy.
//
// Reads always try the store first. A successful read refreshes the cache
// (remote wins on reload); a failed read falls back to the cache and reports
// SourceCache. Writes follow the configured policy.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mmynk/tutorbook/internal/models"
	"github.com/mmynk/tutorbook/internal/storage"
)

// ErrUnavailable marks a failure of the remote store that the cache could not cover.
var ErrUnavailable = errors.New("remote store unavailable")

var cacheFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "tutorbook",
	Subsystem: "repository",
	Name:      "cache_fallbacks_total",
	Help:      "Reads served from the local cache because the remote store failed.",
}, []string{"kind"})

// Snapshot is everything the calendar needs for one tutor.
type Snapshot struct {
	TutorID   string
	Lessons   []models.Lesson
	Templates models.Templates
	Salaries  []models.SalaryRecord
	Source    Source
}

// Repository reads and writes tutor data across the store and the cache.
type Repository struct {
	store  storage.Store
	cache  storage.Cache
	policy SyncPolicy
	now    func() time.Time
}

// Option configures a Repository.
type Option func(*Repository)

// WithCache sets the local cache. A nil cache disables caching.
func WithCache(cache storage.Cache) Option {
	return func(r *Repository) { r.cache = cache }
}

// WithPolicy sets the write policy. The default is PolicyRemoteFirst.
func WithPolicy(policy SyncPolicy) Option {
	return func(r *Repository) { r.policy = policy }
}

// WithClock overrides time.Now, used to bucket undated lessons.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) { r.now = now }
}

// New creates a Repository over store.
func New(store storage.Store, opts ...Option) *Repository {
	r := &Repository{
		store:  store,
		policy: PolicyRemoteFirst,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Policy returns the configured write policy.
func (r *Repository) Policy() SyncPolicy {
	return r.policy
}

func (r *Repository) caching() bool {
	return r.cache != nil && r.policy != PolicyRemoteOnly
}

// ResolveTutorID turns an ID or an email address into a user ID.
// IDs are returned as given; emails need a store lookup.
func (r *Repository) ResolveTutorID(ctx context.Context, idOrEmail string) (string, error) {
	idOrEmail = strings.TrimSpace(idOrEmail)
	if !strings.Contains(idOrEmail, "@") {
		return idOrEmail, nil
	}
	u, err := r.store.GetUserByEmail(ctx, idOrEmail)
	if err != nil {
		return "", r.remoteErr("resolve tutor", err)
	}
	return u.ID, nil
}

// ListTutors returns every EMPLOYEE user sorted by name.
func (r *Repository) ListTutors(ctx context.Context) ([]*models.User, error) {
	users, err := r.store.ListUsersByRole(ctx, models.RoleEmployee)
	if err != nil {
		return nil, r.remoteErr("list tutors", err)
	}
	return users, nil
}

// Load returns the tutor's lessons, templates and salaries.
func (r *Repository) Load(ctx context.Context, tutorID string) (Snapshot, error) {
	u, err := r.store.GetUserByID(ctx, tutorID)
	if err == nil {
		snap := Snapshot{
			TutorID:   tutorID,
			Lessons:   u.Lessons,
			Templates: u.Templates,
			Salaries:  u.Salaries,
			Source:    SourceRemote,
		}
		if r.caching() {
			r.mirror(ctx, snap)
		}
		return snap, nil
	}
	if errors.Is(err, storage.ErrNotFound) || !r.caching() {
		return Snapshot{}, r.remoteErr("load tutor data", err)
	}

	slog.Warn("Remote load failed, falling back to cache", "tutor_id", tutorID, "error", err)
	cacheFallbacks.WithLabelValues("snapshot").Inc()

	snap, cerr := r.loadCached(ctx, tutorID)
	if cerr != nil {
		return Snapshot{}, fmt.Errorf("failed to load cached tutor data: %w: %w", ErrUnavailable, cerr)
	}
	return snap, nil
}

// SaveLessons replaces the tutor's whole lesson collection.
// Every lesson is stamped with the tutor's ID; lessons without a date are not persisted.
func (r *Repository) SaveLessons(ctx context.Context, tutorID string, lessons []models.Lesson) error {
	dated, undated := models.SplitDated(lessons)
	if len(undated) > 0 {
		slog.Warn("Dropping lessons without a date", "tutor_id", tutorID, "count", len(undated))
	}

	stamped := make([]models.Lesson, len(dated))
	for i, l := range dated {
		l.TeacherID = tutorID
		stamped[i] = l
	}

	return r.write("lessons",
		func() error { return r.store.ReplaceLessons(ctx, tutorID, stamped) },
		func() error { return r.cacheLessons(ctx, tutorID, stamped) },
	)
}

// SaveTemplates replaces both template buckets.
func (r *Repository) SaveTemplates(ctx context.Context, tutorID string, templates models.Templates) error {
	stamped := models.Templates{
		Odd:  stampSkeletons(templates.Odd, tutorID),
		Even: stampSkeletons(templates.Even, tutorID),
	}

	return r.write("templates",
		func() error { return r.store.ReplaceTemplates(ctx, tutorID, stamped) },
		func() error { return r.cacheTemplates(ctx, tutorID, stamped) },
	)
}

// SaveSalary records the manual salary for one month.
func (r *Repository) SaveSalary(ctx context.Context, tutorID string, record models.SalaryRecord) error {
	record.TeacherID = ""

	return r.write("salary",
		func() error { return r.store.UpsertSalary(ctx, tutorID, record) },
		func() error {
			var salaries []models.SalaryRecord
			if _, err := r.getJSON(ctx, salariesKey(tutorID), &salaries); err != nil {
				return err
			}
			return r.setJSON(ctx, salariesKey(tutorID), upsertSalary(salaries, record))
		},
	)
}

// LoadPricing returns the tutor's pricing overrides.
func (r *Repository) LoadPricing(ctx context.Context, tutorID string) (models.TutorPricing, Source, error) {
	pricing, err := r.store.GetPricing(ctx, tutorID)
	if err == nil {
		if r.caching() {
			if err := r.setJSON(ctx, pricingKey(tutorID), pricing); err != nil {
				slog.Warn("Failed to mirror pricing to cache", "tutor_id", tutorID, "error", err)
			}
		}
		return pricing, SourceRemote, nil
	}
	if !r.caching() {
		return nil, "", r.remoteErr("load pricing", err)
	}

	slog.Warn("Remote pricing load failed, falling back to cache", "tutor_id", tutorID, "error", err)
	cacheFallbacks.WithLabelValues("pricing").Inc()

	cached := models.TutorPricing{}
	if _, cerr := r.getJSON(ctx, pricingKey(tutorID), &cached); cerr != nil {
		return nil, "", fmt.Errorf("failed to load cached pricing: %w: %w", ErrUnavailable, cerr)
	}
	return cached, SourceCache, nil
}

// SavePricing replaces the tutor's pricing overrides.
func (r *Repository) SavePricing(ctx context.Context, tutorID string, pricing models.TutorPricing) error {
	return r.write("pricing",
		func() error { return r.store.ReplacePricing(ctx, tutorID, pricing) },
		func() error { return r.setJSON(ctx, pricingKey(tutorID), pricing) },
	)
}

// write applies the sync policy to one logical save.
func (r *Repository) write(what string, remote, local func() error) error {
	switch {
	case r.cache == nil || r.policy == PolicyRemoteOnly:
		if err := remote(); err != nil {
			return r.remoteErr("save "+what, err)
		}
	case r.policy == PolicyCacheFirst:
		if err := local(); err != nil {
			return fmt.Errorf("failed to cache %s: %w", what, err)
		}
		if err := remote(); err != nil {
			slog.Warn("Remote save failed, cache is ahead of store", "what", what, "error", err)
			return r.remoteErr("save "+what, err)
		}
	default:
		if err := remote(); err != nil {
			return r.remoteErr("save "+what, err)
		}
		if err := local(); err != nil {
			slog.Warn("Failed to mirror save to cache", "what", what, "error", err)
		}
	}
	return nil
}

// remoteErr wraps a store error. ErrNotFound passes through for the caller to map.
func (r *Repository) remoteErr(op string, err error) error {
	if errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	return fmt.Errorf("failed to %s: %w: %w", op, ErrUnavailable, err)
}

func (r *Repository) mirror(ctx context.Context, snap Snapshot) {
	if err := r.cacheLessons(ctx, snap.TutorID, snap.Lessons); err != nil {
		slog.Warn("Failed to mirror lessons to cache", "tutor_id", snap.TutorID, "error", err)
	}
	if err := r.cacheTemplates(ctx, snap.TutorID, snap.Templates); err != nil {
		slog.Warn("Failed to mirror templates to cache", "tutor_id", snap.TutorID, "error", err)
	}
	if err := r.setJSON(ctx, salariesKey(snap.TutorID), snap.Salaries); err != nil {
		slog.Warn("Failed to mirror salaries to cache", "tutor_id", snap.TutorID, "error", err)
	}
}

func (r *Repository) loadCached(ctx context.Context, tutorID string) (Snapshot, error) {
	snap := Snapshot{TutorID: tutorID, Source: SourceCache}

	keys, err := r.cache.Keys(ctx, lessonsPrefix(tutorID))
	if err != nil {
		return Snapshot{}, err
	}
	for _, key := range keys {
		var year []models.Lesson
		if _, err := r.getJSON(ctx, key, &year); err != nil {
			return Snapshot{}, err
		}
		snap.Lessons = append(snap.Lessons, year...)
	}

	if _, err := r.getJSON(ctx, templateKey(tutorID, models.ParityOdd), &snap.Templates.Odd); err != nil {
		return Snapshot{}, err
	}
	if _, err := r.getJSON(ctx, templateKey(tutorID, models.ParityEven), &snap.Templates.Even); err != nil {
		return Snapshot{}, err
	}
	if _, err := r.getJSON(ctx, salariesKey(tutorID), &snap.Salaries); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// cacheLessons writes one key per year and removes years that no longer hold lessons.
func (r *Repository) cacheLessons(ctx context.Context, tutorID string, lessons []models.Lesson) error {
	byYear := groupByYear(lessons, r.now())

	written := make(map[string]bool, len(byYear))
	for year, ls := range byYear {
		key := lessonsKey(tutorID, year)
		if err := r.setJSON(ctx, key, ls); err != nil {
			return err
		}
		written[key] = true
	}

	stale, err := r.cache.Keys(ctx, lessonsPrefix(tutorID))
	if err != nil {
		return err
	}
	for _, key := range stale {
		if written[key] {
			continue
		}
		if err := r.cache.Delete(ctx, key); err != nil {
			return err
		}
	}
	return nil
}

func (r *Repository) cacheTemplates(ctx context.Context, tutorID string, templates models.Templates) error {
	if err := r.setJSON(ctx, templateKey(tutorID, models.ParityOdd), templates.Odd); err != nil {
		return err
	}
	return r.setJSON(ctx, templateKey(tutorID, models.ParityEven), templates.Even)
}

func (r *Repository) getJSON(ctx context.Context, key string, v any) (bool, error) {
	raw, ok, err := r.cache.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return false, fmt.Errorf("failed to decode cache entry %s: %w", key, err)
	}
	return true, nil
}

func (r *Repository) setJSON(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode cache entry %s: %w", key, err)
	}
	return r.cache.Set(ctx, key, raw)
}

func stampSkeletons(skeletons []models.LessonSkeleton, tutorID string) []models.LessonSkeleton {
	out := make([]models.LessonSkeleton, len(skeletons))
	for i, s := range skeletons {
		s.TeacherID = tutorID
		out[i] = s
	}
	return out
}

func upsertSalary(records []models.SalaryRecord, record models.SalaryRecord) []models.SalaryRecord {
	for i, r := range records {
		if r.Year == record.Year && r.Month == record.Month {
			records[i] = record
			return records
		}
	}
	return append(records, record)
}
