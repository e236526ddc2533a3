// Package mongostore provides a MongoDB implementation of the storage.Store interface.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mmynk/tutorbook/internal/models"
	"github.com/mmynk/tutorbook/internal/storage"
)

const (
	UsersCollection   = "users"
	PricingCollection = "tutor_pricing"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store keeps one document per user in the users collection and
// per-tutor pricing overrides in tutor_pricing.
type Store struct {
	client  *mongo.Client
	users   *mongo.Collection
	pricing *mongo.Collection
}

// New connects to uri, pings the server and ensures indexes on database.
func New(ctx context.Context, uri, database string) (*Store, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	db := client.Database(database)
	s := &Store{
		client:  client,
		users:   db.Collection(UsersCollection),
		pricing: db.Collection(PricingCollection),
	}

	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return s, nil
}

func (s *Store) ensureIndexes(ctx context.Context) error {
	_, err := s.users.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "role", Value: 1}, {Key: "name", Value: 1}},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Close disconnects the client.
func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	doc := toDocument(user)
	res, err := s.users.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return storage.ErrDuplicateEmail
	}
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid.Hex()
	}
	user.Email = doc.Email
	return nil
}

func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	oid, ok := parseID(id)
	if !ok {
		return nil, storage.ErrNotFound
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"email": models.NormalizeEmail(email)})
}

func (s *Store) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var doc userDocument
	err := s.users.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return doc.toModel(), nil
}

func (s *Store) ListUsersByRole(ctx context.Context, role models.Role) ([]*models.User, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetProjection(bson.M{"lessons": 0, "templates": 0, "salaries": 0, "passwordHash": 0})

	cur, err := s.users.Find(ctx, bson.M{"role": role}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer cur.Close(ctx)

	var users []*models.User
	for cur.Next(ctx) {
		var doc userDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode user: %w", err)
		}
		users = append(users, doc.toModel())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}
	return users, nil
}

func (s *Store) UpdateUserRole(ctx context.Context, id string, role models.Role) error {
	return s.set(ctx, id, bson.M{"role": role})
}

func (s *Store) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return s.set(ctx, id, bson.M{"passwordHash": passwordHash})
}

func (s *Store) ReplaceLessons(ctx context.Context, userID string, lessons []models.Lesson) error {
	if lessons == nil {
		lessons = []models.Lesson{}
	}
	return s.set(ctx, userID, bson.M{"lessons": lessons})
}

func (s *Store) ReplaceTemplates(ctx context.Context, userID string, templates models.Templates) error {
	if templates.Odd == nil {
		templates.Odd = []models.LessonSkeleton{}
	}
	if templates.Even == nil {
		templates.Even = []models.LessonSkeleton{}
	}
	return s.set(ctx, userID, bson.M{"templates": templates})
}

// UpsertSalary replaces the record for the month in place, or appends one.
func (s *Store) UpsertSalary(ctx context.Context, userID string, record models.SalaryRecord) error {
	oid, ok := parseID(userID)
	if !ok {
		return storage.ErrNotFound
	}
	now := time.Now().UTC()

	res, err := s.users.UpdateOne(ctx,
		bson.M{"_id": oid, "salaries": bson.M{"$elemMatch": bson.M{"year": record.Year, "month": record.Month}}},
		bson.M{"$set": bson.M{"salaries.$.salary": record.Salary, "updatedAt": now}},
	)
	if err != nil {
		return fmt.Errorf("failed to update salary: %w", err)
	}
	if res.MatchedCount > 0 {
		return nil
	}

	res, err = s.users.UpdateOne(ctx,
		bson.M{"_id": oid},
		bson.M{
			"$push": bson.M{"salaries": record},
			"$set":  bson.M{"updatedAt": now},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to append salary: %w", err)
	}
	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) GetPricing(ctx context.Context, userID string) (models.TutorPricing, error) {
	var doc pricingDocument
	err := s.pricing.FindOne(ctx, bson.M{"_id": userID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.TutorPricing{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get pricing: %w", err)
	}
	if doc.Subjects == nil {
		doc.Subjects = models.TutorPricing{}
	}
	return doc.Subjects, nil
}

func (s *Store) ReplacePricing(ctx context.Context, userID string, pricing models.TutorPricing) error {
	doc := pricingDocument{
		TutorID:   userID,
		Subjects:  pricing,
		UpdatedAt: time.Now().UTC(),
	}
	_, err := s.pricing.ReplaceOne(ctx, bson.M{"_id": userID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to replace pricing: %w", err)
	}
	return nil
}

// set applies a $set to a single user and bumps updatedAt.
func (s *Store) set(ctx context.Context, id string, fields bson.M) error {
	oid, ok := parseID(id)
	if !ok {
		return storage.ErrNotFound
	}
	fields["updatedAt"] = time.Now().UTC()

	res, err := s.users.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	if res.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}
