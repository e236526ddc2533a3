package mongostore

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mmynk/tutorbook/internal/models"
)

// userDocument is the persisted shape of a user.
type userDocument struct {
	ID           primitive.ObjectID    `bson:"_id,omitempty"`
	Email        string                `bson:"email"`
	Name         string                `bson:"name"`
	Role         models.Role           `bson:"role"`
	PasswordHash string                `bson:"passwordHash,omitempty"`
	Lessons      []models.Lesson       `bson:"lessons"`
	Templates    models.Templates      `bson:"templates"`
	Salaries     []models.SalaryRecord `bson:"salaries"`
	CreatedAt    time.Time             `bson:"createdAt"`
	UpdatedAt    time.Time             `bson:"updatedAt"`
}

// pricingDocument is keyed by the tutor's user ID.
type pricingDocument struct {
	TutorID   string              `bson:"_id"`
	Subjects  models.TutorPricing `bson:"subjects"`
	UpdatedAt time.Time           `bson:"updatedAt"`
}

func toDocument(u *models.User) userDocument {
	doc := userDocument{
		Email:        models.NormalizeEmail(u.Email),
		Name:         u.Name,
		Role:         u.Role,
		PasswordHash: u.PasswordHash,
		Lessons:      u.Lessons,
		Templates:    u.Templates,
		Salaries:     u.Salaries,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
	if oid, ok := parseID(u.ID); ok {
		doc.ID = oid
	}
	if doc.Role == "" {
		doc.Role = models.RoleEmployee
	}
	if doc.Lessons == nil {
		doc.Lessons = []models.Lesson{}
	}
	if doc.Templates.Odd == nil {
		doc.Templates.Odd = []models.LessonSkeleton{}
	}
	if doc.Templates.Even == nil {
		doc.Templates.Even = []models.LessonSkeleton{}
	}
	if doc.Salaries == nil {
		doc.Salaries = []models.SalaryRecord{}
	}
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
		doc.UpdatedAt = doc.CreatedAt
	}
	return doc
}

func (d userDocument) toModel() *models.User {
	return &models.User{
		ID:           d.ID.Hex(),
		Name:         d.Name,
		Email:        d.Email,
		Role:         d.Role,
		PasswordHash: d.PasswordHash,
		Lessons:      d.Lessons,
		Templates:    d.Templates,
		Salaries:     d.Salaries,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

// parseID converts a hex user ID. Malformed IDs cannot match any document.
func parseID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}
