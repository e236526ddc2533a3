package mongostore

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mmynk/tutorbook/internal/models"
)

func TestToDocumentDefaults(t *testing.T) {
	doc := toDocument(&models.User{Email: " Bob@X.com ", Name: "Bob"})

	if doc.Email != "bob@x.com" {
		t.Errorf("Email = %q, want bob@x.com", doc.Email)
	}
	if doc.Role != models.RoleEmployee {
		t.Errorf("Role = %q, want EMPLOYEE", doc.Role)
	}
	if !doc.ID.IsZero() {
		t.Errorf("ID = %v, want zero so the server assigns one", doc.ID)
	}
	if doc.Lessons == nil || doc.Templates.Odd == nil || doc.Templates.Even == nil || doc.Salaries == nil {
		t.Error("Expected empty arrays, not nil, so documents never hold null collections")
	}
	if doc.CreatedAt.IsZero() {
		t.Error("Expected CreatedAt to be set")
	}
}

func TestUserDocumentBSONRoundTrip(t *testing.T) {
	oid := primitive.NewObjectID()
	in := userDocument{
		ID:    oid,
		Email: "a@x.com",
		Name:  "A",
		Role:  models.RoleManager,
		Lessons: []models.Lesson{
			{ID: "l1", Date: "2025-03-03", Time: "10:00", Subject: "SAT", StudentName: "Ann, Bo", Duration: 60, TeacherID: oid.Hex()},
		},
		Templates: models.Templates{
			Odd:  []models.LessonSkeleton{{ID: "s1", Time: "09:00", Subject: "IELTS", StudentName: "Cy"}},
			Even: []models.LessonSkeleton{},
		},
		Salaries: []models.SalaryRecord{{TeacherID: "ignored", Year: 2025, Month: 3, Salary: 500}},
	}

	raw, err := bson.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var fields bson.M
	if err := bson.Unmarshal(raw, &fields); err != nil {
		t.Fatalf("Unmarshal to map failed: %v", err)
	}
	for _, key := range []string{"_id", "email", "name", "role", "lessons", "templates", "salaries", "createdAt", "updatedAt"} {
		if _, ok := fields[key]; !ok {
			t.Errorf("missing field %q", key)
		}
	}

	var out userDocument
	if err := bson.Unmarshal(raw, &out); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	u := out.toModel()
	if u.ID != oid.Hex() {
		t.Errorf("ID = %s, want %s", u.ID, oid.Hex())
	}
	if len(u.Lessons) != 1 || u.Lessons[0].StudentName != "Ann, Bo" {
		t.Errorf("Lessons = %+v", u.Lessons)
	}
	if len(u.Templates.Odd) != 1 || u.Templates.Odd[0].Subject != "IELTS" {
		t.Errorf("Templates.Odd = %+v", u.Templates.Odd)
	}
	if len(u.Salaries) != 1 || u.Salaries[0].TeacherID != "" {
		t.Errorf("Salaries = %+v, want teacherId not persisted", u.Salaries)
	}
}

func TestParseID(t *testing.T) {
	oid := primitive.NewObjectID()
	if got, ok := parseID(oid.Hex()); !ok || got != oid {
		t.Errorf("parseID(valid) = %v, %v", got, ok)
	}
	if _, ok := parseID("not-an-object-id"); ok {
		t.Error("parseID(invalid) ok = true, want false")
	}
}
