package service

import (
	"context"
	"encoding/json"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/tutorbook/internal/models"
	"github.com/mmynk/tutorbook/pkg/api"
)

func TestAddLesson(t *testing.T) {
	env := setupTestServer(t)
	client := env.lessons(env.tutor)

	resp, err := client.AddLesson(context.Background(), connect.NewRequest(&api.AddLessonRequest{
		Lesson: api.Lesson{Date: "2025-03-04", Time: "10:00", Subject: "sat", StudentName: "Ann, Bo", Duration: 60},
	}))
	if err != nil {
		t.Fatalf("AddLesson failed: %v", err)
	}

	if resp.Msg.Lesson.ID == "" {
		t.Error("expected generated lesson ID")
	}
	if resp.Msg.Lesson.TeacherID != env.tutor.ID {
		t.Errorf("teacherId: expected %s, got %s", env.tutor.ID, resp.Msg.Lesson.TeacherID)
	}
	if resp.Msg.Price != 10 {
		t.Errorf("price: expected 10, got %v", resp.Msg.Price)
	}

	got, err := client.GetLessons(context.Background(), connect.NewRequest(&api.GetLessonsRequest{}))
	if err != nil {
		t.Fatalf("GetLessons failed: %v", err)
	}
	if len(got.Msg.Lessons) != 1 || got.Msg.Lessons[0].ID != resp.Msg.Lesson.ID {
		t.Errorf("lessons: expected the added lesson, got %+v", got.Msg.Lessons)
	}
	if got.Msg.Source != api.SourceRemote {
		t.Errorf("source: expected remote, got %s", got.Msg.Source)
	}
}

func TestAddLesson_ReplacesSameID(t *testing.T) {
	env := setupTestServer(t)
	client := env.lessons(env.tutor)
	env.seedLessons(env.tutor, models.Lesson{ID: "l1", Date: "2025-03-04", Time: "10:00", Subject: "SAT", StudentName: "Ann"})

	_, err := client.AddLesson(context.Background(), connect.NewRequest(&api.AddLessonRequest{
		Lesson: api.Lesson{ID: "l1", Date: "2025-03-04", Time: "11:00", Subject: "SAT", StudentName: "Ann"},
	}))
	if err != nil {
		t.Fatalf("AddLesson failed: %v", err)
	}

	got, err := client.GetLessons(context.Background(), connect.NewRequest(&api.GetLessonsRequest{}))
	if err != nil {
		t.Fatalf("GetLessons failed: %v", err)
	}
	if len(got.Msg.Lessons) != 1 || got.Msg.Lessons[0].Time != "11:00" {
		t.Errorf("lessons: expected one lesson at 11:00, got %+v", got.Msg.Lessons)
	}
}

func TestAddLesson_Invalid(t *testing.T) {
	env := setupTestServer(t)
	client := env.lessons(env.tutor)

	tests := []struct {
		name   string
		lesson api.Lesson
	}{
		{"missing date", api.Lesson{Time: "10:00", Subject: "SAT", StudentName: "Ann"}},
		{"bad date", api.Lesson{Date: "04/03/2025", Time: "10:00", Subject: "SAT", StudentName: "Ann"}},
		{"missing time", api.Lesson{Date: "2025-03-04", Subject: "SAT", StudentName: "Ann"}},
		{"missing subject", api.Lesson{Date: "2025-03-04", Time: "10:00", StudentName: "Ann"}},
		{"missing student", api.Lesson{Date: "2025-03-04", Time: "10:00", Subject: "SAT", StudentName: "  "}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := client.AddLesson(context.Background(), connect.NewRequest(&api.AddLessonRequest{Lesson: tt.lesson}))
			assertCode(t, err, connect.CodeInvalidArgument)
		})
	}

	got, err := client.GetLessons(context.Background(), connect.NewRequest(&api.GetLessonsRequest{}))
	if err != nil {
		t.Fatalf("GetLessons failed: %v", err)
	}
	if len(got.Msg.Lessons) != 0 {
		t.Errorf("expected nothing saved, got %d lessons", len(got.Msg.Lessons))
	}
}

func TestReplaceLessons_QuarantinesInvalidRecords(t *testing.T) {
	env := setupTestServer(t)
	client := env.lessons(env.tutor)

	records := raw(t,
		api.Lesson{ID: "ok1", Date: "2025-03-05", Time: "09:00", Subject: "IELTS", StudentName: "Cy"},
		api.Lesson{ID: "bad", Date: "2025-03-05", Time: "10:00", StudentName: "Cy"},
		api.Lesson{ID: "ok2", Date: "2025-03-06", Time: "09:00", Subject: "Kids", StudentName: "Dee"},
	)
	records = append(records, json.RawMessage(`42`))

	resp, err := client.ReplaceLessons(context.Background(), connect.NewRequest(&api.ReplaceLessonsRequest{Lessons: records}))
	if err != nil {
		t.Fatalf("ReplaceLessons failed: %v", err)
	}

	if resp.Msg.Saved != 2 {
		t.Errorf("saved: expected 2, got %d", resp.Msg.Saved)
	}
	if len(resp.Msg.Rejected) != 2 {
		t.Fatalf("rejected: expected 2, got %+v", resp.Msg.Rejected)
	}
	if resp.Msg.Rejected[0].Index != 1 || resp.Msg.Rejected[0].ID != "bad" {
		t.Errorf("rejected[0]: expected index 1 id bad, got %+v", resp.Msg.Rejected[0])
	}
	if resp.Msg.Rejected[1].Index != 3 {
		t.Errorf("rejected[1]: expected index 3, got %+v", resp.Msg.Rejected[1])
	}

	got, err := client.GetLessons(context.Background(), connect.NewRequest(&api.GetLessonsRequest{}))
	if err != nil {
		t.Fatalf("GetLessons failed: %v", err)
	}
	if len(got.Msg.Lessons) != 2 {
		t.Errorf("lessons: expected 2, got %d", len(got.Msg.Lessons))
	}
}

func TestGetLessons_SortedWithoutCorrupted(t *testing.T) {
	env := setupTestServer(t)
	env.seedLessons(env.tutor,
		models.Lesson{ID: "c", Date: "2025-03-06", Time: "09:00", Subject: "SAT", StudentName: "Ann"},
		models.Lesson{ID: "x", Date: "", Time: "09:00", Subject: "SAT", StudentName: "Ann"},
		models.Lesson{ID: "b", Date: "2025-03-05", Time: "14:00", Subject: "SAT", StudentName: "Ann"},
		models.Lesson{ID: "a", Date: "2025-03-05", Time: "09:30", Subject: "SAT", StudentName: "Ann"},
	)

	got, err := env.lessons(env.tutor).GetLessons(context.Background(), connect.NewRequest(&api.GetLessonsRequest{}))
	if err != nil {
		t.Fatalf("GetLessons failed: %v", err)
	}

	var ids []string
	for _, l := range got.Msg.Lessons {
		ids = append(ids, l.ID)
	}
	if len(ids) != 3 || ids[0] != "a" || ids[1] != "b" || ids[2] != "c" {
		t.Errorf("order: expected [a b c], got %v", ids)
	}
	if got.Msg.Corrupted != 1 {
		t.Errorf("corrupted: expected 1, got %d", got.Msg.Corrupted)
	}
}

func TestDeleteLesson(t *testing.T) {
	env := setupTestServer(t)
	client := env.lessons(env.tutor)
	env.seedLessons(env.tutor,
		models.Lesson{ID: "keep", Date: "2025-03-05", Time: "09:00", Subject: "SAT", StudentName: "Ann"},
		models.Lesson{ID: "drop", Date: "2025-03-05", Time: "10:00", Subject: "SAT", StudentName: "Ann"},
	)

	if _, err := client.DeleteLesson(context.Background(), connect.NewRequest(&api.DeleteLessonRequest{LessonID: "drop"})); err != nil {
		t.Fatalf("DeleteLesson failed: %v", err)
	}

	got, err := client.GetLessons(context.Background(), connect.NewRequest(&api.GetLessonsRequest{}))
	if err != nil {
		t.Fatalf("GetLessons failed: %v", err)
	}
	if len(got.Msg.Lessons) != 1 || got.Msg.Lessons[0].ID != "keep" {
		t.Errorf("lessons: expected only keep, got %+v", got.Msg.Lessons)
	}
}

func TestDeleteLesson_NotFound(t *testing.T) {
	env := setupTestServer(t)

	_, err := env.lessons(env.tutor).DeleteLesson(context.Background(), connect.NewRequest(&api.DeleteLessonRequest{LessonID: "missing"}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestClearDay(t *testing.T) {
	env := setupTestServer(t)
	client := env.lessons(env.tutor)
	env.seedLessons(env.tutor,
		models.Lesson{ID: "a", Date: "2025-03-05", Time: "09:00", Subject: "SAT", StudentName: "Ann"},
		models.Lesson{ID: "b", Date: "2025-03-05", Time: "10:00", Subject: "SAT", StudentName: "Bo"},
		models.Lesson{ID: "c", Date: "2025-03-06", Time: "09:00", Subject: "SAT", StudentName: "Cy"},
	)

	resp, err := client.ClearDay(context.Background(), connect.NewRequest(&api.ClearDayRequest{Date: "2025-03-05"}))
	if err != nil {
		t.Fatalf("ClearDay failed: %v", err)
	}
	if resp.Msg.Cleared != 2 {
		t.Errorf("cleared: expected 2, got %d", resp.Msg.Cleared)
	}

	_, err = client.ClearDay(context.Background(), connect.NewRequest(&api.ClearDayRequest{Date: "March 5"}))
	assertCode(t, err, connect.CodeInvalidArgument)
}

func TestClearMonth(t *testing.T) {
	env := setupTestServer(t)
	client := env.lessons(env.tutor)
	env.seedLessons(env.tutor,
		models.Lesson{ID: "feb", Date: "2025-02-28", Time: "09:00", Subject: "SAT", StudentName: "Ann"},
		models.Lesson{ID: "mar1", Date: "2025-03-01", Time: "09:00", Subject: "SAT", StudentName: "Ann"},
		models.Lesson{ID: "mar31", Date: "2025-03-31", Time: "09:00", Subject: "SAT", StudentName: "Ann"},
		models.Lesson{ID: "apr", Date: "2025-04-01", Time: "09:00", Subject: "SAT", StudentName: "Ann"},
	)

	resp, err := client.ClearMonth(context.Background(), connect.NewRequest(&api.ClearMonthRequest{Year: 2025, Month: 3}))
	if err != nil {
		t.Fatalf("ClearMonth failed: %v", err)
	}
	if resp.Msg.Cleared != 2 {
		t.Errorf("cleared: expected 2, got %d", resp.Msg.Cleared)
	}

	_, err = client.ClearMonth(context.Background(), connect.NewRequest(&api.ClearMonthRequest{Year: 2025, Month: 13}))
	assertCode(t, err, connect.CodeInvalidArgument)
}

func TestClearCorrupted(t *testing.T) {
	env := setupTestServer(t)
	client := env.lessons(env.tutor)
	env.seedLessons(env.tutor,
		models.Lesson{ID: "ok", Date: "2025-03-05", Time: "09:00", Subject: "SAT", StudentName: "Ann"},
		models.Lesson{ID: "empty", Date: "", Time: "09:00", Subject: "SAT", StudentName: "Ann"},
		models.Lesson{ID: "garbage", Date: "someday", Time: "09:00", Subject: "SAT", StudentName: "Ann"},
	)

	resp, err := client.ClearCorrupted(context.Background(), connect.NewRequest(&api.ClearCorruptedRequest{}))
	if err != nil {
		t.Fatalf("ClearCorrupted failed: %v", err)
	}
	if resp.Msg.Cleared != 2 || resp.Msg.Kept != 1 {
		t.Errorf("expected cleared=2 kept=1, got %+v", resp.Msg)
	}

	u, err := env.store.GetUserByID(context.Background(), env.tutor.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if len(u.Lessons) != 1 || u.Lessons[0].ID != "ok" {
		t.Errorf("stored lessons: expected only ok, got %+v", u.Lessons)
	}
}

func TestLessonAccess(t *testing.T) {
	env := setupTestServer(t)
	env.seedLessons(env.other, models.Lesson{ID: "o1", Date: "2025-03-05", Time: "09:00", Subject: "SAT", StudentName: "Ann"})

	t.Run("employee cannot read another tutor", func(t *testing.T) {
		_, err := env.lessons(env.tutor).GetLessons(context.Background(), connect.NewRequest(&api.GetLessonsRequest{TutorID: env.other.ID}))
		assertCode(t, err, connect.CodePermissionDenied)
	})

	t.Run("employee may name themselves by email", func(t *testing.T) {
		_, err := env.lessons(env.tutor).GetLessons(context.Background(), connect.NewRequest(&api.GetLessonsRequest{TutorID: "TUTOR@example.com"}))
		if err != nil {
			t.Fatalf("GetLessons failed: %v", err)
		}
	})

	t.Run("manager reads a tutor by email", func(t *testing.T) {
		resp, err := env.lessons(env.manager).GetLessons(context.Background(), connect.NewRequest(&api.GetLessonsRequest{TutorID: "other@example.com"}))
		if err != nil {
			t.Fatalf("GetLessons failed: %v", err)
		}
		if len(resp.Msg.Lessons) != 1 {
			t.Errorf("lessons: expected 1, got %d", len(resp.Msg.Lessons))
		}
	})

	t.Run("manager gets NotFound for unknown email", func(t *testing.T) {
		_, err := env.lessons(env.manager).GetLessons(context.Background(), connect.NewRequest(&api.GetLessonsRequest{TutorID: "ghost@example.com"}))
		assertCode(t, err, connect.CodeNotFound)
	})

	t.Run("anonymous is rejected", func(t *testing.T) {
		_, err := env.lessons(nil).GetLessons(context.Background(), connect.NewRequest(&api.GetLessonsRequest{}))
		assertCode(t, err, connect.CodeUnauthenticated)
	})
}
