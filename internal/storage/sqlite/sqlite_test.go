package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestSQLiteCache(t *testing.T) {
	// Create temp directory for test database
	tempDir, err := os.MkdirTemp("", "tutorbook-test-*")
	if err != nil {
		t.Fatalf("Failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	dbPath := filepath.Join(tempDir, "nested", "cache.db")
	cache, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to create cache: %v", err)
	}
	defer cache.Close()

	ctx := context.Background()

	t.Run("Get on missing key", func(t *testing.T) {
		_, ok, err := cache.Get(ctx, "missing")
		if err != nil {
			t.Fatalf("Get failed: %v", err)
		}
		if ok {
			t.Error("Expected ok=false for missing key")
		}
	})

	t.Run("Set then Get", func(t *testing.T) {
		if err := cache.Set(ctx, "lessons/t1/2025", []byte(`[{"id":"a"}]`)); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		got, ok, err := cache.Get(ctx, "lessons/t1/2025")
		if err != nil || !ok {
			t.Fatalf("Get failed: ok=%v err=%v", ok, err)
		}
		if string(got) != `[{"id":"a"}]` {
			t.Errorf("value = %s", got)
		}
	})

	t.Run("Set overwrites", func(t *testing.T) {
		if err := cache.Set(ctx, "lessons/t1/2025", []byte(`[]`)); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
		got, _, _ := cache.Get(ctx, "lessons/t1/2025")
		if string(got) != `[]` {
			t.Errorf("value = %s, want []", got)
		}
	})

	t.Run("Keys by prefix", func(t *testing.T) {
		for _, k := range []string{"lessons/t1/2024", "lessons/t2/2025", "lessons/t1_x/2025", "template_odd_days/t1"} {
			if err := cache.Set(ctx, k, []byte(`[]`)); err != nil {
				t.Fatalf("Set(%s) failed: %v", k, err)
			}
		}

		keys, err := cache.Keys(ctx, "lessons/t1/")
		if err != nil {
			t.Fatalf("Keys failed: %v", err)
		}
		want := []string{"lessons/t1/2024", "lessons/t1/2025"}
		if !reflect.DeepEqual(keys, want) {
			t.Errorf("Keys = %v, want %v", keys, want)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := cache.Delete(ctx, "lessons/t1/2024"); err != nil {
			t.Fatalf("Delete failed: %v", err)
		}
		if _, ok, _ := cache.Get(ctx, "lessons/t1/2024"); ok {
			t.Error("Expected key to be deleted")
		}
		if err := cache.Delete(ctx, "never-existed"); err != nil {
			t.Errorf("Delete of missing key failed: %v", err)
		}
	})
}

func TestEscapeLike(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"a_b", `a\_b`},
		{"50%", `50\%`},
		{`c:\d`, `c:\\d`},
	}

	for _, tt := range tests {
		if got := escapeLike(tt.in); got != tt.want {
			t.Errorf("escapeLike(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
