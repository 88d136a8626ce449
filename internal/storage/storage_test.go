package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/sisy/internal/constants"
	"github.com/julianstephens/sisy/internal/models"
)

var testNow = time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)

func TestJSONStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "sisy.json")
	s := NewJSONStore(path)
	if err := s.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	if _, err := s.Get("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) error = %v, want ErrNotFound", err)
	}
	if err := s.Put("k", []byte(`{"nested":"json"}`)); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	reopened := NewJSONStore(path)
	if err := reopened.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	got, err := reopened.Get("k")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if string(got) != `{"nested":"json"}` {
		t.Errorf("Get() = %s", got)
	}

	// Init on an existing file keeps its contents.
	if err := reopened.Init(); err != nil {
		t.Fatalf("Init() on existing file error = %v", err)
	}
	if _, err := reopened.Get("k"); err != nil {
		t.Errorf("Get() after re-Init error = %v", err)
	}

	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temp file left behind after save")
	}
}

func TestJSONStoreLoadErrors(t *testing.T) {
	dir := t.TempDir()

	if err := NewJSONStore(filepath.Join(dir, "absent.json")).Load(); err == nil {
		t.Error("Load() expected error for missing file")
	}

	corrupt := filepath.Join(dir, "corrupt.json")
	if err := os.WriteFile(corrupt, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := NewJSONStore(corrupt).Load(); err == nil {
		t.Error("Load() expected error for corrupt file")
	}
}

func TestLoadStateSeedsFirstRun(t *testing.T) {
	st, fresh, err := LoadState(NewMemoryStore(), testNow)
	if err != nil {
		t.Fatalf("LoadState() error = %v", err)
	}
	if !fresh {
		t.Error("LoadState() fresh = false on empty store")
	}
	if len(st.Profile) != 2 {
		t.Fatalf("seeded profile has %d fields, want 2", len(st.Profile))
	}
	for _, f := range st.Profile {
		if f.Group != constants.SeedProfileGroup || f.Value != "" {
			t.Errorf("seeded field %+v, want empty value in group %q", f, constants.SeedProfileGroup)
		}
	}
	if st.Tasks == nil || st.Logs == nil || st.HighlightedIDs == nil {
		t.Error("seeded state has nil slices")
	}
}

func TestStateRoundTrip(t *testing.T) {
	p := NewMemoryStore()
	conv := "conv-1"
	clock := "07:30"
	in := SeedState(testNow)
	in.ConversationID = &conv
	in.Routine = []models.RoutineItem{{ID: "r1", Title: "Run", Time: &clock, RepeatInterval: 2}}

	if err := SaveState(p, in); err != nil {
		t.Fatalf("SaveState() error = %v", err)
	}
	out, fresh, err := LoadState(p, testNow)
	if err != nil {
		t.Fatalf("LoadState() error = %v", err)
	}
	if fresh {
		t.Error("LoadState() fresh = true after save")
	}
	if out.ConversationID == nil || *out.ConversationID != conv {
		t.Errorf("conversation id = %v, want %q", out.ConversationID, conv)
	}
	if len(out.Routine) != 1 || *out.Routine[0].Time != clock {
		t.Errorf("routine = %+v", out.Routine)
	}
}

func TestStateBlobKeys(t *testing.T) {
	p := NewMemoryStore()
	if err := SaveState(p, models.State{}); err != nil {
		t.Fatalf("SaveState() error = %v", err)
	}
	raw, err := p.Get(constants.StateKey)
	if err != nil {
		t.Fatal(err)
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"conversation_id", "chat", "tasks", "routine", "profile", "logs", "highlightedIds"} {
		if _, ok := obj[key]; !ok {
			t.Errorf("state blob missing %q", key)
		}
	}
	if string(obj["tasks"]) != "[]" {
		t.Errorf("tasks = %s, want []", obj["tasks"])
	}
}

func TestSaveStateFailure(t *testing.T) {
	p := NewMemoryStore()
	p.FailPuts = errors.New("disk full")
	if err := SaveState(p, SeedState(testNow)); err == nil {
		t.Error("SaveState() expected error")
	}
	if _, err := p.Get(constants.StateKey); !errors.Is(err, ErrNotFound) {
		t.Error("failed save must not leave a blob")
	}
}

func TestLoadStateCorrupt(t *testing.T) {
	p := NewMemoryStore()
	_ = p.Put(constants.StateKey, []byte("{"))
	if _, _, err := LoadState(p, testNow); err == nil {
		t.Error("LoadState() expected error for corrupt blob")
	}
}

func TestHasEmbeddedCredentials(t *testing.T) {
	tests := []struct {
		connStr string
		want    bool
	}{
		{"postgres://user@localhost/sisy", false},
		{"postgresql://user:pw@localhost/sisy", true},
		{"host=localhost user=sisy", false},
		{"host=localhost PASSWORD=pw", true},
		{"/home/me/.config/sisy/sisy.db", false},
	}
	for _, tt := range tests {
		if got := HasEmbeddedCredentials(tt.connStr); got != tt.want {
			t.Errorf("HasEmbeddedCredentials(%q) = %v, want %v", tt.connStr, got, tt.want)
		}
	}
}
