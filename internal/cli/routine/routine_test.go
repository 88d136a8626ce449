package routine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/julianstephens/sisy/internal/cli"
	"github.com/julianstephens/sisy/internal/service"
	"github.com/julianstephens/sisy/internal/storage"
)

func setupTestContext(t *testing.T) *cli.Context {
	t.Helper()
	svc, err := service.New(service.Options{Store: storage.NewMemoryStore()})
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	return &cli.Context{Service: svc}
}

func ptr[T any](v T) *T { return &v }

func TestRoutineAddEditRevert(t *testing.T) {
	ctx := setupTestContext(t)

	add := &RoutineAddCmd{Name: "Stretch", Fields: Fields{Time: ptr("06:45"), Description: ptr("five minutes")}}
	if err := add.Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	routine := ctx.Service.Snapshot().Routine
	if len(routine) != 1 {
		t.Fatalf("expected 1 routine item, got %d", len(routine))
	}
	id := routine[0].ID

	edit := &RoutineEditCmd{ID: id, Fields: Fields{Description: ptr("ten minutes"), Every: ptr(2)}}
	if err := edit.Run(ctx); err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	item := ctx.Service.Snapshot().Routine[0]
	if item.RepeatInterval != 2 || *item.Description != "ten minutes" {
		t.Errorf("unexpected item after edit: %+v", item)
	}

	if err := (&RoutineRevertCmd{ID: id}).Run(ctx); err != nil {
		t.Fatalf("revert failed: %v", err)
	}
	if got := *ctx.Service.Snapshot().Routine[0].Description; got != "five minutes" {
		t.Errorf("description after revert = %q, want %q", got, "five minutes")
	}

	clearTime := &RoutineEditCmd{ID: id, Fields: Fields{Time: ptr("")}}
	if err := clearTime.Run(ctx); err != nil {
		t.Fatalf("clearing time failed: %v", err)
	}
	if tm := ctx.Service.Snapshot().Routine[0].Time; tm != nil {
		t.Errorf("time should be cleared, got %q", *tm)
	}

	if err := (&RoutineEditCmd{ID: id}).Run(ctx); err == nil {
		t.Error("edit without changes should fail")
	}
}

func TestRoutineImport(t *testing.T) {
	ctx := setupTestContext(t)
	path := filepath.Join(t.TempDir(), "routine.json")
	data := `[{"title":"Read","time":"21:00"},{"title":"Run","time":"07:00","auto_complete":true}]`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := (&RoutineImportCmd{File: path}).Run(ctx); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	routine := ctx.Service.Snapshot().Routine
	if len(routine) != 2 || routine[0].Title != "Run" {
		t.Errorf("unexpected routine after import: %+v", routine)
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(bad, []byte(`[{"time":"07:00"}]`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := (&RoutineImportCmd{File: bad}).Run(ctx); err == nil {
		t.Error("import without titles should fail")
	}
	if n := len(ctx.Service.Snapshot().Routine); n != 2 {
		t.Errorf("failed import changed routine: %d items", n)
	}

	if err := (&RoutineDeleteCmd{ID: routine[0].ID}).Run(ctx); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := (&RoutineListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
}
