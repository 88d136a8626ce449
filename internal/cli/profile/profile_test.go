package profile

import (
	"testing"

	"github.com/julianstephens/sisy/internal/cli"
	"github.com/julianstephens/sisy/internal/service"
	"github.com/julianstephens/sisy/internal/storage"
)

func TestProfileCommands(t *testing.T) {
	svc, err := service.New(service.Options{Store: storage.NewMemoryStore()})
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	ctx := &cli.Context{Service: svc}

	if err := (&ProfileSetCmd{Key: "name", Value: "Ada"}).Run(ctx); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := (&ProfileSetCmd{Key: "name", Value: "Grace"}).Run(ctx); err != nil {
		t.Fatalf("second set failed: %v", err)
	}
	if err := (&ProfileRevertCmd{Key: "name"}).Run(ctx); err != nil {
		t.Fatalf("revert failed: %v", err)
	}

	st := svc.Snapshot()
	i, ok := st.FindProfileField("name")
	if !ok {
		t.Fatal("name field missing")
	}
	if st.Profile[i].Value != "Ada" {
		t.Errorf("name = %q after revert, want Ada", st.Profile[i].Value)
	}

	if err := (&ProfileDeleteCmd{Key: "occupation"}).Run(ctx); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := (&ProfileDeleteCmd{Key: "occupation"}).Run(ctx); err == nil {
		t.Error("deleting a missing field should fail")
	}
	if err := (&ProfileListCmd{}).Run(ctx); err != nil {
		t.Errorf("list failed: %v", err)
	}
}
