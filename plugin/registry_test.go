package plugin

import (
	"context"
	"log/slog"
	"testing"

	"github.com/portier-io/portier/id"
	"github.com/portier-io/portier/orgunit"
)

// testPlugin implements Plugin + UnitCreated + AfterCheck.
type testPlugin struct {
	unitCreatedCalled bool
	afterCheckCalled  bool
}

func (t *testPlugin) Name() string { return "test-plugin" }

func (t *testPlugin) OnUnitCreated(_ context.Context, _ *orgunit.Unit) error {
	t.unitCreatedCalled = true
	return nil
}

func (t *testPlugin) OnAfterCheck(_ context.Context, _ any) error {
	t.afterCheckCalled = true
	return nil
}

// minimalPlugin only implements Plugin (no hooks).
type minimalPlugin struct{}

func (m *minimalPlugin) Name() string { return "minimal" }

func TestRegistryDispatch(t *testing.T) {
	ctx := context.Background()
	reg := NewRegistry(slog.Default())

	tp := &testPlugin{}
	reg.Register(tp)
	reg.Register(&minimalPlugin{})

	if len(reg.Plugins()) != 2 {
		t.Fatalf("expected 2 plugins, got %d", len(reg.Plugins()))
	}

	// Should dispatch UnitCreated to testPlugin only.
	reg.EmitUnitCreated(ctx, &orgunit.Unit{ID: id.NewPoleID(), Kind: orgunit.KindPole, Name: "Operations"})
	if !tp.unitCreatedCalled {
		t.Fatal("OnUnitCreated was not called")
	}

	// Should dispatch AfterCheck.
	reg.EmitAfterCheck(ctx, nil)
	if !tp.afterCheckCalled {
		t.Fatal("OnAfterCheck was not called")
	}

	// Should not panic on hooks with no listeners.
	reg.EmitBeforeCheck(ctx, id.NewUserID(), id.NewProjectID())
	reg.EmitUnitDeleted(ctx, id.NewServiceID())
	reg.EmitShutdown(ctx)
}
