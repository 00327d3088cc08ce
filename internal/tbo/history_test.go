package tbo_test

import (
	"context"
	"testing"
	"time"

	"tbo-go/internal/tbo"
	"tbo-go/internal/testutil"
)

func TestTBOService_GetHistory(t *testing.T) {
	ctx := context.Background()
	db := testutil.NewTestDatabase(t)
	clock := testutil.FixedClock()
	svc := tbo.NewTBOService(db, tbo.NewNopLogger(), clock, testutil.NewStubIDGenerator())
	if err := svc.Init(); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"import", "clear", "restore"} {
		op, err := db.CreateOperation(ctx, name, "", clock.Now())
		if err != nil {
			t.Fatal(err)
		}
		clock.Advance(time.Second)
		if err := db.FinishOperation(ctx, op.ID, "success", clock.Now()); err != nil {
			t.Fatal(err)
		}
	}

	ops, err := svc.GetHistory(ctx, 2)
	if err != nil {
		t.Fatalf("GetHistory() error = %v", err)
	}
	if len(ops) != 2 {
		t.Fatalf("len(ops) = %d, want 2", len(ops))
	}
	if ops[0].Operation != "restore" || ops[1].Operation != "clear" {
		t.Errorf("ops = %s, %s; want restore, clear", ops[0].Operation, ops[1].Operation)
	}
	if ops[0].FinishedAt == nil || !ops[0].FinishedAt.After(ops[0].StartedAt) {
		t.Errorf("ops[0] timestamps = %v / %v", ops[0].StartedAt, ops[0].FinishedAt)
	}
}
