package config

import (
	"context"
	"testing"

	"hana-qna/internal/adapters/persistence/memory"
	"hana-qna/internal/pkg/password"
)

func TestSeeder_Idempotent(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	seeder := NewSeeder(store.Categories(), store.Branches(), store.Customers(), store.Bankers())

	for i := 0; i < 2; i++ {
		if err := seeder.Run(ctx, true); err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
	}

	categories, err := store.Categories().List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(categories) != len(DefaultCategories) {
		t.Errorf("categories = %d, want %d", len(categories), len(DefaultCategories))
	}

	branch, err := store.Branches().GetByBranchName(ctx, "Seongsu-dong")
	if err != nil || branch.Location != "Seongdong" {
		t.Errorf("branch = %+v, %v", branch, err)
	}

	banker, err := store.Bankers().GetByEmail(ctx, "banker@hana.dev")
	if err != nil {
		t.Fatalf("banker: %v", err)
	}
	if !password.Verify(devPassword, banker.Password) {
		t.Error("dev banker password does not verify")
	}
	if _, err := store.Customers().GetByEmail(ctx, "customer@hana.dev"); err != nil {
		t.Errorf("customer: %v", err)
	}
}
