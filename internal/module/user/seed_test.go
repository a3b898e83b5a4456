package user

import (
	"context"
	"testing"
)

func TestSeed(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	if err := Seed(ctx, db, 100, nil); err != nil {
		t.Fatalf("Seed: %v", err)
	}

	total, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count: %v", err)
	}
	if total != 100 {
		t.Errorf("Count = %d, want 100", total)
	}

	first, err := repo.GetByID(ctx, 1)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if first.Name != "User 1" || first.Email != "user1@example.com" {
		t.Errorf("first record = %+v", first)
	}
}

func TestSeed_IdempotentOnRestart(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	if err := Seed(ctx, db, 10, nil); err != nil {
		t.Fatalf("first Seed: %v", err)
	}
	if err := Seed(ctx, db, 10, nil); err != nil {
		t.Fatalf("second Seed: %v", err)
	}

	total, _ := repo.Count(ctx)
	if total != 10 {
		t.Errorf("Count = %d after reseed, want 10", total)
	}
}

func TestSeed_ZeroCountIsNoop(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	if err := Seed(ctx, db, 0, nil); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	total, _ := repo.Count(ctx)
	if total != 0 {
		t.Errorf("Count = %d, want 0", total)
	}
}
