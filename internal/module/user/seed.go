package user

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/simp-lee/userdir/internal/domain"
	"github.com/simp-lee/userdir/internal/pkg"
)

const seedBatchSize = 50

// Seed populates the user table with count records named "User 1".."User N"
// when the table is empty. It runs inside a single transaction, so a failed
// seed leaves the table untouched. An already-populated table is left alone,
// making restarts idempotent.
func Seed(ctx context.Context, db *gorm.DB, count int, log *slog.Logger) error {
	if count <= 0 {
		return nil
	}
	if log == nil {
		log = slog.Default()
	}

	repo := NewUserRepository(db)

	existing, err := repo.Count(ctx)
	if err != nil {
		return fmt.Errorf("count users: %w", err)
	}
	if existing > 0 {
		log.Info("seed skipped, user table not empty", slog.Int64("existing", existing))
		return nil
	}

	users := make([]domain.User, 0, count)
	for i := 1; i <= count; i++ {
		users = append(users, domain.User{
			Name:  fmt.Sprintf("User %d", i),
			Email: fmt.Sprintf("user%d@example.com", i),
		})
	}

	err = pkg.WithTx(ctx, db, func(tx *gorm.DB) error {
		return NewUserRepository(tx).CreateInBatches(ctx, users, seedBatchSize)
	})
	if err != nil {
		return fmt.Errorf("seed users: %w", err)
	}

	log.Info("user table seeded", slog.Int("count", count))
	return nil
}
