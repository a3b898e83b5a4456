package user

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/simp-lee/userdir/internal/domain"
	"github.com/simp-lee/userdir/internal/pkg"
)

// Fields users can be sorted by and searched on in List queries.
var (
	allowedSortFields = []string{"id", "name", "email", "created_at", "updated_at"}
	searchFields      = []string{"name", "email"}
)

// userRepository implements domain.UserRepository using GORM.
type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository backed by the given GORM database.
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &userRepository{db: db}
}

// CreateInBatches inserts the given users in chunks of batchSize.
// Used by the startup seeder; there is no single-record create in the API.
func (r *userRepository) CreateInBatches(ctx context.Context, users []domain.User, batchSize int) error {
	if len(users) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).CreateInBatches(users, batchSize).Error; err != nil {
		return mapError(err)
	}
	return nil
}

// Count returns the total number of user records.
func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&domain.User{}).Count(&total).Error; err != nil {
		return 0, mapError(err)
	}
	return total, nil
}

// GetByID retrieves a user by its primary key.
func (r *userRepository) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, mapError(err)
	}
	return &user, nil
}

// List returns one page of users matching the query's search term,
// ordered by the requested field and direction. The count and the page are
// computed against the same filtered base query so the metadata is consistent.
func (r *userRepository) List(ctx context.Context, q domain.ListQuery) (*domain.PageResult[domain.User], error) {
	base := r.db.WithContext(ctx).Model(&domain.User{}).
		Scopes(pkg.Search(q, searchFields))

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, mapError(err)
	}

	var users []domain.User
	if err := base.Scopes(
		pkg.Sort(q, allowedSortFields),
		pkg.Paginate(q),
	).Find(&users).Error; err != nil {
		return nil, mapError(err)
	}

	return pkg.NewPageResult(users, total, q), nil
}

// mapError converts GORM errors to domain errors.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || isDuplicateKeyError(err) {
		return domain.NewAppError(domain.CodeAlreadyExists, "already exists", err)
	}
	return domain.NewAppError(domain.CodeInternal, "database error", err)
}

// isDuplicateKeyError detects unique constraint violations by examining the
// error message. This is needed because not all GORM dialectors translate
// driver-level errors to gorm.ErrDuplicatedKey (e.g. the pure-Go SQLite driver).
func isDuplicateKeyError(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate key") ||
		strings.Contains(msg, "duplicate entry")
}
