package domain

import "context"

// User represents one record in the directory. Records are created by the
// startup seeder and are immutable through the HTTP API.
type User struct {
	BaseModel
	Name  string `gorm:"size:100;not null" json:"name"`
	Email string `gorm:"size:255;uniqueIndex;not null" json:"email"`
}

// UserRepository defines the data access interface for users.
type UserRepository interface {
	CreateInBatches(ctx context.Context, users []User, batchSize int) error
	Count(ctx context.Context) (int64, error)
	GetByID(ctx context.Context, id uint) (*User, error)
	List(ctx context.Context, q ListQuery) (*PageResult[User], error)
}

// UserService defines the business logic interface for users.
type UserService interface {
	GetUser(ctx context.Context, id uint) (*User, error)
	ListUsers(ctx context.Context, q ListQuery) (*PageResult[User], error)
}
