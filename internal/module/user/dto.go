package user

import (
	"strings"
	"time"

	"github.com/simp-lee/userdir/internal/domain"
)

// ListUsersRequest binds the /users query string. Defaults mirror the
// endpoint contract; binding rejects non-positive page/limit and unknown
// sort directions before the service is reached.
type ListUsersRequest struct {
	Page    int    `form:"page,default=1" binding:"min=1"`
	Limit   int    `form:"limit,default=10" binding:"min=1"`
	Search  string `form:"search"`
	OrderBy string `form:"orderBy,default=name"`
	Order   string `form:"order,default=ASC" binding:"oneof=ASC DESC asc desc"`
}

// Query converts the bound request into a domain ListQuery with a
// canonicalized sort direction.
func (r ListUsersRequest) Query() domain.ListQuery {
	return domain.ListQuery{
		Page:    r.Page,
		Limit:   r.Limit,
		Search:  r.Search,
		OrderBy: r.OrderBy,
		Order:   strings.ToUpper(r.Order),
	}
}

// UserResponse is the wire representation of a single user record.
type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ListUsersResponse is the wire shape of a successful /users response.
type ListUsersResponse struct {
	TotalUsers  int64          `json:"totalUsers"`
	TotalPages  int            `json:"totalPages"`
	CurrentPage int            `json:"currentPage"`
	Users       []UserResponse `json:"users"`
}

func newUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func newListUsersResponse(res *domain.PageResult[domain.User]) ListUsersResponse {
	users := make([]UserResponse, 0, len(res.Items))
	for i := range res.Items {
		users = append(users, newUserResponse(&res.Items[i]))
	}

	return ListUsersResponse{
		TotalUsers:  res.Total,
		TotalPages:  res.TotalPages,
		CurrentPage: res.Page,
		Users:       users,
	}
}
