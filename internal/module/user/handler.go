package user

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/simp-lee/userdir/internal/domain"
	"github.com/simp-lee/userdir/internal/pkg"
)

var errInvalidID = errors.New("id must be a positive integer")

// UserHandler handles REST API requests for the user resource.
type UserHandler struct {
	svc domain.UserService
}

// NewUserHandler creates a new UserHandler with the given service.
func NewUserHandler(svc domain.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// List handles GET /users.
//
// Success responses carry totalUsers, totalPages, currentPage and the page of
// users; the page is empty (not an error) when the requested page lies past
// the end of the result set.
func (h *UserHandler) List(c *gin.Context) {
	var req ListUsersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		pkg.BindError(c, err)
		return
	}

	result, err := h.svc.ListUsers(c.Request.Context(), req.Query())
	if err != nil {
		pkg.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, newListUsersResponse(result))
}

// Get handles GET /users/:id.
func (h *UserHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, err.Error(), nil))
		return
	}

	u, err := h.svc.GetUser(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, newUserResponse(u))
}

// parseID extracts and validates the :id path parameter.
func parseID(c *gin.Context) (uint, error) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, errInvalidID
	}
	return uint(id), nil
}
