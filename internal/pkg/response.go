package pkg

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/simp-lee/userdir/internal/domain"
)

// ErrorResponse is the wire shape for every error the API returns.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Error sends a JSON error response. If err is a *domain.AppError, its code is
// mapped to the appropriate HTTP status; otherwise 500 is returned. Internal
// details are never echoed to the client.
func Error(c *gin.Context, err error) {
	status := domain.HTTPStatusCode(err)

	msg := "internal error"
	var appErr *domain.AppError
	if errors.As(err, &appErr) && appErr.Code != domain.CodeInternal {
		msg = appErr.Message
	}

	c.JSON(status, ErrorResponse{Error: msg})
}

// BindError translates a gin query/body binding failure into a 400 response.
// Validator field errors get a contract-level message (positive page/limit,
// ASC|DESC order); anything else (e.g. a non-numeric page) reports the field
// as malformed.
func BindError(c *gin.Context, err error) {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		Error(c, domain.NewAppError(domain.CodeValidation, "malformed query parameter", err))
		return
	}

	fe := ve[0]
	field := strings.ToLower(fe.Field())

	var msg string
	switch fe.Tag() {
	case "min":
		msg = field + " must be a positive integer"
	case "oneof":
		msg = field + " must be one of " + fe.Param()
	default:
		msg = field + " is invalid"
	}

	Error(c, domain.NewAppError(domain.CodeValidation, msg, err))
}
