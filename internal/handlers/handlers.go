package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/stwalsh4118/rentdesk/internal/auth"
	apierrors "github.com/stwalsh4118/rentdesk/internal/errors"
	"github.com/stwalsh4118/rentdesk/internal/middleware"
	"github.com/stwalsh4118/rentdesk/internal/repository"
	"github.com/stwalsh4118/rentdesk/internal/services"
)

// PageQuery holds the pagination query parameters of list endpoints.
type PageQuery struct {
	Page    int `form:"page" binding:"omitempty,min=1"`
	PerPage int `form:"per_page" binding:"omitempty,min=1,max=200"`
}

// MessageResponse is a plain acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// CountResponse reports how many records an action touched.
type CountResponse struct {
	Count int64 `json:"count"`
}

// actorFrom builds the service actor from the authenticated claims.
func actorFrom(c *gin.Context) services.Actor {
	claims := middleware.GetClaims(c)
	if claims == nil {
		return services.Actor{}
	}
	return services.Actor{
		UserID:       claims.UserID,
		IsSuperuser:  claims.IsSuperuser,
		IsTenant:     claims.IsTenant,
		IsSupervisor: claims.IsSupervisor,
	}
}

// pathID parses the :id path parameter. On failure it writes a 400
// response and returns false.
func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 0)
	if err != nil || id == 0 {
		apierrors.BadRequest(c, "Invalid id", map[string]interface{}{"id": c.Param("id")})
		return 0, false
	}
	return uint(id), true
}

// pagination binds page and per_page.
func pagination(c *gin.Context) (repository.Pagination, bool) {
	var q PageQuery
	if !bindQuery(c, &q) {
		return repository.Pagination{}, false
	}
	return repository.Pagination{Page: q.Page, PerPage: q.PerPage}, true
}

func bindQuery(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindQuery(req); err != nil {
		bindError(c, err, "Invalid query parameters")
		return false
	}
	return true
}

func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		bindError(c, err, "Invalid request body")
		return false
	}
	return true
}

func bindError(c *gin.Context, err error, message string) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		apierrors.ValidationError(c, validationErrors)
		return
	}
	apierrors.BadRequest(c, message, map[string]interface{}{"error": err.Error()})
}

// respondError maps a service error onto the error envelope. action
// describes the failed operation for unexpected errors.
func respondError(c *gin.Context, err error, action string) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrDuplicate):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidReference), errors.Is(err, services.ErrInvalidInput):
		apierrors.BadRequest(c, err.Error(), nil)
	case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, auth.ErrInvalidToken):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrForbidden):
		apierrors.Forbidden(c, err.Error())
	default:
		apierrors.InternalServerError(c, "Failed to "+action, err)
	}
}
