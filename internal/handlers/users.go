package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/rentdesk/internal/auth"
	"github.com/stwalsh4118/rentdesk/internal/middleware"
	"github.com/stwalsh4118/rentdesk/internal/models"
	"github.com/stwalsh4118/rentdesk/internal/services"
)

// UserHandler handles sign-in and account management.
type UserHandler struct {
	users services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// RegisterRequest is the body of a tenant self-registration.
type RegisterRequest struct {
	Username    string            `json:"username" binding:"required,max=150"`
	Email       string            `json:"email" binding:"required,email,max=254"`
	PhoneNumber string            `json:"phone_number" binding:"required,max=15"`
	Password    string            `json:"password" binding:"required"`
	FirstName   string            `json:"first_name" binding:"max=150"`
	LastName    string            `json:"last_name" binding:"max=150"`
	TenantType  models.TenantType `json:"tenant_type" binding:"omitempty,oneof=individual company"`
	NationalID  string            `json:"national_id" binding:"required,max=20"`
	CompanyName string            `json:"company_name" binding:"max=100"`
	Address     string            `json:"address" binding:"required,max=255"`
}

// RegisterResponse is the created account with its tenant record.
type RegisterResponse struct {
	User   *models.User   `json:"user"`
	Tenant *models.Tenant `json:"tenant"`
}

// LoginRequest is the body of a sign-in.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserRequest is the body of account create and update requests. On
// update an empty password keeps the current one.
type UserRequest struct {
	Username     string `json:"username" binding:"required,max=150"`
	Email        string `json:"email" binding:"required,email,max=254"`
	PhoneNumber  string `json:"phone_number" binding:"required,max=15"`
	Password     string `json:"password"`
	FirstName    string `json:"first_name" binding:"max=150"`
	LastName     string `json:"last_name" binding:"max=150"`
	IsSuperuser  bool   `json:"is_superuser"`
	IsStaff      bool   `json:"is_staff"`
	IsActive     *bool  `json:"is_active"`
	IsTenant     bool   `json:"is_tenant"`
	IsSupervisor bool   `json:"is_supervisor"`
}

func (r UserRequest) model(id uint) *models.User {
	active := true
	if r.IsActive != nil {
		active = *r.IsActive
	}
	return &models.User{
		ID:           id,
		Username:     r.Username,
		Email:        r.Email,
		PhoneNumber:  r.PhoneNumber,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		IsSuperuser:  r.IsSuperuser,
		IsStaff:      r.IsStaff,
		IsActive:     active,
		IsTenant:     r.IsTenant,
		IsSupervisor: r.IsSupervisor,
	}
}

// Register handles POST /api/v1/auth/register.
func (h *UserHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	if log := middleware.GetLogger(c); log != nil {
		log.Info("Processing registration", map[string]interface{}{"username": req.Username})
	}

	u, t, err := h.users.Register(c.Request.Context(), services.Registration{
		Username:    req.Username,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Password:    req.Password,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		TenantType:  req.TenantType,
		NationalID:  req.NationalID,
		CompanyName: req.CompanyName,
		Address:     req.Address,
	})
	if err != nil {
		respondError(c, err, "register")
		return
	}
	c.JSON(http.StatusCreated, RegisterResponse{User: u, Tenant: t})
}

// Login handles POST /api/v1/auth/login.
func (h *UserHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}
	session, err := h.users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err, "log in")
		return
	}
	c.JSON(http.StatusOK, session)
}

// Logout handles POST /api/v1/auth/logout. The presented token is revoked.
func (h *UserHandler) Logout(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		respondError(c, auth.ErrInvalidToken, "log out")
		return
	}
	if err := h.users.Logout(c.Request.Context(), claims); err != nil {
		respondError(c, err, "log out")
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Logged out"})
}

// Me handles GET /api/v1/auth/me.
func (h *UserHandler) Me(c *gin.Context) {
	u, err := h.users.Me(c.Request.Context(), actorFrom(c))
	if err != nil {
		respondError(c, err, "get account")
		return
	}
	c.JSON(http.StatusOK, u)
}

// List handles GET /api/v1/users.
func (h *UserHandler) List(c *gin.Context) {
	p, ok := pagination(c)
	if !ok {
		return
	}
	page, err := h.users.List(c.Request.Context(), p)
	if err != nil {
		respondError(c, err, "list users")
		return
	}
	c.JSON(http.StatusOK, page)
}

// Get handles GET /api/v1/users/:id.
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	u, err := h.users.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "get user")
		return
	}
	c.JSON(http.StatusOK, u)
}

// Create handles POST /api/v1/users.
func (h *UserHandler) Create(c *gin.Context) {
	var req UserRequest
	if !bindJSON(c, &req) {
		return
	}
	u := req.model(0)
	if err := h.users.Create(c.Request.Context(), actorFrom(c), u, req.Password); err != nil {
		respondError(c, err, "create user")
		return
	}
	c.JSON(http.StatusCreated, u)
}

// Update handles PUT /api/v1/users/:id.
func (h *UserHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req UserRequest
	if !bindJSON(c, &req) {
		return
	}
	u := req.model(id)
	if err := h.users.Update(c.Request.Context(), actorFrom(c), u, req.Password); err != nil {
		respondError(c, err, "update user")
		return
	}
	c.JSON(http.StatusOK, u)
}

// Delete handles DELETE /api/v1/users/:id.
func (h *UserHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.users.Delete(c.Request.Context(), actorFrom(c), id); err != nil {
		respondError(c, err, "delete user")
		return
	}
	c.Status(http.StatusNoContent)
}
