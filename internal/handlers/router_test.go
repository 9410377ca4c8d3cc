package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stwalsh4118/rentdesk/internal/auth"
	"github.com/stwalsh4118/rentdesk/internal/database"
	apierrors "github.com/stwalsh4118/rentdesk/internal/errors"
	"github.com/stwalsh4118/rentdesk/internal/logger"
	"github.com/stwalsh4118/rentdesk/internal/models"
	"github.com/stwalsh4118/rentdesk/internal/services"
	"github.com/xuri/excelize/v2"
)

type testServer struct {
	router *gin.Engine
	reg    *services.Registry
	tokens *auth.TokenManager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewSQLite(filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, db.Migrate(context.Background()))

	log := logger.Nop()
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	store := auth.NewMemoryTokenStore()
	reg := services.NewRegistry(db, tokens, store, log)

	router, err := NewRouter(RouterConfig{
		Services:    reg,
		DB:          db,
		Tokens:      tokens,
		Store:       store,
		Log:         log,
		Env:         "test",
		Driver:      "sqlite",
		CORSOrigins: []string{"http://localhost:3000"},
	})
	require.NoError(t, err)

	return &testServer{router: router, reg: reg, tokens: tokens}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) tokenFor(t *testing.T, u *models.User) string {
	t.Helper()
	token, _, err := s.tokens.Issue(u)
	require.NoError(t, err)
	return token
}

func (s *testServer) superuser(t *testing.T) (*models.User, string) {
	t.Helper()
	u, err := s.reg.Users.CreateSuperuser(context.Background(), "admin", "admin@example.com", "5550000", "adminpass1")
	require.NoError(t, err)
	return u, s.tokenFor(t, u)
}

func (s *testServer) tenant(t *testing.T, name string) (*models.User, *models.Tenant, string) {
	t.Helper()
	u, tn, err := s.reg.Users.Register(context.Background(), services.Registration{
		Username:    name,
		Email:       name + "@example.com",
		PhoneNumber: "555" + name,
		Password:    "tenantpass1",
		NationalID:  "NID-" + name,
		Address:     "1 Main Street",
	})
	require.NoError(t, err)
	return u, tn, s.tokenFor(t, u)
}

func (s *testServer) building(t *testing.T, name string) *models.Building {
	t.Helper()
	b := &models.Building{Name: name, Location: "Somewhere", TotalUnits: 4}
	require.NoError(t, s.reg.Buildings.Create(context.Background(), services.SystemActor, b))
	return b
}

func (s *testServer) unit(t *testing.T, buildingID uint, number string) *models.Unit {
	t.Helper()
	u := &models.Unit{BuildingID: buildingID, UnitNumber: number, Size: 42, FloorNumber: 1, RentPrice: 900}
	require.NoError(t, s.reg.Units.Create(context.Background(), services.SystemActor, u))
	return u
}

func (s *testServer) lease(t *testing.T, unitID, tenantID uint, contract string) *models.Lease {
	t.Helper()
	today := models.DateOf(time.Now())
	l := &models.Lease{
		ContractNumber: contract,
		UnitID:         unitID,
		TenantID:       tenantID,
		StartDate:      today.AddDays(-30),
		EndDate:        today.AddDays(335),
		IsActive:       true,
	}
	require.NoError(t, s.reg.Leases.Create(context.Background(), services.SystemActor, l))
	return l
}

// supervisor creates a staff user supervising buildingID with the named
// permissions and returns its token.
func (s *testServer) supervisor(t *testing.T, name string, buildingID uint, permissions ...string) string {
	t.Helper()
	ctx := context.Background()

	ids := make([]uint, 0, len(permissions))
	for _, p := range permissions {
		perm := &models.SupervisorPermission{Name: p}
		require.NoError(t, s.reg.Permissions.Create(ctx, services.SystemActor, perm))
		ids = append(ids, perm.ID)
	}

	staff := &models.User{Username: name, Email: name + "@example.com", PhoneNumber: "556" + name, IsActive: true, IsStaff: true}
	require.NoError(t, s.reg.Users.Create(ctx, services.SystemActor, staff, "staffpass1"))
	_, err := s.reg.Supervisors.Create(ctx, services.SystemActor, &models.Supervisor{UserID: staff.ID, BuildingID: buildingID}, ids)
	require.NoError(t, err)

	// the token carries the supervisor flag set by the assignment
	staff, err = s.reg.Users.Get(ctx, staff.ID)
	require.NoError(t, err)
	require.True(t, staff.IsSupervisor)
	return s.tokenFor(t, staff)
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp apierrors.ErrorResponse
	decode(t, w, &resp)
	return resp.Error.Code
}

func TestAuth_RegisterLoginLogout(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"username":     "alice",
		"email":        "alice@example.com",
		"phone_number": "5551234",
		"password":     "s3cretpass",
		"national_id":  "AB123",
		"address":      "2 Side Street",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var reg RegisterResponse
	decode(t, w, &reg)
	assert.True(t, reg.User.IsTenant)
	assert.Equal(t, models.TenantIndividual, reg.Tenant.TenantType)
	assert.Equal(t, reg.User.ID, reg.Tenant.UserID)

	w = s.do(t, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{Username: "alice", Password: "s3cretpass"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var session services.Session
	decode(t, w, &session)
	assert.Equal(t, "Bearer", session.TokenType)
	require.NotEmpty(t, session.Token)
	assert.NotNil(t, session.User.LastLogin)

	w = s.do(t, http.MethodGet, "/api/v1/auth/me", session.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var me models.User
	decode(t, w, &me)
	assert.Equal(t, "alice", me.Username)
	assert.NotContains(t, w.Body.String(), "password")

	w = s.do(t, http.MethodPost, "/api/v1/auth/logout", session.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/auth/me", session.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_LoginRejectsBadCredentials(t *testing.T) {
	s := newTestServer(t)
	s.tenant(t, "bob")

	w := s.do(t, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{Username: "bob", Password: "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, apierrors.ErrUnauthorized, errorCode(t, w))

	w = s.do(t, http.MethodPost, "/api/v1/auth/login", "", LoginRequest{Username: "nobody", Password: "whatever1"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_RegisterValidation(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"username":     "carol",
		"email":        "not-an-email",
		"phone_number": "5550001",
		"password":     "s3cretpass",
		"address":      "3 Side Street",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp apierrors.ErrorResponse
	decode(t, w, &resp)
	assert.Equal(t, apierrors.ErrValidation, resp.Error.Code)
	assert.Contains(t, resp.Error.Details, "email")
	assert.Contains(t, resp.Error.Details, "national_id")
}

func TestAuth_RegisterWeakPassword(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/v1/auth/register", "", map[string]interface{}{
		"username":     "dave",
		"email":        "dave@example.com",
		"phone_number": "5550002",
		"password":     "short",
		"national_id":  "DV1",
		"address":      "4 Side Street",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apierrors.ErrBadRequest, errorCode(t, w))
}

func TestRoleGates(t *testing.T) {
	s := newTestServer(t)
	_, _, tenantToken := s.tenant(t, "erin")

	b := s.building(t, "Gate House")
	supervisorToken := s.supervisor(t, "sam", b.ID, models.PermManageBuildings)

	tests := []struct {
		name   string
		token  string
		path   string
		status int
	}{
		{name: "no token", path: "/api/v1/buildings", status: http.StatusUnauthorized},
		{name: "garbage token", token: "not-a-jwt", path: "/api/v1/buildings", status: http.StatusUnauthorized},
		{name: "tenant on admin list", token: tenantToken, path: "/api/v1/buildings", status: http.StatusForbidden},
		{name: "tenant on users", token: tenantToken, path: "/api/v1/users", status: http.StatusForbidden},
		{name: "supervisor with permission", token: supervisorToken, path: "/api/v1/buildings", status: http.StatusOK},
		{name: "supervisor without permission", token: supervisorToken, path: "/api/v1/units", status: http.StatusForbidden},
		{name: "supervisor on superuser route", token: supervisorToken, path: "/api/v1/supervisors", status: http.StatusForbidden},
		{name: "supervisor dashboard", token: supervisorToken, path: "/api/v1/dashboard/supervisor", status: http.StatusOK},
		{name: "tenant on supervisor dashboard", token: tenantToken, path: "/api/v1/dashboard/supervisor", status: http.StatusForbidden},
		{name: "supervisor on tenant dashboard", token: supervisorToken, path: "/api/v1/dashboard/tenant", status: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodGet, tt.path, tt.token, nil)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestBuildings_CRUD(t *testing.T) {
	s := newTestServer(t)
	_, token := s.superuser(t)

	w := s.do(t, http.MethodPost, "/api/v1/buildings", token, BuildingRequest{Name: "Elm Court", Location: "5 Elm Road", TotalUnits: 12})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created models.Building
	decode(t, w, &created)
	require.NotZero(t, created.ID)

	w = s.do(t, http.MethodPost, "/api/v1/buildings", token, BuildingRequest{Name: "Elm Court", Location: "elsewhere"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, apierrors.ErrConflict, errorCode(t, w))

	s.unit(t, created.ID, "E-1")
	path := fmt.Sprintf("/api/v1/buildings/%d", created.ID)
	w = s.do(t, http.MethodGet, path, token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var view services.BuildingView
	decode(t, w, &view)
	assert.Equal(t, "Elm Court", view.Name)
	assert.Equal(t, int64(1), view.Occupancy.Total)
	assert.Equal(t, int64(1), view.Occupancy.Available)

	w = s.do(t, http.MethodPut, path, token, BuildingRequest{Name: "Elm Court East", Location: "5 Elm Road", TotalUnits: 14})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/v1/buildings", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Items []services.BuildingView `json:"items"`
		Total int64                   `json:"total"`
	}
	decode(t, w, &page)
	assert.Equal(t, int64(1), page.Total)
	assert.Equal(t, "Elm Court East", page.Items[0].Name)

	w = s.do(t, http.MethodDelete, path, token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = s.do(t, http.MethodGet, path, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/units", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":0`)
}

func TestBuildings_BadInput(t *testing.T) {
	s := newTestServer(t)
	_, token := s.superuser(t)

	w := s.do(t, http.MethodPost, "/api/v1/buildings", token, map[string]interface{}{"location": "nowhere"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, apierrors.ErrValidation, errorCode(t, w))

	w = s.do(t, http.MethodGet, "/api/v1/buildings/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/buildings?per_page=1000", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLeases_CreateAndExpire(t *testing.T) {
	s := newTestServer(t)
	_, token := s.superuser(t)
	_, tn, _ := s.tenant(t, "frank")
	b := s.building(t, "Oak Block")
	u1 := s.unit(t, b.ID, "O-1")
	u2 := s.unit(t, b.ID, "O-2")

	w := s.do(t, http.MethodPost, "/api/v1/leases", token, map[string]interface{}{
		"contract_number": "C-100",
		"unit_id":         u1.ID,
		"tenant_id":       tn.ID,
		"start_date":      "2026-03-01",
		"end_date":        "2026-01-01",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

	today := models.DateOf(time.Now())
	w = s.do(t, http.MethodPost, "/api/v1/leases", token, map[string]interface{}{
		"contract_number": "C-101",
		"unit_id":         u1.ID,
		"tenant_id":       tn.ID,
		"start_date":      today.AddDays(-20).String(),
		"end_date":        today.AddDays(10).String(),
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var view services.LeaseView
	decode(t, w, &view)
	assert.Equal(t, 10, view.RemainingDays)
	assert.False(t, view.IsExpired)
	assert.Equal(t, 900.0, view.MonthlyRent)
	assert.Equal(t, models.LeaseActive, view.Status)

	w = s.do(t, http.MethodPost, "/api/v1/leases", token, map[string]interface{}{
		"contract_number": "C-102",
		"unit_id":         u1.ID,
		"tenant_id":       tn.ID,
		"start_date":      today.String(),
		"end_date":        today.AddDays(30).String(),
	})
	assert.Equal(t, http.StatusConflict, w.Code, "a unit holds one lease")

	w = s.do(t, http.MethodPost, "/api/v1/leases", token, map[string]interface{}{
		"contract_number": "C-103",
		"unit_id":         u2.ID,
		"tenant_id":       tn.ID,
		"start_date":      today.AddDays(-60).String(),
		"end_date":        today.AddDays(-5).String(),
		"monthly_rent":    750,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	decode(t, w, &view)
	assert.Equal(t, -5, view.RemainingDays)
	assert.True(t, view.IsExpired)
	assert.Equal(t, models.LeaseActive, view.Status, "ended leases stay active until expired")

	w = s.do(t, http.MethodPost, "/api/v1/leases/expire", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var count CountResponse
	decode(t, w, &count)
	assert.Equal(t, int64(1), count.Count)

	w = s.do(t, http.MethodGet, "/api/v1/leases?status=expired", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "C-103")
	assert.NotContains(t, w.Body.String(), "C-101")
}

func TestInvoices_MarkPaidAndOverdue(t *testing.T) {
	s := newTestServer(t)
	_, token := s.superuser(t)
	_, tn, _ := s.tenant(t, "gina")
	b := s.building(t, "Pine Hall")
	l := s.lease(t, s.unit(t, b.ID, "P-1").ID, tn.ID, "C-200")

	today := models.DateOf(time.Now())
	w := s.do(t, http.MethodPost, "/api/v1/invoices", token, map[string]interface{}{
		"lease_id":       l.ID,
		"invoice_number": "INV-1",
		"issue_date":     today.AddDays(-40).String(),
		"due_date":       today.AddDays(-10).String(),
		"total_amount":   1000,
		"vat":            20,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var inv services.InvoiceView
	decode(t, w, &inv)
	assert.True(t, inv.IsOverdue)
	assert.Equal(t, models.InvoiceOverdue, inv.EffectiveStatus)
	assert.Equal(t, 200.0, inv.VATAmount)
	assert.Equal(t, 1200.0, inv.GrandTotal)

	w = s.do(t, http.MethodGet, "/api/v1/invoices?overdue=true", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "INV-1")

	path := fmt.Sprintf("/api/v1/invoices/%d/mark-paid", inv.ID)
	for i := 0; i < 2; i++ {
		w = s.do(t, http.MethodPost, path, token, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		decode(t, w, &inv)
		assert.Equal(t, models.InvoicePaid, inv.Status)
		assert.False(t, inv.IsOverdue)
	}

	w = s.do(t, http.MethodPost, "/api/v1/invoices/9999/mark-paid", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNotifications_ReadIsIdempotentAndOwned(t *testing.T) {
	s := newTestServer(t)
	_, adminToken := s.superuser(t)
	owner, _, ownerToken := s.tenant(t, "hank")
	_, _, otherToken := s.tenant(t, "iris")

	w := s.do(t, http.MethodPost, "/api/v1/notifications", adminToken, NotificationRequest{UserID: owner.ID, Message: "Rent is due"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var n models.Notification
	decode(t, w, &n)
	assert.False(t, n.Read)

	w = s.do(t, http.MethodPost, "/api/v1/notifications", ownerToken, NotificationRequest{UserID: owner.ID, Message: "self"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/notifications/unread-count", ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var count CountResponse
	decode(t, w, &count)
	assert.Equal(t, int64(1), count.Count)

	path := fmt.Sprintf("/api/v1/notifications/%d/read", n.ID)
	for i := 0; i < 2; i++ {
		w = s.do(t, http.MethodPost, path, ownerToken, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		decode(t, w, &n)
		assert.True(t, n.Read)
	}

	w = s.do(t, http.MethodPost, path, otherToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/notifications", otherToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":0`)
}

func TestSupportMessages_InboxAndRead(t *testing.T) {
	s := newTestServer(t)
	admin, adminToken := s.superuser(t)
	_, _, tenantToken := s.tenant(t, "jack")

	w := s.do(t, http.MethodPost, "/api/v1/support-messages", tenantToken, SupportMessageRequest{
		RecipientID: admin.ID,
		Subject:     "Heating",
		Message:     "The radiator is cold",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var m models.SupportMessage
	decode(t, w, &m)

	w = s.do(t, http.MethodGet, "/api/v1/support-messages/inbox", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Heating")

	w = s.do(t, http.MethodGet, "/api/v1/support-messages/outbox", tenantToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Heating")

	path := fmt.Sprintf("/api/v1/support-messages/%d/read", m.ID)
	w = s.do(t, http.MethodPost, path, tenantToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code, "only the recipient marks a message read")

	w = s.do(t, http.MethodPost, path, adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &m)
	assert.True(t, m.Read)
}

func TestMaintenance_TenantMustLeaseUnit(t *testing.T) {
	s := newTestServer(t)
	_, tn, tenantToken := s.tenant(t, "kate")
	b := s.building(t, "Birch House")
	leased := s.unit(t, b.ID, "B-1")
	other := s.unit(t, b.ID, "B-2")
	s.lease(t, leased.ID, tn.ID, "C-300")

	w := s.do(t, http.MethodPost, "/api/v1/maintenance-requests", tenantToken, MaintenanceRequestBody{UnitID: other.ID, Description: "Leaking tap"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/maintenance-requests", tenantToken, MaintenanceRequestBody{
		UnitID:      leased.ID,
		Description: "Leaking tap",
		Status:      models.MaintenanceCompleted,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var m models.MaintenanceRequest
	decode(t, w, &m)
	assert.Equal(t, models.MaintenancePending, m.Status)

	w = s.do(t, http.MethodPost, "/api/v1/maintenance-reviews", tenantToken, ReviewRequest{MaintenanceRequestID: m.ID, Rating: 5})
	assert.Equal(t, http.StatusBadRequest, w.Code, "pending requests cannot be reviewed")

	w = s.do(t, http.MethodGet, "/api/v1/maintenance-requests/mine", tenantToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Leaking tap")

	w = s.do(t, http.MethodGet, "/api/v1/maintenance-requests", tenantToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestMaintenance_SupervisorNeedsPermissionForBuilding(t *testing.T) {
	s := newTestServer(t)
	home := s.building(t, "Home Block")
	away := s.building(t, "Away Block")
	homeUnit := s.unit(t, home.ID, "H-1")
	awayUnit := s.unit(t, away.ID, "A-1")

	bare := s.supervisor(t, "nora", away.ID)
	scoped := s.supervisor(t, "otto", home.ID, models.PermManageMaintenance)

	body := func(unitID uint) MaintenanceRequestBody {
		return MaintenanceRequestBody{UnitID: unitID, Description: "Broken lift", Status: models.MaintenanceCompleted}
	}

	w := s.do(t, http.MethodGet, "/api/v1/maintenance-requests", bare, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/maintenance-requests", bare, body(homeUnit.ID))
	assert.Equal(t, http.StatusForbidden, w.Code, w.Body.String())
	assert.Equal(t, apierrors.ErrForbidden, errorCode(t, w))

	w = s.do(t, http.MethodPost, "/api/v1/maintenance-requests", scoped, body(awayUnit.ID))
	assert.Equal(t, http.StatusForbidden, w.Code, "permission does not reach other buildings")

	w = s.do(t, http.MethodPost, "/api/v1/maintenance-requests", scoped, body(homeUnit.ID))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var m models.MaintenanceRequest
	decode(t, w, &m)
	assert.Equal(t, models.MaintenanceCompleted, m.Status)
	assert.Equal(t, models.DateOf(time.Now()).String(), m.CompletionDate.String())

	w = s.do(t, http.MethodPost, "/api/v1/maintenance-reviews", bare, ReviewRequest{MaintenanceRequestID: m.ID, Rating: 4})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodPost, "/api/v1/maintenance-reviews", scoped, ReviewRequest{MaintenanceRequestID: m.ID, Rating: 4})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestDashboard_Tenant(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	u, tn, token := s.tenant(t, "liam")
	b := s.building(t, "Cedar Row")
	s.lease(t, s.unit(t, b.ID, "C-1").ID, tn.ID, "C-400")
	require.NoError(t, s.reg.Notifications.Create(ctx, services.SystemActor, &models.Notification{UserID: u.ID, Message: "Welcome"}))

	w := s.do(t, http.MethodGet, "/api/v1/dashboard/tenant", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var d services.TenantDashboard
	decode(t, w, &d)
	assert.Equal(t, tn.ID, d.Tenant.ID)
	require.Len(t, d.Leases, 1)
	assert.Equal(t, 335, d.Leases[0].RemainingDays)
	assert.Equal(t, int64(1), d.UnreadNotifications)
}

func TestReports_LeaseWorkbook(t *testing.T) {
	s := newTestServer(t)
	_, token := s.superuser(t)
	_, tn, _ := s.tenant(t, "mona")
	b := s.building(t, "Willow Park")
	s.lease(t, s.unit(t, b.ID, "W-1").ID, tn.ID, "C-500")

	w := s.do(t, http.MethodGet, "/api/v1/reports/leases.xlsx", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, services.XLSXContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "leases-")

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Leases")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Contract", rows[0][0])
	assert.Equal(t, "C-500", rows[1][0])
	assert.Equal(t, "Willow Park", rows[1][1])
}

func TestActivityLog_RecordsAdminActions(t *testing.T) {
	s := newTestServer(t)
	admin, token := s.superuser(t)
	owner, _, _ := s.tenant(t, "pete")

	w := s.do(t, http.MethodPost, "/api/v1/unit-types", token, UnitTypeRequest{Name: "Studio"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/v1/notifications", token, NotificationRequest{UserID: owner.ID, Message: "Water off Monday"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var n models.Notification
	decode(t, w, &n)
	path := fmt.Sprintf("/api/v1/notifications/%d", n.ID)

	w = s.do(t, http.MethodPut, path, token, NotificationRequest{UserID: owner.ID, Message: "Water off Tuesday"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	w = s.do(t, http.MethodDelete, path, token, nil)
	require.Equal(t, http.StatusNoContent, w.Code, w.Body.String())

	w = s.do(t, http.MethodGet, fmt.Sprintf("/api/v1/activity-logs?user_id=%d&per_page=50", admin.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Items []models.ActivityLog `json:"items"`
	}
	decode(t, w, &page)
	require.NotEmpty(t, page.Items)

	actions := make([]string, 0, len(page.Items))
	for _, entry := range page.Items {
		require.NotNil(t, entry.UserID)
		assert.Equal(t, admin.ID, *entry.UserID)
		actions = append(actions, entry.Action)
	}
	assert.Contains(t, actions, "Created unit type")
	assert.Contains(t, actions, "Created notification")
	assert.Contains(t, actions, "Updated notification")
	assert.Contains(t, actions, "Deleted notification")
}
