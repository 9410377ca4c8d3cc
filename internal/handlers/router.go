package handlers

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stwalsh4118/rentdesk/internal/auth"
	apierrors "github.com/stwalsh4118/rentdesk/internal/errors"
	"github.com/stwalsh4118/rentdesk/internal/logger"
	"github.com/stwalsh4118/rentdesk/internal/middleware"
	"github.com/stwalsh4118/rentdesk/internal/models"
	"github.com/stwalsh4118/rentdesk/internal/services"
)

// RouterConfig holds what the router needs to build every route.
type RouterConfig struct {
	Services    *services.Registry
	DB          Pinger
	Tokens      *auth.TokenManager
	Store       auth.TokenStore
	Log         *logger.Logger
	Env         string
	Driver      string
	CORSOrigins []string
}

// NewRouter builds the gin engine with middleware and all routes.
func NewRouter(cfg RouterConfig) (*gin.Engine, error) {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := apierrors.RegisterValidator(v); err != nil {
			return nil, err
		}
	} else {
		return nil, fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}

	router := gin.New()

	// Add middleware in order: RequestID -> Logger -> Recovery -> CORS
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(cfg.Log))
	router.Use(middleware.Recovery(cfg.Log))
	router.Use(middleware.CORS(cfg.CORSOrigins))

	health := NewHealthHandler(cfg.DB, cfg.Env, cfg.Driver)
	router.GET("/health", health.Health)
	router.GET("/health/ready", health.Ready)

	reg := cfg.Services
	perm := func(name string) gin.HandlerFunc {
		return middleware.RequirePermission(reg.SupervisorRepo, name)
	}

	users := NewUserHandler(reg.Users)
	buildings := NewBuildingHandler(reg.Buildings, reg.UnitTypes, reg.Units)
	tenants := NewTenantHandler(reg.Tenants)
	leases := NewLeaseHandler(reg.Leases, reg.Payments)
	invoices := NewInvoiceHandler(reg.Invoices)
	maintenance := NewMaintenanceHandler(reg.Maintenance)
	messaging := NewMessagingHandler(reg.Notifications, reg.SupportMessages)
	supervisors := NewSupervisorHandler(reg.Supervisors, reg.Permissions)
	dashboards := NewDashboardHandler(reg.Dashboards, reg.Reports)
	activity := NewActivityLogHandler(reg.ActivityLogs)

	v1 := router.Group("/api/v1")
	v1.GET("/info", health.Info)

	public := v1.Group("/auth")
	{
		public.POST("/register", users.Register)
		public.POST("/login", users.Login)
	}

	api := v1.Group("")
	api.Use(middleware.Authenticate(cfg.Tokens, cfg.Store))

	session := api.Group("/auth")
	{
		session.POST("/logout", users.Logout)
		session.GET("/me", users.Me)
	}

	admin := api.Group("")
	admin.Use(middleware.RequireSuperuser())
	{
		admin.GET("/users", users.List)
		admin.GET("/users/:id", users.Get)
		admin.POST("/users", users.Create)
		admin.PUT("/users/:id", users.Update)
		admin.DELETE("/users/:id", users.Delete)

		admin.GET("/supervisors", supervisors.ListSupervisors)
		admin.GET("/supervisors/:id", supervisors.GetSupervisor)
		admin.POST("/supervisors", supervisors.CreateSupervisor)
		admin.PUT("/supervisors/:id", supervisors.UpdateSupervisor)
		admin.PUT("/supervisors/:id/permissions", supervisors.SetSupervisorPermissions)
		admin.DELETE("/supervisors/:id", supervisors.DeleteSupervisor)

		admin.GET("/supervisor-permissions", supervisors.ListPermissions)
		admin.GET("/supervisor-permissions/:id", supervisors.GetPermission)
		admin.POST("/supervisor-permissions", supervisors.CreatePermission)
		admin.PUT("/supervisor-permissions/:id", supervisors.UpdatePermission)
		admin.DELETE("/supervisor-permissions/:id", supervisors.DeletePermission)
	}

	b := api.Group("/buildings", perm(models.PermManageBuildings))
	{
		b.GET("", buildings.ListBuildings)
		b.GET("/:id", buildings.GetBuilding)
		b.POST("", buildings.CreateBuilding)
		b.PUT("/:id", buildings.UpdateBuilding)
		b.DELETE("/:id", buildings.DeleteBuilding)
	}

	ut := api.Group("/unit-types", perm(models.PermManageUnitTypes))
	{
		ut.GET("", buildings.ListUnitTypes)
		ut.GET("/:id", buildings.GetUnitType)
		ut.POST("", buildings.CreateUnitType)
		ut.PUT("/:id", buildings.UpdateUnitType)
		ut.DELETE("/:id", buildings.DeleteUnitType)
	}

	u := api.Group("/units", perm(models.PermManageUnits))
	{
		u.GET("", buildings.ListUnits)
		u.GET("/:id", buildings.GetUnit)
		u.POST("", buildings.CreateUnit)
		u.PUT("/:id", buildings.UpdateUnit)
		u.DELETE("/:id", buildings.DeleteUnit)
	}

	t := api.Group("/tenants", perm(models.PermManageTenants))
	{
		t.GET("", tenants.List)
		t.GET("/:id", tenants.Get)
		t.POST("", tenants.Create)
		t.PUT("/:id", tenants.Update)
		t.DELETE("/:id", tenants.Delete)
	}

	l := api.Group("/leases", perm(models.PermManageLeases))
	{
		l.GET("", leases.ListLeases)
		l.POST("/expire", leases.ExpireLeases)
		l.GET("/:id", leases.GetLease)
		l.POST("", leases.CreateLease)
		l.PUT("/:id", leases.UpdateLease)
		l.DELETE("/:id", leases.DeleteLease)
		l.GET("/:id/payments/total", perm(models.PermManagePayments), leases.LeasePaymentTotal)
	}

	p := api.Group("/payments", perm(models.PermManagePayments))
	{
		p.GET("", leases.ListPayments)
		p.GET("/:id", leases.GetPayment)
		p.POST("", leases.CreatePayment)
		p.PUT("/:id", leases.UpdatePayment)
		p.DELETE("/:id", leases.DeletePayment)
	}

	inv := api.Group("/invoices", perm(models.PermManageInvoices))
	{
		inv.GET("", invoices.List)
		inv.GET("/:id", invoices.Get)
		inv.POST("", invoices.Create)
		inv.PUT("/:id", invoices.Update)
		inv.DELETE("/:id", invoices.Delete)
		inv.POST("/:id/mark-paid", invoices.MarkPaid)
	}

	// open to tenants and staff; the service checks the lease or the
	// supervisor's building and manage_maintenance
	api.POST("/maintenance-requests", maintenance.Create)
	api.GET("/maintenance-requests/mine", maintenance.Mine)
	api.POST("/maintenance-reviews", maintenance.CreateReview)

	m := api.Group("/maintenance-requests", perm(models.PermManageMaintenance))
	{
		m.GET("", maintenance.List)
		m.GET("/:id", maintenance.Get)
		m.PUT("/:id", maintenance.Update)
		m.DELETE("/:id", maintenance.Delete)
	}

	mr := api.Group("/maintenance-reviews", perm(models.PermManageMaintenance))
	{
		mr.GET("", maintenance.ListReviews)
		mr.GET("/:id", maintenance.GetReview)
		mr.PUT("/:id", maintenance.UpdateReview)
		mr.DELETE("/:id", maintenance.DeleteReview)
	}

	// every user reads their own notifications
	n := api.Group("/notifications")
	{
		n.GET("", messaging.ListNotifications)
		n.GET("/unread-count", messaging.UnreadNotifications)
		n.POST("/read-all", messaging.MarkAllNotificationsRead)
		n.GET("/:id", messaging.GetNotification)
		n.POST("/:id/read", messaging.MarkNotificationRead)
		n.POST("", perm(models.PermManageNotifications), messaging.CreateNotification)
		n.PUT("/:id", perm(models.PermManageNotifications), messaging.UpdateNotification)
		n.DELETE("/:id", perm(models.PermManageNotifications), messaging.DeleteNotification)
	}

	sm := api.Group("/support-messages")
	{
		sm.POST("", messaging.SendMessage)
		sm.GET("/inbox", messaging.Inbox)
		sm.GET("/outbox", messaging.Outbox)
		sm.GET("/:id", messaging.GetMessage)
		sm.POST("/:id/read", messaging.MarkMessageRead)
		sm.GET("", perm(models.PermManageSupportMessages), messaging.ListMessages)
		sm.PUT("/:id", perm(models.PermManageSupportMessages), messaging.UpdateMessage)
		sm.DELETE("/:id", perm(models.PermManageSupportMessages), messaging.DeleteMessage)
	}

	d := api.Group("/dashboard")
	{
		d.GET("/supervisor", middleware.RequireSupervisor(), dashboards.Supervisor)
		d.GET("/tenant", middleware.RequireTenant(), dashboards.Tenant)
	}

	r := api.Group("/reports", perm(models.PermViewReports))
	{
		r.GET("/leases.xlsx", dashboards.LeaseReport)
		r.GET("/invoices.xlsx", dashboards.InvoiceReport)
	}

	al := api.Group("/activity-logs", perm(models.PermManageActivityLogs))
	{
		al.GET("", activity.List)
		al.GET("/:id", activity.Get)
		al.DELETE("/:id", activity.Delete)
	}

	return router, nil
}
