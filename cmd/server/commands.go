package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/stwalsh4118/rentdesk/internal/handlers"
	"github.com/stwalsh4118/rentdesk/internal/models"
	"github.com/stwalsh4118/rentdesk/internal/services"
)

const (
	shutdownTimeout = 30 * time.Second
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, true)
			if err != nil {
				return err
			}
			defer a.Close()

			a.log.Info("Starting rentdesk API", map[string]interface{}{
				"version":     handlers.APIVersion,
				"environment": a.cfg.Server.Env,
				"port":        a.cfg.Server.Port,
			})

			if a.cfg.Server.Env == "production" {
				gin.SetMode(gin.ReleaseMode)
			}
			router, err := handlers.NewRouter(handlers.RouterConfig{
				Services:    a.services,
				DB:          a.db,
				Tokens:      a.tokens,
				Store:       a.store,
				Log:         a.log,
				Env:         a.cfg.Server.Env,
				Driver:      a.cfg.Database.Driver,
				CORSOrigins: a.cfg.CORS.Origins,
			})
			if err != nil {
				return err
			}

			srv := &http.Server{
				Addr:    fmt.Sprintf(":%s", a.cfg.Server.Port),
				Handler: router,
			}

			serveErr := make(chan error, 1)
			go func() {
				a.log.Info("Server listening", map[string]interface{}{
					"port": a.cfg.Server.Port,
					"addr": srv.Addr,
				})
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serveErr <- err
				}
				close(serveErr)
			}()

			// Wait for interrupt signal (SIGINT or SIGTERM)
			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			select {
			case err, ok := <-serveErr:
				if ok {
					a.log.Error("Server failed to start", err, nil)
					return err
				}
			case <-quit:
			}

			a.log.Info("Shutting down server...", nil)

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			if err := srv.Shutdown(shutdownCtx); err != nil {
				a.log.Error("Server forced to shutdown", err, map[string]interface{}{
					"timeout": shutdownTimeout.String(),
				})
			}

			a.log.Info("Server exited", nil)
			return nil
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			seed, _ := cmd.Flags().GetBool("seed-permissions")

			ctx := cmd.Context()
			a, err := newApp(ctx, false)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.db.Migrate(ctx); err != nil {
				return err
			}
			a.log.Info("Schema migrated", map[string]interface{}{"tables": len(models.All())})

			if seed {
				created, err := seedPermissions(ctx, a.services.Permissions)
				if err != nil {
					return err
				}
				a.log.Info("Supervisor permissions seeded", map[string]interface{}{"created": created})
			}
			return nil
		},
	}
	cmd.Flags().Bool("seed-permissions", true, "create the permission names the API checks")
	return cmd
}

// seedPermissions creates every permission the router checks, skipping
// those that exist already.
func seedPermissions(ctx context.Context, permissions services.PermissionService) (int, error) {
	created := 0
	for _, name := range models.AllPermissions {
		err := permissions.Create(ctx, services.SystemActor, &models.SupervisorPermission{Name: name})
		if errors.Is(err, services.ErrDuplicate) {
			continue
		}
		if err != nil {
			return created, fmt.Errorf("failed to seed permission %s: %w", name, err)
		}
		created++
	}
	return created, nil
}

func expireLeasesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "expire-leases",
		Short: "Mark every active lease that ended before today as expired",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := newApp(ctx, false)
			if err != nil {
				return err
			}
			defer a.Close()

			n, err := a.services.Leases.ExpireOverdue(ctx, services.SystemActor)
			if err != nil {
				return err
			}
			fmt.Printf("Expired %d lease(s).\n", n)
			return nil
		},
	}
}

func createSuperuserCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create-superuser",
		Short: "Add an active superuser account",
		RunE: func(cmd *cobra.Command, args []string) error {
			username, _ := cmd.Flags().GetString("username")
			email, _ := cmd.Flags().GetString("email")
			phone, _ := cmd.Flags().GetString("phone")
			password, _ := cmd.Flags().GetString("password")
			if password == "" {
				password = os.Getenv("RENTDESK_SUPERUSER_PASSWORD")
			}

			ctx := cmd.Context()
			a, err := newApp(ctx, false)
			if err != nil {
				return err
			}
			defer a.Close()

			u, err := a.services.Users.CreateSuperuser(ctx, username, email, phone, password)
			if err != nil {
				return err
			}
			fmt.Printf("Superuser %s created with id %d.\n", u.Username, u.ID)
			return nil
		},
	}
	cmd.Flags().String("username", "", "login name")
	cmd.Flags().String("email", "", "email address")
	cmd.Flags().String("phone", "", "phone number")
	cmd.Flags().String("password", "", "password, defaults to $RENTDESK_SUPERUSER_PASSWORD")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("phone")
	return cmd
}
