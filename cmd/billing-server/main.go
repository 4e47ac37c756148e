package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/hmis/billing/internal/config"
	"github.com/hmis/billing/internal/domain/autobilling"
	"github.com/hmis/billing/internal/domain/bill"
	"github.com/hmis/billing/internal/domain/billableservice"
	"github.com/hmis/billing/internal/domain/cashpoint"
	"github.com/hmis/billing/internal/domain/paymentmode"
	"github.com/hmis/billing/internal/platform/auth"
	"github.com/hmis/billing/internal/platform/db"
	"github.com/hmis/billing/internal/platform/middleware"
	"github.com/hmis/billing/pkg/pagination"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "billing-server",
		Short: "Hospital billing API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the billing API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func runServer() error {
	// Logger
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" || os.Getenv("ENV") == "" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	// Config
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}
	pagination.SetDefaultLimit(cfg.PageSize)

	// Database
	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	// Echo server
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	// Auth middleware
	if cfg.IsDev() {
		e.Use(auth.DevAuthMiddleware())
	} else {
		e.Use(auth.JWTMiddleware(auth.JWTConfig{
			Issuer:   cfg.AuthIssuer,
			Audience: cfg.AuthAudience,
			JWKSURL:  cfg.AuthJWKSURL,
		}))
	}

	// Health checks
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": "0.1.0",
		})
	})
	e.GET("/health/db", db.HealthHandler(pool))

	// Domain wiring: repo -> service -> handler
	mapOpts := bill.MapOptions{
		Currency: cfg.DefaultCurrency,
		Locale:   cfg.Locale,
		Policy:   bill.ParseStatusPolicy(cfg.StatusPolicy),
	}
	var waiverModeID uuid.UUID
	if cfg.WaiverModeUUID != "" {
		waiverModeID = uuid.MustParse(cfg.WaiverModeUUID)
	}

	billRepo := bill.NewRepoPG(pool)
	billSvc := bill.NewService(billRepo, pool, waiverModeID, mapOpts)

	modeRepo := paymentmode.NewRepoPG(pool)
	modeSvc := paymentmode.NewService(modeRepo)

	svcRepo := billableservice.NewRepoPG(pool)
	svcSvc := billableservice.NewService(svcRepo, modeSvc, pool)

	cpRepo := cashpoint.NewRepoPG(pool)
	cpSvc := cashpoint.NewService(cpRepo)

	apiV1 := e.Group("/api/v1")
	bill.NewHandler(billSvc).RegisterRoutes(apiV1)
	paymentmode.NewHandler(modeSvc).RegisterRoutes(apiV1)
	billableservice.NewHandler(svcSvc).RegisterRoutes(apiV1)
	cashpoint.NewHandler(cpSvc).RegisterRoutes(apiV1)

	// Auto-billing
	eventRepo := autobilling.NewEventRepoPG(pool)
	matcher := autobilling.NewMatcher(autobilling.NewServiceCatalog(svcSvc), autobilling.Toggles{
		LabOrders:     cfg.AutoBillLabOrders,
		DrugOrders:    cfg.AutoBillDrugOrders,
		Procedures:    cfg.AutoBillProcedures,
		Consultations: cfg.AutoBillConsultations,
	})
	sweepCfg := autobilling.SweepConfig{
		Lookback: time.Duration(cfg.AutoBillLookbackDays) * 24 * time.Hour,
	}
	if cfg.AutoBillCashPointUUID != "" {
		sweepCfg.CashPointID = uuid.MustParse(cfg.AutoBillCashPointUUID)
	}
	if cfg.AutoBillCashierUUID != "" {
		sweepCfg.CashierID = uuid.MustParse(cfg.AutoBillCashierUUID)
	}
	autoSvc := autobilling.NewService(eventRepo, matcher, billSvc, sweepCfg, logger)
	autobilling.NewHandler(autoSvc).RegisterRoutes(apiV1)

	var scheduler *cron.Cron
	if cfg.AutoBillEnabled {
		scheduler = cron.New()
		if _, err := scheduler.AddFunc(cfg.AutoBillSchedule, func() {
			if _, err := autoSvc.Sweep(context.Background()); err != nil {
				logger.Error().Err(err).Msg("auto-billing sweep failed")
			}
		}); err != nil {
			logger.Fatal().Err(err).Str("schedule", cfg.AutoBillSchedule).
				Msg("invalid auto-billing schedule")
		}
		scheduler.Start()
		logger.Info().Str("schedule", cfg.AutoBillSchedule).Msg("auto-billing sweep scheduled")
	}

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	if scheduler != nil {
		scheduler.Stop()
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
