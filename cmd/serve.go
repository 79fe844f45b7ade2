package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/yeremiapane/blackfish/components"
	"github.com/yeremiapane/blackfish/config"
	"github.com/yeremiapane/blackfish/content"
	"github.com/yeremiapane/blackfish/database"
	"github.com/yeremiapane/blackfish/live"
	"github.com/yeremiapane/blackfish/router"
	"github.com/yeremiapane/blackfish/services"
	"github.com/yeremiapane/blackfish/utils"
)

// cookieLifetime outlives the idle timeout so an evicted session is replaced
// rather than the visitor losing the cookie mid-visit.
const cookieLifetime = 24 * time.Hour

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the website",
		Example: `  # Start with the simulated back office on :8080
  blackfish serve

  # Forward reservations to SQLite
  BACKOFFICE_DRIVER=sqlite BACKOFFICE_DSN=blackfish.db blackfish serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Port = port
			}
			return serve(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides PORT)")

	return cmd
}

func serve(ctx context.Context, cfg *config.Config) error {
	utils.InitLogger(cfg.LogLevel)
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}
	if cfg.UsesDevSecret() {
		utils.InfoLogger.Warn("SESSION_SECRET is not set, using the development key")
	}

	site, err := loadSite(cfg)
	if err != nil {
		return err
	}

	backOffice, err := buildBackOffice(cfg)
	if err != nil {
		return err
	}

	hub := live.NewHub()
	store := services.NewSessionStore(func(id string) *components.Page {
		return components.NewPage(id, components.PageDeps{
			Site:        site,
			Reservation: cfg.ReservationConfig(),
			BackOffice:  backOffice,
			Notifier:    hub,
			Logger:      utils.InfoLogger,
		})
	}, cfg.SessionTTL)
	store.OnEvict = hub.CloseSession

	reaper := services.NewSessionReaper(store)
	reaper.Start()
	defer reaper.Stop()
	defer store.CloseAll()

	handler, err := router.SetupRouter(router.Deps{
		Site:           site,
		Store:          store,
		Signer:         utils.NewSessionSigner(cfg.SessionSecret, maxDuration(cookieLifetime, cfg.SessionTTL)),
		Hub:            hub,
		HeroVideo:      cfg.HeroVideo,
		AllowedOrigins: cfg.AllowedOrigins,
		SubmitRate:     cfg.SubmitRate,
	})
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		utils.InfoLogger.WithFields(logrus.Fields{
			"addr":        server.Addr,
			"back_office": cfg.BackOffice,
		}).Info("Blackfish is open")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		utils.InfoLogger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			utils.ErrorLogger.WithError(err).Error("Server shutdown failed")
			return err
		}
		utils.InfoLogger.Info("Server stopped")
		return nil
	case err := <-serverErr:
		return err
	}
}

func loadSite(cfg *config.Config) (*content.Site, error) {
	if cfg.ContentFile == "" {
		return content.Default()
	}
	utils.InfoLogger.WithField("file", cfg.ContentFile).Info("Loading site content")
	return content.Load(cfg.ContentFile)
}

// buildBackOffice picks the reservation back office for the configured
// driver. SQL back offices are migrated on start.
func buildBackOffice(cfg *config.Config) (components.BackOffice, error) {
	db, err := config.InitDB(cfg)
	if err != nil {
		return nil, err
	}
	if db == nil {
		return services.Instrument(services.SimulatedBackOffice{}, cfg.BackOffice), nil
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	return services.Instrument(services.NewSQLBackOffice(db), cfg.BackOffice), nil
}

func maxDuration(a, b time.Duration) time.Duration {
	if a > b {
		return a
	}
	return b
}
