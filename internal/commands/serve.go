package commands

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"weekly-agenda/internal/api"
	"weekly-agenda/internal/auth"
	"weekly-agenda/internal/service"
)

const (
	shutdownTimeout = 10 * time.Second
	tickTimeout     = 30 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the reminder scheduler",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.cfg.RequireJWTSecret(); err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	issuer := auth.NewIssuer(a.cfg.JWTSecret, a.cfg.TokenTTL)
	srv := api.NewServer(api.Options{
		Tasks:       service.NewTaskService(a.tasks),
		Auth:        service.NewAuthService(a.users, issuer),
		Categories:  service.NewCategoryService(),
		Tokens:      issuer,
		Location:    a.cfg.Location,
		CORSOrigins: a.cfg.CORSOrigins,
		Ping:        a.ping,
	})

	reminders := a.reminderService()
	scheduler := service.NewSchedulerService(a.cfg.Location)
	if _, err := scheduler.ScheduleInterval(a.cfg.ReminderInterval, func() {
		reminders.RunTick(tickTimeout)
	}); err != nil {
		return fmt.Errorf("schedule reminders: %w", err)
	}
	scheduler.Start()

	httpServer := &http.Server{
		Addr:              a.cfg.HTTPAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Printf("[info] weekly agenda listening on %s", a.cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		scheduler.Stop()
		return fmt.Errorf("http server: %w", err)
	}

	log.Println("[info] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("[warn] http shutdown: %v", err)
	}
	scheduler.Stop()
	log.Println("[info] shutdown complete")
	return nil
}
