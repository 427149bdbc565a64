package commands

import (
	"context"
	"fmt"
	"log"

	"gorm.io/gorm"

	"weekly-agenda/internal/config"
	"weekly-agenda/internal/notify"
	"weekly-agenda/internal/repository"
	"weekly-agenda/internal/service"
)

// app holds the pieces every subcommand builds on.
type app struct {
	cfg   config.Config
	db    *gorm.DB
	tasks *repository.TaskRepository
	users *repository.UserRepository
}

func openApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	db, err := repository.NewDB(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("db: %w", err)
	}

	return &app{
		cfg:   cfg,
		db:    db,
		tasks: repository.NewTaskRepository(db),
		users: repository.NewUserRepository(db),
	}, nil
}

func (a *app) Close() {
	if sqlDB, err := a.db.DB(); err == nil {
		sqlDB.Close()
	}
}

func (a *app) ping(ctx context.Context) error {
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (a *app) reminderService() *service.ReminderService {
	return service.NewReminderService(a.tasks, buildNotifier(a.cfg), a.cfg.Location)
}

// buildNotifier returns every configured transport. Without any, reminders
// stay pending.
func buildNotifier(cfg config.Config) notify.Notifier {
	var channels notify.Fanout

	if cfg.SendGridAPIKey != "" {
		channels = append(channels, notify.NewSendGrid(cfg.SendGridAPIKey, cfg.SendGridFromEmail))
		log.Printf("[info] email reminders via SendGrid from %s", cfg.SendGridFromEmail)
	}

	if cfg.TelegramToken != "" {
		tg, err := notify.NewTelegram(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Printf("[warn] telegram reminders disabled: %v", err)
		} else {
			channels = append(channels, tg)
			log.Printf("[info] telegram reminders to chat %d", cfg.TelegramChatID)
		}
	}

	switch len(channels) {
	case 0:
		log.Printf("[warn] no notification transport configured, reminders will not be sent")
		return notify.Disabled{}
	case 1:
		return channels[0]
	default:
		return channels
	}
}
