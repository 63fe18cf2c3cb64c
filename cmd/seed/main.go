package main

import (
	"context"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-board/internal/auth"
	"github.com/spec-kit/ticket-board/internal/config"
	"github.com/spec-kit/ticket-board/internal/domain"
	"github.com/spec-kit/ticket-board/internal/observability"
	"github.com/spec-kit/ticket-board/internal/persistence"
	"github.com/spec-kit/ticket-board/internal/repository"
)

// Destructive development seed. Wipes every table and loads a demo
// account with a handful of tickets. Never point this at production.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.App.Production() {
		log.Fatal("refusing to seed a production environment")
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	pool := pg.PoolHandle()
	if _, err := pool.Exec(ctx, `TRUNCATE comments, tickets, sessions, users`); err != nil {
		logger.Fatal("failed to truncate tables", zap.Error(err))
	}
	logger.Info("cleared existing data")

	userRepo := repository.NewUserRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)
	commentRepo := repository.NewCommentRepository(pool)
	hasher := auth.NewHasher(cfg.Auth.Argon2Memory, cfg.Auth.Argon2Time, cfg.Auth.Argon2Threads)

	passwordHash, err := hasher.Hash("password")
	if err != nil {
		logger.Fatal("failed to hash demo password", zap.Error(err))
	}

	demo := &domain.User{
		Username:     "demo",
		Email:        "demo@example.com",
		PasswordHash: passwordHash,
	}
	if err := userRepo.Create(ctx, demo); err != nil {
		logger.Fatal("failed to create demo user", zap.Error(err))
	}
	logger.Info("created demo user", zap.String("email", demo.Email))

	today := time.Now().Format("2006-01-02")
	tickets := []domain.Ticket{
		{
			UserID:   demo.ID,
			Title:    "Fix the dishwasher",
			Content:  "It leaks from the bottom left corner whenever the rinse cycle runs.",
			Status:   domain.TicketStatusDone,
			Deadline: today,
			Bounty:   499,
		},
		{
			UserID:   demo.ID,
			Title:    "Walk the neighbor's dog",
			Content:  "Twice a day while they are away, morning and evening.",
			Status:   domain.TicketStatusOpen,
			Deadline: today,
			Bounty:   399,
		},
		{
			UserID:   demo.ID,
			Title:    "Paint the fence",
			Content:  "Two coats of the white paint in the garage. Tape off the hinges first.",
			Status:   domain.TicketStatusInProgress,
			Deadline: today,
			Bounty:   599,
		},
	}
	for i := range tickets {
		if err := ticketRepo.Create(ctx, &tickets[i]); err != nil {
			logger.Fatal("failed to create ticket", zap.String("title", tickets[i].Title), zap.Error(err))
		}
	}
	logger.Info("created demo tickets", zap.Int("count", len(tickets)))

	comment := &domain.Comment{
		TicketID: tickets[0].ID,
		UserID:   demo.ID,
		Content:  "Ordered a replacement door gasket, should arrive Thursday.",
	}
	if err := commentRepo.Create(ctx, comment); err != nil {
		logger.Fatal("failed to create comment", zap.Error(err))
	}

	logger.Info("seed complete",
		zap.String("login_email", demo.Email),
		zap.String("login_password", "password"))
}
