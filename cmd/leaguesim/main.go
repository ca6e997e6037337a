package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/omarshaarawi/leaguesim/internal/bot"
	"github.com/omarshaarawi/leaguesim/internal/config"
	"github.com/omarshaarawi/leaguesim/internal/feed"
	"github.com/omarshaarawi/leaguesim/internal/league"
	"github.com/omarshaarawi/leaguesim/internal/repository/memory"
	"github.com/omarshaarawi/leaguesim/internal/rules"
	"github.com/omarshaarawi/leaguesim/internal/scheduler"
	"github.com/omarshaarawi/leaguesim/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Error running application", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Warn("No .env file loaded", "error", err)
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}
	level, _ := cfg.Server.Level()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	runner, err := newRunner(cfg)
	if err != nil {
		return err
	}

	repo := memory.NewRepository()
	fantasyService := service.NewFantasyService(runner, repo)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !cfg.BotEnabled() {
		return runOnce(ctx, fantasyService)
	}

	telegramBot, err := bot.NewTelegramBot(cfg.TelegramBot.Token, cfg.TelegramBot.ChatID, fantasyService)
	if err != nil {
		return err
	}

	sched, err := scheduler.NewScheduler(fantasyService, telegramBot.SendMessage, cfg.Scheduler.SimulationCron, cfg.Scheduler.Timezone)
	if err != nil {
		return err
	}

	if err := sched.Start(); err != nil {
		return err
	}
	defer func() {
		err := sched.Stop()
		if err != nil {
			slog.Error("Error stopping scheduler", "error", err)
		}
	}()

	http.HandleFunc("/", healthCheckHandler)

	go func() {
		if err := http.ListenAndServe(cfg.Server.HTTPAddr, nil); err != nil {
			slog.Error("Error starting HTTP server", "error", err)
		}
	}()

	go func() {
		if err := telegramBot.Start(ctx); err != nil {
			slog.Error("Error running telegram bot", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down gracefully...")

	return nil
}

func newRunner(cfg *config.Config) (*league.Runner, error) {
	r := rules.Default()
	if cfg.League.RulesPath != "" {
		var err error
		if r, err = rules.Load(cfg.League.RulesPath); err != nil {
			return nil, err
		}
	}

	players, err := feed.OpenPlayerPool(cfg.League.PlayerPoolPath)
	if err != nil {
		return nil, err
	}
	weekly, err := feed.OpenWeekly(cfg.League.WeeklyFeedPath)
	if err != nil {
		return nil, err
	}
	slog.Info("Loaded league inputs", "players", len(players), "feed_weeks", weekly.LastWeek())

	return &league.Runner{
		Config: league.Config{
			Members: league.DefaultMembers(cfg.League.Size),
			Human:   cfg.League.HumanTeam,
			Rules:   r,
			Seed:    cfg.League.Seed,
		},
		Players: players,
		Feed:    weekly,
	}, nil
}

// runOnce simulates a single season and prints its reports.
func runOnce(ctx context.Context, fantasyService *service.FantasyService) error {
	summary, err := fantasyService.Simulate(ctx)
	if err != nil {
		return err
	}
	fmt.Println(summary)

	for _, report := range []func() (string, error){
		fantasyService.GetStandings,
		fantasyService.GetPlayoffs,
		func() (string, error) { return fantasyService.GetWeekReport(0) },
		func() (string, error) { return fantasyService.GetDraftRecap("") },
	} {
		text, err := report()
		if err != nil {
			return err
		}
		fmt.Println(text)
	}
	return nil
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
