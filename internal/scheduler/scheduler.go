package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/omarshaarawi/leaguesim/internal/service"
)

type Scheduler struct {
	s              gocron.Scheduler
	fantasyService *service.FantasyService
	sendMessage    func(string) error
	cronSpec       string
}

func NewScheduler(fantasyService *service.FantasyService, sendMessage func(string) error, cronSpec, timezone string) (*Scheduler, error) {
	location, err := time.LoadLocation(timezone)
	if err != nil {
		slog.Error("Failed to load location", "timezone", timezone, "error", err)
		location = time.UTC
	}

	s, err := gocron.NewScheduler(
		gocron.WithLocation(location),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		s:              s,
		fantasyService: fantasyService,
		sendMessage:    sendMessage,
		cronSpec:       cronSpec,
	}, nil
}

func (s *Scheduler) Start() error {
	// Simulate a new season and publish its reports
	_, err := s.s.NewJob(
		gocron.CronJob(s.cronSpec, false),
		gocron.NewTask(s.runSimulation),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("failed to create simulation job: %w", err)
	}

	s.s.Start()
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

func (s *Scheduler) runSimulation() {
	summary, err := s.fantasyService.Simulate(context.Background())
	if err != nil {
		slog.Error("Failed to simulate league", "error", err)
		return
	}
	s.send(summary)
	s.sendStandings()
	s.sendPlayoffs()
	s.sendWeekReport()
}

func (s *Scheduler) send(text string) {
	if err := s.sendMessage(text); err != nil {
		slog.Error("Failed to send message", "error", err)
	}
}

func (s *Scheduler) sendStandings() {
	standings, err := s.fantasyService.GetStandings()
	if err != nil {
		slog.Error("Failed to get standings", "error", err)
		return
	}
	s.send(standings)
}

func (s *Scheduler) sendPlayoffs() {
	report, err := s.fantasyService.GetPlayoffs()
	if err != nil {
		slog.Error("Failed to get playoffs", "error", err)
		return
	}
	s.send(report)
}

func (s *Scheduler) sendWeekReport() {
	report, err := s.fantasyService.GetWeekReport(0)
	if err != nil {
		slog.Error("Failed to get week report", "error", err)
		return
	}
	s.send(report)
}
