package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/omarshaarawi/leaguesim/internal/service"
)

const helpText = "Available commands:\n" +
	"/simulate - Draft and play a new season\n" +
	"/standings - Get final regular season standings\n" +
	"/playoffs - Get final playoff ranks\n" +
	"/week [n] - Scores and trophies for a week (defaults to the last)\n" +
	"/team <team> - View team's roster\n" +
	"/whohas <player> - Check which team has a player\n" +
	"/draft [team] - Draft recap for a team, or round one\n" +
	"/monitor - Get injured players on rosters\n" +
	"/history - List simulations run so far"

type Handler struct {
	fantasyService *service.FantasyService
}

func NewHandler(fantasyService *service.FantasyService) *Handler {
	return &Handler{fantasyService: fantasyService}
}

func (h *Handler) HandleCommand(ctx context.Context, update tgbotapi.Update) tgbotapi.MessageConfig {
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, "")
	command := strings.ToLower(update.Message.Command())
	args := strings.TrimSpace(update.Message.CommandArguments())
	msg.ParseMode = "Markdown"

	switch command {
	case "start":
		msg.Text = "Welcome to LeagueSim! Use /help to see available commands."
	case "help":
		msg.Text = helpText
	case "simulate":
		h.handleSimulate(ctx, &msg)
	case "standings":
		h.handleStandings(&msg)
	case "playoffs":
		h.handlePlayoffs(&msg)
	case "week":
		h.handleWeek(&msg, args)
	case "team":
		h.handleTeam(&msg, args)
	case "whohas":
		h.handleWhoHas(&msg, args)
	case "draft":
		h.handleDraft(&msg, args)
	case "monitor":
		h.handlePlayersToMonitor(&msg)
	case "history":
		h.handleHistory(&msg)
	default:
		msg.Text = "Unknown command. Use /help to see available commands."
	}

	return msg
}

func (h *Handler) handleSimulate(ctx context.Context, msg *tgbotapi.MessageConfig) {
	summary, err := h.fantasyService.Simulate(ctx)
	if err != nil {
		msg.Text = fmt.Sprintf("Error simulating season: %v", err)
	} else {
		msg.Text = summary
	}
}

func (h *Handler) handleStandings(msg *tgbotapi.MessageConfig) {
	standings, err := h.fantasyService.GetStandings()
	if err != nil {
		msg.Text = fmt.Sprintf("Error fetching standings: %v", err)
	} else {
		msg.Text = standings
	}
}

func (h *Handler) handlePlayoffs(msg *tgbotapi.MessageConfig) {
	report, err := h.fantasyService.GetPlayoffs()
	if err != nil {
		msg.Text = fmt.Sprintf("Error fetching playoffs: %v", err)
	} else {
		msg.Text = report
	}
}

func (h *Handler) handleWeek(msg *tgbotapi.MessageConfig, args string) {
	week := 0
	if args != "" {
		n, err := strconv.Atoi(args)
		if err != nil || n < 1 {
			msg.Text = "Please provide a week number. Usage: /week [n]"
			return
		}
		week = n
	}
	report, err := h.fantasyService.GetWeekReport(week)
	if err != nil {
		msg.Text = fmt.Sprintf("Error generating week report: %v", err)
	} else {
		msg.Text = report
	}
}

func (h *Handler) handleTeam(msg *tgbotapi.MessageConfig, args string) {
	if args == "" {
		msg.Text = "Please provide a team name. Usage: /team <team name>"
		return
	}
	result, err := h.fantasyService.GetTeamRoster(args)
	if err != nil {
		msg.Text = fmt.Sprintf("Error getting team roster: %v", err)
	} else {
		msg.Text = result
	}
}

func (h *Handler) handleWhoHas(msg *tgbotapi.MessageConfig, args string) {
	if args == "" {
		msg.Text = "Please provide a player name. Usage: /whohas <player name>"
		return
	}
	result, err := h.fantasyService.WhoHas(args)
	if err != nil {
		msg.Text = fmt.Sprintf("Error checking who has player: %v", err)
	} else {
		msg.Text = result
	}
}

func (h *Handler) handleDraft(msg *tgbotapi.MessageConfig, args string) {
	recap, err := h.fantasyService.GetDraftRecap(args)
	if err != nil {
		msg.Text = fmt.Sprintf("Error getting draft recap: %v", err)
	} else {
		msg.Text = recap
	}
}

func (h *Handler) handlePlayersToMonitor(msg *tgbotapi.MessageConfig) {
	report, err := h.fantasyService.GetPlayersToMonitor()
	if err != nil {
		msg.Text = fmt.Sprintf("Error fetching players to monitor: %v", err)
	} else {
		msg.Text = report
	}
}

func (h *Handler) handleHistory(msg *tgbotapi.MessageConfig) {
	report, err := h.fantasyService.GetHistory()
	if err != nil {
		msg.Text = fmt.Sprintf("Error fetching history: %v", err)
	} else {
		msg.Text = report
	}
}
