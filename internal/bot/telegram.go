package bot

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"unicode/utf8"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/omarshaarawi/leaguesim/internal/service"
)

// maxMessageLen is Telegram's limit on a single message's text.
const maxMessageLen = 4096

var errChatIDNotSet = errors.New("chat ID not set")

// messenger is the part of the Bot API the league bot talks to.
type messenger interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type TelegramBot struct {
	api      messenger
	handler  *Handler
	chatID   int64
	username string
}

func NewTelegramBot(token string, chatID int64, fantasyService *service.FantasyService) (*TelegramBot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return newTelegramBot(api, api.Self.UserName, chatID, NewHandler(fantasyService)), nil
}

func newTelegramBot(api messenger, username string, chatID int64, handler *Handler) *TelegramBot {
	return &TelegramBot{api: api, handler: handler, chatID: chatID, username: username}
}

// Start answers league commands until ctx is cancelled.
func (t *TelegramBot) Start(ctx context.Context) error {
	slog.Info("Authorized on account", "username", t.username)
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := t.api.GetUpdatesChan(u)
	defer t.api.StopReceivingUpdates()

	for {
		select {
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			t.handleUpdate(ctx, update)
		case <-ctx.Done():
			return nil
		}
	}
}

func (t *TelegramBot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil || !update.Message.IsCommand() {
		return
	}
	slog.Info("Handling command", "command", update.Message.Command(), "chat", update.Message.Chat.ID)

	reply := t.handler.HandleCommand(ctx, update)
	for i, part := range splitMessage(reply.Text) {
		msg := reply
		msg.Text = part
		if i == 0 {
			msg.ReplyToMessageID = update.Message.MessageID
		}
		if _, err := t.api.Send(msg); err != nil {
			slog.Error("Error sending message", "command", update.Message.Command(), "error", err)
			return
		}
	}
}

// SendMessage publishes a report to the league chat, split across messages
// when it is too long for one.
func (t *TelegramBot) SendMessage(text string) error {
	if t.chatID == 0 {
		slog.Error("Chat ID not set")
		return errChatIDNotSet
	}

	for _, part := range splitMessage(text) {
		msg := tgbotapi.NewMessage(t.chatID, part)
		msg.ParseMode = "Markdown"
		if _, err := t.api.Send(msg); err != nil {
			slog.Error("Error sending message", "error", err)
			return err
		}
	}
	return nil
}

// splitMessage breaks text at line ends into parts of at most maxMessageLen
// characters. A single line longer than that is cut mid-line.
func splitMessage(text string) []string {
	if utf8.RuneCountInString(text) <= maxMessageLen {
		return []string{text}
	}

	var parts []string
	var cur strings.Builder
	curLen := 0
	flush := func() {
		if curLen > 0 {
			parts = append(parts, cur.String())
			cur.Reset()
			curLen = 0
		}
	}
	for _, line := range strings.SplitAfter(text, "\n") {
		for utf8.RuneCountInString(line) > maxMessageLen {
			flush()
			runes := []rune(line)
			parts = append(parts, string(runes[:maxMessageLen]))
			line = string(runes[maxMessageLen:])
		}
		n := utf8.RuneCountInString(line)
		if curLen+n > maxMessageLen {
			flush()
		}
		cur.WriteString(line)
		curLen += n
	}
	flush()
	return parts
}
