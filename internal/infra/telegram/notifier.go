package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// MatchNotifier pushes "it's a match" messages to users through the bot.
// User identifiers double as Telegram chat ids for the mini app, so no
// extra chat lookup is needed.
type MatchNotifier struct {
	api    *tgbotapi.BotAPI
	logger *zap.Logger
}

func NewMatchNotifier(token string, log *zap.Logger) (*MatchNotifier, error) {
	if strings.TrimSpace(token) == "" {
		return nil, fmt.Errorf("telegram bot token is empty")
	}

	api, err := tgbotapi.NewBotAPI(strings.TrimSpace(token))
	if err != nil {
		return nil, fmt.Errorf("create telegram bot api: %w", err)
	}

	return &MatchNotifier{
		api:    api,
		logger: log,
	}, nil
}

// NotifyMatch is best-effort: delivery failures are logged and swallowed so
// a flaky bot API can never fail a committed match. The bot API client has
// no context-aware send, so the context goes unused.
func (n *MatchNotifier) NotifyMatch(_ context.Context, userID, targetID int64) {
	if n == nil || n.api == nil || userID <= 0 {
		return
	}

	msg := tgbotapi.NewMessage(userID, "It's a match! Open the app to say hi.")
	if _, err := n.api.Send(msg); err != nil && n.logger != nil {
		n.logger.Warn("send match notification",
			zap.Int64("user_id", userID),
			zap.Int64("target_id", targetID),
			zap.Error(err),
		)
	}
}
