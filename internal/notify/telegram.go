package notify

import (
	"context"
	"fmt"
	"html"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

type telegramSender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Telegram mirrors notifications into a single chat, regardless of Message.To.
type Telegram struct {
	api    telegramSender
	chatID int64
}

// NewTelegram authorizes the bot token against the Telegram API.
func NewTelegram(token string, chatID int64) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}
	return &Telegram{api: api, chatID: chatID}, nil
}

func (t *Telegram) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var sb strings.Builder
	sb.WriteString("⏰ <b>")
	sb.WriteString(html.EscapeString(msg.Subject))
	sb.WriteString("</b>")
	if text := strings.TrimSpace(msg.Text); text != "" {
		sb.WriteString("\n\n")
		sb.WriteString(html.EscapeString(text))
	}

	out := tgbotapi.NewMessage(t.chatID, sb.String())
	out.ParseMode = tgbotapi.ModeHTML
	out.DisableWebPagePreview = true
	if _, err := t.api.Send(out); err != nil {
		return fmt.Errorf("telegram: %w", err)
	}
	return nil
}
