// Package telegram adapts the Telegram Bot API to the router's typed
// event/response contract. Everything Telegram-specific stays here.
package telegram

import (
	"context"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/dmtrv/lifebot/internal/bot"
	"github.com/dmtrv/lifebot/internal/models"
)

// Bot runs the long-polling loop and shuttles events through the router.
type Bot struct {
	api    *tgbotapi.BotAPI
	router *bot.Router
}

// New authenticates against the Bot API.
func New(token string, router *bot.Router) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	slog.Info("authorized on telegram", "account", api.Self.UserName)
	return &Bot{api: api, router: router}, nil
}

// Run polls for updates until the context is cancelled. Updates are handled
// sequentially, which preserves per-user event ordering: a session's step
// index is only meaningful when steps arrive in order.
func (b *Bot) Run(ctx context.Context) error {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = 30
	updates := b.api.GetUpdatesChan(cfg)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.Message != nil && update.Message.Text != "":
		msg := update.Message
		responses := b.router.Dispatch(ctx, models.Event{
			UserID:    msg.From.ID,
			Username:  msg.From.UserName,
			FirstName: msg.From.FirstName,
			Kind:      models.EventText,
			Payload:   msg.Text,
		})
		b.send(msg.Chat.ID, responses)

	case update.CallbackQuery != nil:
		cq := update.CallbackQuery
		responses := b.router.Dispatch(ctx, models.Event{
			UserID:    cq.From.ID,
			Username:  cq.From.UserName,
			FirstName: cq.From.FirstName,
			Kind:      models.EventCallback,
			Payload:   cq.Data,
		})

		// Always answer the callback so the client stops its spinner; the
		// toast text, if any, comes from the first response.
		toast := ""
		if len(responses) > 0 {
			toast = responses[0].Toast
		}
		if _, err := b.api.Request(tgbotapi.NewCallback(cq.ID, toast)); err != nil {
			slog.Warn("callback answer failed", "error", err)
		}

		b.send(cq.From.ID, responses)
	}
}

func (b *Bot) send(chatID int64, responses []models.Response) {
	for _, resp := range responses {
		msg := tgbotapi.NewMessage(chatID, resp.Text)
		if resp.Keyboard != nil {
			msg.ReplyMarkup = replyKeyboard(resp.Keyboard)
		}
		if len(resp.Inline) > 0 {
			msg.ReplyMarkup = inlineKeyboard(resp.Inline)
		}
		if _, err := b.api.Send(msg); err != nil {
			slog.Error("send failed", "chat_id", chatID, "error", err)
		}
	}
}

func replyKeyboard(rows [][]string) tgbotapi.ReplyKeyboardMarkup {
	kbRows := make([][]tgbotapi.KeyboardButton, len(rows))
	for i, row := range rows {
		kbRow := make([]tgbotapi.KeyboardButton, len(row))
		for j, label := range row {
			kbRow[j] = tgbotapi.NewKeyboardButton(label)
		}
		kbRows[i] = kbRow
	}

	kb := tgbotapi.NewReplyKeyboard(kbRows...)
	kb.ResizeKeyboard = true
	return kb
}

// inlineKeyboard lays the choices out one per row, like the habit picker.
func inlineKeyboard(buttons []models.InlineButton) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, len(buttons))
	for i, btn := range buttons {
		rows[i] = tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(btn.Label, btn.Data),
		)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
