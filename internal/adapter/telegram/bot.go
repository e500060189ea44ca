package telegram

import (
	"context"
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"learnlog/internal/config"
	"learnlog/internal/domain"
	"learnlog/internal/usecase/chat"
)

const chunkSize = 2048

type Bot struct {
	api   *tgbotapi.BotAPI
	cfg   config.Config
	chat  chat.HistoryResponder
	store domain.ConversationStore
	log   *zap.Logger
}

func NewBot(cfg config.Config, chatSvc chat.HistoryResponder, store domain.ConversationStore, log *zap.Logger) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramToken)
	if err != nil {
		return nil, err
	}
	return newBot(api, cfg, chatSvc, store, log), nil
}

func newBot(api *tgbotapi.BotAPI, cfg config.Config, chatSvc chat.HistoryResponder, store domain.ConversationStore, log *zap.Logger) *Bot {
	if log == nil {
		log = zap.NewNop()
	}
	return &Bot{
		api:   api,
		cfg:   cfg,
		chat:  chatSvc,
		store: store,
		log:   log,
	}
}

func (b *Bot) Run(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	b.log.Info("telegram bot started", zap.String("username", b.api.Self.UserName))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update := <-updates:
			if update.Message == nil {
				continue
			}
			msg := update.Message
			if msg.From == nil {
				continue
			}
			go b.handleMessage(ctx, msg)
		}
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	log := b.log.With(zap.Int64("chat_id", msg.Chat.ID), zap.Int64("user_id", msg.From.ID))

	if !isAllowedUser(msg.From.ID, b.cfg) {
		log.Info("access denied")
		b.sendText(msg.Chat.ID, msg.MessageID, "access denied")
		return
	}

	switch msg.Command() {
	case "start":
		b.sendText(msg.Chat.ID, msg.MessageID, "hi, send me a question and I will keep the conversation in mind. /reset forgets it.")
		return
	case "reset":
		b.store.Reset(msg.Chat.ID)
		b.sendText(msg.Chat.ID, msg.MessageID, "conversation cleared")
		return
	}

	b.sendChatAction(msg.Chat.ID)

	resp, err := b.converse(ctx, msg.Chat.ID, promptFromMessage(msg))
	if err != nil {
		b.sendText(msg.Chat.ID, msg.MessageID, replyForError(err))
		if !errors.Is(err, chat.ErrInvalidArgument) {
			log.Error("completion request failed", zap.Error(err))
		}
		return
	}

	if shouldSendAsFile(resp) {
		if err := b.sendAsFile(msg.Chat.ID, msg.MessageID, resp); err != nil {
			log.Warn("failed to send file", zap.Error(err))
			b.sendText(msg.Chat.ID, msg.MessageID, "could not send file, here is the text")
			b.sendText(msg.Chat.ID, msg.MessageID, resp)
		}
		return
	}

	b.sendText(msg.Chat.ID, msg.MessageID, resp)
}

// converse answers prompt in the context of the chat's fresh history and
// records the new turn on success.
func (b *Bot) converse(ctx context.Context, chatID int64, prompt string) (string, error) {
	history := b.store.FreshTurns(chatID, b.cfg.ContextLimit, b.cfg.ContextTTL)

	resp, err := b.chat.GetResponseWithHistory(ctx, prompt, history)
	if err != nil {
		return "", err
	}

	b.store.Add(chatID, domain.NewTurn(prompt, resp))
	return resp, nil
}

func (b *Bot) sendText(chatID int64, replyTo int, text string) {
	chunks := splitText(text, chunkSize)
	for idx, chunk := range chunks {
		msg := tgbotapi.NewMessage(chatID, chunk)
		if idx == 0 {
			msg.ReplyToMessageID = replyTo
		}
		if _, err := b.api.Send(msg); err != nil {
			b.log.Warn("failed to send reply", zap.Int64("chat_id", chatID), zap.Error(err))
		}
	}
}

func (b *Bot) sendChatAction(chatID int64) {
	if _, err := b.api.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
		b.log.Debug("failed to send chat action", zap.Error(err))
	}
}

func (b *Bot) sendAsFile(chatID int64, replyTo int, content string) error {
	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  "response.md",
		Bytes: []byte(content),
	})
	doc.ReplyToMessageID = replyTo

	_, err := b.api.Send(doc)
	return err
}

// promptFromMessage returns the text of msg. Stickers, photos and other
// non-text messages yield an empty prompt, which the chat service rejects
// before any network call.
func promptFromMessage(msg *tgbotapi.Message) string {
	if msg.Text != "" {
		return msg.Text
	}
	return msg.Caption
}

func replyForError(err error) string {
	switch {
	case errors.Is(err, chat.ErrInvalidArgument):
		return "i need some text to work with"
	case errors.Is(err, chat.ErrEmptyCompletion):
		return "the model returned nothing, try rephrasing"
	default:
		return "failed to reach the model, try again later"
	}
}

func shouldSendAsFile(text string) bool {
	return len([]rune(text)) > chunkSize
}

func isAllowedUser(userID int64, cfg config.Config) bool {
	for _, id := range cfg.AdminUserIDs {
		if id == userID {
			return true
		}
	}

	if len(cfg.AllowedUserIDs) == 0 {
		return true
	}

	for _, id := range cfg.AllowedUserIDs {
		if id == userID {
			return true
		}
	}

	return false
}

func splitText(text string, chunkSize int) []string {
	if chunkSize <= 0 {
		return []string{text}
	}

	runes := []rune(text)
	if len(runes) <= chunkSize {
		return []string{text}
	}

	chunks := make([]string, 0, len(runes)/chunkSize+1)
	for start := 0; start < len(runes); start += chunkSize {
		end := start + chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}

	return chunks
}
