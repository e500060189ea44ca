package botcmder

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"learnlog/cmd/learnlog/cliopts"
	"learnlog/internal/adapter/memory"
	"learnlog/internal/adapter/openai"
	"learnlog/internal/adapter/telegram"
	"learnlog/internal/usecase/chat"
)

const botLongDesc string = `Run a Telegram chatbot backed by the chat model.

Each chat keeps its recent turns in memory (CONTEXT_MESSAGE_LIMIT turns,
no older than CONTEXT_TTL_MINUTES) and sends them with every prompt.
Requires HF_API_KEY and TELEGRAM_BOT_TOKEN. ADMIN_USER_IDS and
ALLOWED_TELEGRAM_USER_IDS restrict who may talk to it.`

const botShortDesc string = "Run the Telegram chatbot"

func NewBotCmd(opts *cliopts.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: botShortDesc,
		Long:  botLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := opts.Load()
			if err != nil {
				return err
			}
			if err := errors.Join(cfg.RequireAPIKey(), cfg.RequireTelegramToken()); err != nil {
				return err
			}

			log := opts.Logger()
			svc := chat.NewService(openai.NewClient(cfg), cfg, log)

			bot, err := telegram.NewBot(cfg, svc, memory.NewStore(), log)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if err := bot.Run(ctx); err != nil {
				if errors.Is(err, context.Canceled) {
					log.Info("shutdown", zap.Error(err))
					return nil
				}
				return err
			}
			return nil
		},
	}
}
