package chatcmder

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"learnlog/cmd/learnlog/cliopts"
	"learnlog/internal/adapter/openai"
	"learnlog/internal/domain"
	"learnlog/internal/usecase/chat"
)

const chatLongDesc string = `Start an interactive conversation with the chat model.

Every prompt is sent together with the turns so far, flattened into a
single user message. History lives only as long as the session. Type
"exit" or "quit", or send EOF, to leave.`

const chatShortDesc string = "Chat with the model, keeping history for the session"

type chatCommander struct {
	opts *cliopts.Options
}

func NewChatCmd(opts *cliopts.Options) *cobra.Command {
	cmder := &chatCommander{opts: opts}

	return &cobra.Command{
		Use:   "chat",
		Short: chatShortDesc,
		Long:  chatLongDesc,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := cmder.opts.Load()
			if err != nil {
				return err
			}
			if err := cfg.RequireAPIKey(); err != nil {
				return err
			}
			svc := chat.NewService(openai.NewClient(cfg), cfg, cmder.opts.Logger())
			return runSession(cmd.Context(), svc, cmd.InOrStdin(), cmd.OutOrStdout(), cmder.opts.Logger())
		},
	}
}

// runSession reads prompts line by line until EOF or an exit word. A failed
// turn is reported and left out of the history.
func runSession(ctx context.Context, r chat.HistoryResponder, in io.Reader, out io.Writer, log *zap.Logger) error {
	prompt := color.New(color.FgCyan)
	reply := color.New(color.FgGreen)
	warn := color.New(color.FgYellow)

	var history []domain.Turn
	scanner := bufio.NewScanner(in)

	for {
		prompt.Fprint(out, "you> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "exit", "quit":
			return nil
		case "":
			continue
		}

		resp, err := r.GetResponseWithHistory(ctx, line, history)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if !errors.Is(err, chat.ErrInvalidArgument) {
				log.Error("completion request failed", zap.Error(err))
			}
			warn.Fprintf(out, "error: %v\n", err)
			continue
		}

		history = append(history, domain.NewTurn(line, resp))
		reply.Fprintf(out, "bot> %s\n", resp)
	}
}
