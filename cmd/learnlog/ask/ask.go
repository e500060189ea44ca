package askcmder

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"learnlog/cmd/learnlog/cliopts"
	"learnlog/internal/adapter/openai"
	"learnlog/internal/usecase/chat"
)

const askLongDesc string = `Send one prompt to the configured chat model and print the reply.

The request carries the system prompt, temperature 0 and a 500 token cap
unless the config says otherwise. HF_API_KEY must be set, either in the
environment or in the --env file.

Examples:
  learnlog ask "What is the capital of France?"
  learnlog ask --render "Explain goroutines in a bulleted list"`

const askShortDesc string = "Ask the chat model a single question"

type askCommander struct {
	opts   *cliopts.Options
	render bool
}

func NewAskCmd(opts *cliopts.Options) *cobra.Command {
	cmder := &askCommander{opts: opts}

	cmd := &cobra.Command{
		Use:   "ask <prompt>",
		Short: askShortDesc,
		Long:  askLongDesc,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd.Context(), cmd, strings.Join(args, " "))
		},
	}

	cmd.Flags().BoolVarP(&cmder.render, "render", "r", false, "Render the reply as markdown")

	return cmd
}

func (c *askCommander) run(ctx context.Context, cmd *cobra.Command, prompt string) error {
	cfg, err := c.opts.Load()
	if err != nil {
		return err
	}
	if err := cfg.RequireAPIKey(); err != nil {
		return err
	}

	svc := chat.NewService(openai.NewClient(cfg), cfg, c.opts.Logger())

	resp, err := svc.GetResponse(ctx, prompt)
	if err != nil {
		return err
	}

	if c.render {
		rendered, err := renderMarkdown(resp)
		if err != nil {
			return fmt.Errorf("could not render reply: %w", err)
		}
		resp = rendered
	}

	fmt.Fprintln(cmd.OutOrStdout(), resp)
	return nil
}

func renderMarkdown(text string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return "", err
	}
	return r.Render(text)
}
