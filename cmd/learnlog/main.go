package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	askcmder "learnlog/cmd/learnlog/ask"
	botcmder "learnlog/cmd/learnlog/bot"
	chatcmder "learnlog/cmd/learnlog/chat"
	"learnlog/cmd/learnlog/cliopts"
	renamecmder "learnlog/cmd/learnlog/rename"
	toyscmder "learnlog/cmd/learnlog/toys"
)

func newRootCmd(opts *cliopts.Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "learnlog",
		Short:         "Daily learning exercises: an LLM chat client and a few small utilities",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	opts.Bind(cmd)

	cmd.AddCommand(askcmder.NewAskCmd(opts))
	cmd.AddCommand(chatcmder.NewChatCmd(opts))
	cmd.AddCommand(botcmder.NewBotCmd(opts))
	cmd.AddCommand(renamecmder.NewRenameCmd())
	cmd.AddCommand(toyscmder.NewToysCmds()...)

	return cmd
}

func main() {
	opts := &cliopts.Options{}

	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd(opts).ExecuteContext(ctx); err != nil {
		log := opts.Logger()
		log.Error("command failed", zap.Error(err))
		_ = log.Sync()
		cancel()
		os.Exit(1)
	}
}
