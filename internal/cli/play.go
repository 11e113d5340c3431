package cli

import (
	"io"

	"github.com/spf13/cobra"

	"popquiz-client/internal/config"
	"popquiz-client/internal/game"
	"popquiz-client/internal/ui"
)

func newPlayCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Start the interactive quiz client",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt := &runtime{}
			// Logs go to the configured file or nowhere; the TUI
			// owns the terminal.
			if err := rt.setup(opts, io.Discard); err != nil {
				return err
			}
			defer rt.close()

			root := ui.NewRoot(rt.client, game.NewSession(), rt.history, ui.Config{
				CountdownSeconds: rt.cfg.CountdownSeconds(),
				NotificationTTL:  config.Duration(rt.cfg.UI.NotificationTTL, config.DefaultNotificationTTL),
				PollInterval:     rt.pollInterval(),
				PollBackoffCap:   rt.pollBackoffCap(),
			}, rt.logger)
			return root.Run(cmd.Context())
		},
	}
}
