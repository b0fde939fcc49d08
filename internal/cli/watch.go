package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/albertocavalcante/go-artpack/config"
	"github.com/albertocavalcante/go-artpack/watch"
)

func newWatchCommand(a *app) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-resolve entries whenever the project configuration changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			load := func() (*config.Config, error) { return a.loadConfig(cmd) }
			w, err := watch.New(load, watch.ResolveConfig(a.resolverOptions()...),
				watch.WithDebounce(debounce),
				watch.WithLogger(a.logger),
				watch.OnChange(func(ev watch.Event) {
					if ev.Err != nil {
						errorColor.Fprintf(a.stderr, "reload failed: %v\n", ev.Err)
						return
					}
					printDiff(a.stdout, ev.Diff)
				}),
			)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			fmt.Fprintln(a.stdout, "Watching for configuration changes. Press Ctrl+C to stop.")
			err = w.Run(ctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().DurationVar(&debounce, "debounce", watch.DefaultDebounce, "quiet period before reloading")
	return cmd
}
