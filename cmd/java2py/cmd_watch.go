package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/java2py/config"
	"github.com/dhamidi/java2py/watch"
)

var log = commonlog.GetLogger("java2py")

func newWatchCmd() *cobra.Command {
	var s settings

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Render a package and render it again whenever its sources change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := s.load(cmd)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := renderPackage(cfg); err != nil {
				return err
			}

			w, err := watch.New(cfg.Watch.Debounce, cfg.Exclude, func(paths []string) {
				rerender(cfg, paths)
			})
			if err != nil {
				return err
			}
			defer w.Close()

			if err := w.Watch(cfg.SourceDir); err != nil {
				return err
			}
			log.Infof("watching %s", cfg.SourceDir)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			select {
			case <-ctx.Done():
			case <-w.Done():
			}
			return nil
		},
	}

	s.addSourceFlags(cmd)
	s.addPackageFlags(cmd)
	s.addResolveFlags(cmd)
	s.addOutputFlags(cmd)
	cmd.Flags().DurationVar(&s.debounce, "debounce", config.DefaultDebounce, "quiet period before rendering again")

	return cmd
}

// rerender rebuilds the index, since the change may add or remove
// classes, and renders again. Failures are logged and watching goes on.
func rerender(cfg *config.Config, paths []string) {
	log.Infof("%d files changed, rendering %s", len(paths), cfg.Package)
	if err := renderPackage(cfg); err != nil {
		log.Errorf("render %s: %s", cfg.Package, err)
	}
}
