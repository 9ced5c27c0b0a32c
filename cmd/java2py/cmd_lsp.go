package main

import (
	"github.com/dhamidi/java2py/lsp"
	"github.com/spf13/cobra"
)

func newLSPCmd() *cobra.Command {
	var s settings

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start a language server answering hover requests with python types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := s.load(cmd)
			if err != nil {
				return err
			}
			server := lsp.NewServer(version, cfg.Exclude, resolveOptions(cfg)...)
			return server.RunStdio()
		},
	}

	cmd.Flags().StringSliceVar(&s.exclude, "exclude", nil, "glob of source paths to skip, relative to the workspace root")
	s.addResolveFlags(cmd)

	return cmd
}
