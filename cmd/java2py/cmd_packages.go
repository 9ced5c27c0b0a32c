package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPackagesCmd() *cobra.Command {
	var s settings

	cmd := &cobra.Command{
		Use:   "packages",
		Short: "List the packages of the source directory with their class counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := s.load(cmd)
			if err != nil {
				return err
			}
			if err := cfg.ValidateSource(); err != nil {
				return err
			}

			ix, err := buildIndex(cfg)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, name := range ix.Packages() {
				fmt.Fprintf(out, "%s\t%d\n", name, len(ix.ClassNames(name)))
			}
			return nil
		},
	}

	s.addSourceFlags(cmd)

	return cmd
}
