package main

import (
	"github.com/spf13/cobra"
)

func newRenderCmd() *cobra.Command {
	var s settings

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the python stub of one java package",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := s.load(cmd)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return renderPackage(cfg)
		},
	}

	s.addSourceFlags(cmd)
	s.addPackageFlags(cmd)
	s.addResolveFlags(cmd)
	s.addOutputFlags(cmd)

	return cmd
}
