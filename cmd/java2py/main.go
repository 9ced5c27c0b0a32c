package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

const version = "0.1.0"

var global struct {
	verbose    int
	logPath    string
	configPath string
}

func main() {
	rootCmd := &cobra.Command{
		Use:          "java2py",
		Short:        "Generate Python stubs from Java sources",
		Version:      version,
		SilenceUsage: true,
	}
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		var path *string
		if global.logPath != "" {
			path = &global.logPath
		}
		commonlog.Configure(global.verbose, path)
	}

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&global.verbose, "verbose", "v", "increase log verbosity")
	flags.StringVar(&global.logPath, "log", "", "write logs to this file instead of stderr")
	flags.StringVar(&global.configPath, "config", "", "configuration file (default java2py.toml when present)")

	rootCmd.AddCommand(newRenderCmd())
	rootCmd.AddCommand(newPackagesCmd())
	rootCmd.AddCommand(newInspectCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newLSPCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
