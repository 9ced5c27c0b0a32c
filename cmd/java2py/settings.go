package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/dhamidi/java2py/config"
	"github.com/dhamidi/java2py/index"
	"github.com/dhamidi/java2py/render"
	"github.com/dhamidi/java2py/resolve"
)

// settings holds the flags shared by the subcommands. Flags that were set
// explicitly override the configuration file.
type settings struct {
	sourceDir      string
	pkg            string
	outfile        string
	template       string
	strict         bool
	exclude        []string
	defaultImports []string
	debounce       time.Duration
}

func (s *settings) addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.sourceDir, "sourcedir", "", "directory where java packages are located")
	cmd.Flags().StringSliceVar(&s.exclude, "exclude", nil, "glob of source paths to skip, relative to the source directory")
}

func (s *settings) addPackageFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.pkg, "package", "", "java package to create the python stub from")
}

func (s *settings) addResolveFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&s.strict, "strict", false, "fail on type names that cannot be resolved")
	cmd.Flags().StringSliceVar(&s.defaultImports, "default-import", nil, "import searched after each file's own imports (default java.lang.*)")
}

func (s *settings) addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.outfile, "outfile", "", "file to write the stub to (default stdout)")
	cmd.Flags().StringVar(&s.template, "template", "", "text/template file replacing the built-in stub template")
}

func (s *settings) load(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadOptional(global.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("sourcedir") {
		cfg.SourceDir = s.sourceDir
	}
	if flags.Changed("exclude") {
		cfg.Exclude = s.exclude
	}
	if flags.Changed("package") {
		cfg.Package = s.pkg
	}
	if flags.Changed("strict") {
		cfg.Strict = s.strict
	}
	if flags.Changed("default-import") {
		cfg.DefaultImports = s.defaultImports
	}
	if flags.Changed("outfile") {
		cfg.Outfile = s.outfile
	}
	if flags.Changed("template") {
		cfg.Template = s.template
	}
	if flags.Changed("debounce") {
		cfg.Watch.Debounce = s.debounce
	}
	return cfg, nil
}

func buildIndex(cfg *config.Config) (*index.Index, error) {
	return index.Build(cfg.SourceDir, index.WithExclude(cfg.Exclude...))
}

func resolveOptions(cfg *config.Config) []resolve.Option {
	return []resolve.Option{
		resolve.WithStrict(cfg.Strict),
		resolve.WithDefaultImports(cfg.DefaultImports...),
	}
}

func buildRenderer(cfg *config.Config) (*render.Renderer, error) {
	ix, err := buildIndex(cfg)
	if err != nil {
		return nil, err
	}

	var opts []render.Option
	if cfg.Template != "" {
		opts = append(opts, render.WithTemplateFile(cfg.Template))
	}
	return render.New(ix, resolve.New(ix, resolveOptions(cfg)...), opts...)
}

func renderPackage(cfg *config.Config) error {
	r, err := buildRenderer(cfg)
	if err != nil {
		return err
	}
	text, err := r.Render(cfg.Package)
	if err != nil {
		return err
	}
	return writeOutput(cfg.Outfile, text)
}

func writeOutput(path, text string) error {
	if path == "" {
		_, err := fmt.Fprint(os.Stdout, text)
		return err
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
