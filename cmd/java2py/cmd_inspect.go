package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dhamidi/java2py/java/javadoc"
	"github.com/dhamidi/java2py/java/parser"
	"github.com/dhamidi/java2py/render"
	"github.com/dhamidi/java2py/resolve"
)

type inspectedPackage struct {
	Name    string           `json:"name" yaml:"name"`
	Modules []string         `json:"modules,omitempty" yaml:"modules,omitempty"`
	Classes []inspectedClass `json:"classes" yaml:"classes"`
}

type inspectedClass struct {
	Name      string                 `json:"name" yaml:"name"`
	Kind      string                 `json:"kind" yaml:"kind"`
	Path      string                 `json:"path" yaml:"path"`
	Bases     []string               `json:"bases" yaml:"bases"`
	Doc       *javadoc.Documentation `json:"doc,omitempty" yaml:"doc,omitempty"`
	Constants []inspectedConstant    `json:"constants,omitempty" yaml:"constants,omitempty"`
	Methods   []inspectedMethod      `json:"methods,omitempty" yaml:"methods,omitempty"`
}

type inspectedConstant struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value" yaml:"value"`
	Type  string `json:"type" yaml:"type"`
}

type inspectedMethod struct {
	Name       string                 `json:"name" yaml:"name"`
	Python     string                 `json:"python" yaml:"python"`
	Parameters []inspectedParameter   `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Returns    string                 `json:"returns" yaml:"returns"`
	Static     bool                   `json:"static,omitempty" yaml:"static,omitempty"`
	Doc        *javadoc.Documentation `json:"doc,omitempty" yaml:"doc,omitempty"`
}

type inspectedParameter struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

func newInspectCmd() *cobra.Command {
	var s settings
	var outputFormat string
	var treeClass string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Dump the resolved view of a java package",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := s.load(cmd)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			ix, err := buildIndex(cfg)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if treeClass != "" {
				pkg, err := ix.OpenPackage(cfg.Package)
				if err != nil {
					return err
				}
				return dumpTree(out, pkg.Path(treeClass))
			}

			resolver := resolve.New(ix, resolveOptions(cfg)...)
			r, err := render.New(ix, resolver)
			if err != nil {
				return err
			}
			view, err := r.Load(cfg.Package)
			if err != nil {
				return err
			}
			report, err := inspectPackage(resolver, view)
			if err != nil {
				return err
			}

			switch outputFormat {
			case "yaml":
				enc := yaml.NewEncoder(out)
				enc.SetIndent(2)
				if err := enc.Encode(report); err != nil {
					return fmt.Errorf("encode yaml: %w", err)
				}
				return enc.Close()
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return fmt.Errorf("encode json: %w", err)
				}
				return nil
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}
		},
	}

	s.addSourceFlags(cmd)
	s.addPackageFlags(cmd)
	s.addResolveFlags(cmd)
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "yaml", "output format (yaml, json)")
	cmd.Flags().StringVar(&treeClass, "tree", "", "dump the syntax tree of this class of the package as json")

	return cmd
}

func dumpTree(out io.Writer, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read java file: %w", err)
	}

	node, parseErr := parser.Parse(data, parser.WithFile(path))
	if node != nil {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(node); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
	}
	return parseErr
}

func inspectPackage(r *resolve.Resolver, view *render.Package) (*inspectedPackage, error) {
	report := &inspectedPackage{Name: view.Name, Modules: view.Modules()}

	for _, f := range view.Files {
		c := f.Class
		class := inspectedClass{
			Name:  c.Name,
			Kind:  string(c.Kind),
			Path:  f.Path,
			Bases: c.Inheritance(),
		}
		if !c.IsBase() {
			for i, base := range class.Bases {
				resolved, err := r.ResolveType(base, f.File)
				if err != nil {
					return nil, err
				}
				class.Bases[i] = resolved
			}
		}

		doc, err := c.Documentation()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Path, err)
		}
		if !doc.IsEmpty() {
			class.Doc = doc
		}

		for _, k := range c.Constants {
			t, err := r.PythonResolve(&k.Type, f.File)
			if err != nil {
				return nil, err
			}
			class.Constants = append(class.Constants, inspectedConstant{Name: k.Name, Value: k.PythonValue(), Type: t})
		}

		for _, m := range c.Methods {
			method := inspectedMethod{Name: m.Name, Python: m.PythonName(), Static: m.IsStatic}
			for i := range m.Parameters {
				t, err := r.PythonResolve(&m.Parameters[i].Type, f.File)
				if err != nil {
					return nil, err
				}
				method.Parameters = append(method.Parameters, inspectedParameter{Name: m.Parameters[i].PythonName(), Type: t})
			}
			if method.Returns, err = r.PythonResolve(m.ReturnType, f.File); err != nil {
				return nil, err
			}
			doc, err := m.Documentation()
			if err != nil {
				return nil, fmt.Errorf("%s: %s: %w", f.Path, m.Name, err)
			}
			if !doc.IsEmpty() {
				method.Doc = doc
			}
			class.Methods = append(class.Methods, method)
		}

		report.Classes = append(report.Classes, class)
	}
	return report, nil
}
