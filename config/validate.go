package config

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var ErrInvalid = errors.New("invalid configuration")

var (
	packagePattern = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*(\.[A-Za-z_$][A-Za-z0-9_$]*)*$`)
	importPattern  = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*(\.[A-Za-z_$][A-Za-z0-9_$]*)*(\.\*)?$`)
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// Report fields under their TOML names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("toml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	validate.RegisterValidation("package", func(fl validator.FieldLevel) bool {
		return packagePattern.MatchString(fl.Field().String())
	})
	validate.RegisterValidation("import", func(fl validator.FieldLevel) bool {
		return importPattern.MatchString(fl.Field().String())
	})
}

// Validate checks a configuration that is about to render a package.
func (c *Config) Validate() error {
	return describe(validate.Struct(c))
}

// ValidateSource checks only what commands that walk the tree need.
func (c *Config) ValidateSource() error {
	err := validate.Var(c.SourceDir, "required,dir")
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalid, message("source_dir", errs[0]))
	}
	return err
}

func describe(err error) error {
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = message(e.Field(), e)
	}
	return fmt.Errorf("%w: %s", ErrInvalid, strings.Join(msgs, "; "))
}

func message(field string, e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return field + " is required"
	case "dir":
		return fmt.Sprintf("%s: %q is not a directory", field, e.Value())
	case "file":
		return fmt.Sprintf("%s: %q is not a file", field, e.Value())
	case "package":
		return fmt.Sprintf("%s: %q is not a package name", field, e.Value())
	case "import":
		return fmt.Sprintf("%s: %q is not an import", field, e.Value())
	}
	return fmt.Sprintf("%s fails %s", field, e.Tag())
}
