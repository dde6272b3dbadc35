package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/conduit-lang/metamodel/internal/cli/ui"
	"github.com/conduit-lang/metamodel/internal/dsl"
	"github.com/spf13/cobra"
)

var identifier = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// initOptions are the answers that shape the starter definition
type initOptions struct {
	Model     string
	Metaclass string
	Class     string
}

func validateIdentifier(v any) error {
	s, _ := v.(string)
	if !identifier.MatchString(strings.TrimSpace(s)) {
		return fmt.Errorf("'%s' is not a valid name: use letters, digits and underscores, not starting with a digit", s)
	}
	return nil
}

func newInitCommand(a *app) *cobra.Command {
	var (
		interactive bool
		force       bool
		opts        initOptions
	)

	cmd := &cobra.Command{
		Use:   "init [file]",
		Short: "Write a starter model definition",
		Long: `Write a small model definition that builds cleanly: one metaclass, one
class, a stereotype, an enumeration, an association and an object.
Existing files are kept unless --force is given.`,
		Example: `  metamodel init
  metamodel init shop.yaml --class Product
  metamodel init --interactive`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.definitionFile(args)
			if opts.Model == "" {
				opts.Model = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
			}

			if interactive {
				if err := askInitOptions(&opts); err != nil {
					return err
				}
			}
			for _, name := range []string{opts.Metaclass, opts.Class} {
				if err := validateIdentifier(name); err != nil {
					return err
				}
			}

			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			data, err := dsl.Marshal(dsl.Starter(opts.Model, opts.Metaclass, opts.Class))
			if err != nil {
				return err
			}
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", path, err)
			}

			ui.WriteSuccess(cmd.OutOrStdout(), fmt.Sprintf("Created %s", path), a.config.Output.NoColor)
			fmt.Fprintf(cmd.OutOrStdout(), "\nNext: metamodel check %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Prompt for the model, metaclass and class names")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	cmd.Flags().StringVar(&opts.Model, "model", "", "Model name (default: file base name)")
	cmd.Flags().StringVar(&opts.Metaclass, "metaclass", "Entity", "Metaclass name")
	cmd.Flags().StringVar(&opts.Class, "class", "Item", "Class name")

	return cmd
}

func askInitOptions(opts *initOptions) error {
	questions := []*survey.Question{
		{
			Name:     "model",
			Prompt:   &survey.Input{Message: "Model name:", Default: opts.Model},
			Validate: survey.Required,
		},
		{
			Name:     "metaclass",
			Prompt:   &survey.Input{Message: "Metaclass name:", Default: opts.Metaclass},
			Validate: survey.ComposeValidators(survey.Required, validateIdentifier),
		},
		{
			Name:     "class",
			Prompt:   &survey.Input{Message: "First class name:", Default: opts.Class},
			Validate: survey.ComposeValidators(survey.Required, validateIdentifier),
		},
	}
	return survey.Ask(questions, opts)
}
