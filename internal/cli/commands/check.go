package commands

import (
	"fmt"

	"github.com/conduit-lang/metamodel/internal/cli/ui"
	"github.com/spf13/cobra"
)

func newCheckCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check [file]",
		Short: "Build a definition and report the first error",
		Long: `Parse, validate and build a model definition, including its imports.

The build stops at the first problem. Engine errors are reported with their
code and category (for example MUL400 for a link count outside an
association end's multiplicity) and, where one exists, a suggestion.`,
		Example: `  metamodel check
  metamodel check library.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := a.definitionFile(args)
			noColor := a.config.Output.NoColor

			m, err := a.load(path)
			if err != nil {
				ui.WriteBanner(cmd.ErrOrStderr(), ui.CheckFailed(path, err, noColor))
				return errReported
			}

			ui.WriteSuccess(cmd.OutOrStdout(), fmt.Sprintf("%s: model '%s' is valid (%d classifiers, %d associations, %d objects)",
				path, m.Name(), len(m.Classifiers()), len(m.Associations()), len(m.Objects())), noColor)
			return nil
		},
	}
}
