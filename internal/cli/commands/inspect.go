package commands

import (
	"github.com/conduit-lang/metamodel/internal/cli/ui"
	"github.com/conduit-lang/metamodel/internal/introspect"
	"github.com/spf13/cobra"
)

func newInspectCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [name]",
		Short: "Describe a model or one of its elements",
		Long: `Describe the model, or the classifier, object or association called name.

Names are tried as a classifier first, then an object, then an association.
Unknown names are answered with the closest existing ones.`,
		Example: `  metamodel inspect
  metamodel inspect Book
  metamodel inspect "Shelf -> Book" --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.load(a.config.Model.File)
			if err != nil {
				return err
			}
			out, err := introspect.NewFormatter(a.config.Output.Format, cmd.OutOrStdout(), a.config.Output.NoColor)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				return out.Format(introspect.DescribeModel(m))
			}

			report, err := introspect.Find(m, args[0])
			if err != nil {
				ui.WriteBanner(cmd.ErrOrStderr(), ui.NotFound("element", args[0], err, introspect.Candidates(m), a.config.Output.NoColor))
				return errReported
			}
			return out.Format(report)
		},
	}
}

func newPathCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "path <classifier>",
		Short: "Show the attribute resolution path of a classifier",
		Long: `Show the order in which a classifier and its ancestors are searched
when an attribute is accessed by name: a depth-first walk over the
superclasses in declaration order, each classifier listed once.`,
		Example: `  metamodel path Book`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.load(a.config.Model.File)
			if err != nil {
				return err
			}
			out, err := introspect.NewFormatter(a.config.Output.Format, cmd.OutOrStdout(), a.config.Output.NoColor)
			if err != nil {
				return err
			}

			path, err := introspect.Path(m, args[0])
			if err != nil {
				var candidates []string
				for _, c := range m.Classifiers() {
					candidates = append(candidates, c.Name())
				}
				ui.WriteBanner(cmd.ErrOrStderr(), ui.NotFound("classifier", args[0], err, candidates, a.config.Output.NoColor))
				return errReported
			}
			return out.Format(path)
		},
	}
}
