package commands

import (
	"errors"
	"fmt"
	"io"
	"runtime"

	"github.com/conduit-lang/metamodel/internal/cli/config"
	"github.com/conduit-lang/metamodel/internal/dsl"
	"github.com/conduit-lang/metamodel/internal/logging"
	"github.com/conduit-lang/metamodel/pkg/metamodel"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Version information - set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// errReported marks a failure whose banner was already printed
var errReported = errors.New("reported")

// app carries global flags and the state PersistentPreRunE derives from them
type app struct {
	configFile string
	modelFile  string
	format     string
	logLevel   string
	noColor    bool

	config *config.Config
	logger *zap.Logger
}

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "metamodel",
		Short: "Build, check and inspect UML-style metamodels",
		Long: color.CyanString(`metamodel - UML-style metamodeling engine

Models are written in YAML: metaclasses, classes with multiple
inheritance, stereotypes with tagged values, enumerations, associations
with multiplicities, and the objects and links that instantiate them.`) + `

Configuration is read from metamodel.yaml in the working directory (or
--config) and METAMODEL_* environment variables. Flags win over both.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "Config file (default: ./metamodel.yaml)")
	flags.StringVarP(&a.modelFile, "file", "f", "", "Model definition file (default: model.file from config)")
	flags.StringVar(&a.format, "format", "", "Output format: text or json")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn or error")
	flags.BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	rootCmd.AddCommand(NewVersionCommand())
	rootCmd.AddCommand(newCheckCommand(a))
	rootCmd.AddCommand(newInspectCommand(a))
	rootCmd.AddCommand(newPathCommand(a))
	rootCmd.AddCommand(newServeCommand(a))
	rootCmd.AddCommand(newTokenCommand(a))
	rootCmd.AddCommand(newInitCommand(a))

	return rootCmd
}

// setup loads the configuration, applies flag overrides and builds the logger
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(a.configFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("file") {
		cfg.Model.File = a.modelFile
	}
	if flags.Changed("format") {
		cfg.Output.Format = a.format
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("no-color") {
		cfg.Output.NoColor = a.noColor
	}
	if cfg.Output.NoColor {
		color.NoColor = true
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return err
	}
	a.config = cfg
	a.logger = logger
	return nil
}

// definitionFile returns the first argument when given, else the configured file
func (a *app) definitionFile(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	return a.config.Model.File
}

func (a *app) load(path string) (*metamodel.Model, error) {
	return dsl.LoadFile(path, a.logger)
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			writeVersion(cmd.OutOrStdout())
		},
	}
}

func writeVersion(w io.Writer) {
	title := color.New(color.FgCyan, color.Bold)
	title.Fprint(w, "metamodel version: ")
	fmt.Fprintln(w, Version)
	title.Fprint(w, "Git commit: ")
	fmt.Fprintln(w, GitCommit)
	title.Fprint(w, "Build date: ")
	fmt.Fprintln(w, BuildDate)
	title.Fprint(w, "Go version: ")
	fmt.Fprintln(w, runtime.Version())
}

// Execute runs the root command
func Execute() error {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			color.New(color.FgRed, color.Bold).Fprintf(rootCmd.ErrOrStderr(), "Error: %v\n", err)
		}
		return err
	}
	return nil
}
