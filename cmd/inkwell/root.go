package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/raphi011/inkwell/internal/config"
	"github.com/raphi011/inkwell/internal/log"
	"github.com/raphi011/inkwell/internal/output"
	"github.com/raphi011/inkwell/internal/term"
	"github.com/raphi011/inkwell/internal/ui/render"
)

// Command group IDs for organizing help output
const (
	GroupWidgets = "widgets"
	GroupConfig  = "config"
)

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	verbose bool
	quiet   bool
	width   int
	color   string
	theme   string
}

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	var flags globalFlags

	cmd := &cobra.Command{
		Use:   "inkwell",
		Short: "Render tables, progress bars and selection lists in the terminal",
		Long: `inkwell renders styled terminal output: tables with spans and borders,
animated progress displays, and interactive selection lists.

Diagnostics go to stderr, rendered output to stdout.`,
		SilenceUsage:               true,
		SilenceErrors:              true,
		SuggestionsMinimumDistance: 2, // Enable typo suggestions
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip setup for completion and help commands
			if cmd.Name() == "completion" || cmd.Name() == "__complete" || cmd.Name() == "help" {
				return nil
			}
			return setup(cmd, flags)
		},
		// Run is not set - shows help when no subcommand provided
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Show debug output and external commands")
	cmd.PersistentFlags().BoolVarP(&flags.quiet, "quiet", "q", false, "Suppress all log output")
	cmd.PersistentFlags().IntVar(&flags.width, "width", 0, "Render width (0 detects it from the terminal)")
	cmd.PersistentFlags().StringVar(&flags.color, "color", "", "Color output: auto, always, or never")
	cmd.PersistentFlags().StringVar(&flags.theme, "theme", "", "Color theme (overrides config)")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	_ = cmd.RegisterFlagCompletionFunc("color", cobra.FixedCompletions(config.ValidColorModes, cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("theme", cobra.FixedCompletions(config.ValidThemes(), cobra.ShellCompDirectiveNoFileComp))

	// Version flag
	cmd.Version = versionString()
	cmd.SetVersionTemplate("{{.Version}}\n")

	cmd.AddGroup(
		&cobra.Group{ID: GroupWidgets, Title: "Widget Commands:"},
		&cobra.Group{ID: GroupConfig, Title: "Configuration Commands:"},
	)

	cmd.AddCommand(newTableCmd())
	cmd.AddCommand(newProgressCmd())
	cmd.AddCommand(newSelectCmd())
	cmd.AddCommand(newMultiSelectCmd())

	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newCompletionCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// setup loads the effective config and attaches the logger, config and
// printer to the command context.
func setup(cmd *cobra.Command, flags globalFlags) error {
	if flags.width < 0 {
		return fmt.Errorf("invalid --width %d: must not be negative", flags.width)
	}
	if err := config.ValidateColor(flags.color); err != nil {
		return fmt.Errorf("--color: %w", err)
	}
	if err := config.ValidateTheme(flags.theme); err != nil {
		return fmt.Errorf("--theme: %w", err)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	// Create logger (stderr for diagnostics)
	logger := log.New(cmd.ErrOrStderr(), flags.verbose, flags.quiet)
	ctx = log.WithLogger(ctx, logger)

	global, err := config.Load()
	if err != nil {
		logger.Printf("Warning: %v\n", err)
	}
	resolver := config.NewResolver(&global)
	ctx = config.WithResolver(ctx, resolver)

	cfg := resolver.Global()
	if wd, err := os.Getwd(); err == nil {
		local, err := resolver.ConfigForDir(wd)
		if err != nil {
			logger.Printf("Warning: %v\n", err)
		} else {
			cfg = local
		}
	}

	// Flags override config values
	effective := *cfg
	if flags.width > 0 {
		effective.Width = flags.width
	}
	if flags.color != "" {
		effective.Color = flags.color
	}
	if flags.theme != "" {
		effective.Theme = flags.theme
	}
	ctx = config.WithConfig(ctx, &effective)

	t, err := newTerminal(ctx, &effective, cmd.OutOrStdout(), cmd.InOrStdin())
	if err != nil {
		return err
	}

	// Add output printer (stdout for primary data)
	ctx = output.WithPrinter(ctx, output.New(cmd.OutOrStdout()).WithTerminal(t))

	cmd.SetContext(ctx)
	return nil
}

// newTerminal builds the render terminal for out. Width comes from the
// config, then the terminal itself; when out is not a terminal the
// controlling terminal on stdin is probed.
func newTerminal(ctx context.Context, cfg *config.Config, out io.Writer, in io.Reader) (*render.Terminal, error) {
	theme, err := cfg.ResolvedTheme()
	if err != nil {
		return nil, err
	}
	mode, err := render.ParseColorMode(cfg.Color)
	if err != nil {
		return nil, err
	}

	var input term.Input
	inFile, isFile := in.(*os.File)
	if isFile {
		input = term.FileInput{File: inFile}
	} else {
		input = term.ReaderInput(in)
	}

	width := cfg.Width
	if width == 0 && isFile {
		if f, ok := out.(*os.File); !ok || !term.IsTerminal(f) {
			if w, _, err := term.ProbeSize(ctx, inFile); err == nil {
				width = w
			} else {
				log.FromContext(ctx).Debug("width probe failed", "err", err)
			}
		}
	}

	return render.New(
		render.WithOutput(out),
		render.WithWidth(width),
		render.WithColorMode(mode),
		render.WithTheme(theme),
		render.WithInput(input),
	), nil
}

// Execute runs the root command with signal handling.
func Execute() {
	// Create context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Run 'inkwell -h' for help")
		cancel()
		os.Exit(1)
	}
}
