package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/raphi011/inkwell/internal/config"
	"github.com/raphi011/inkwell/internal/output"
	"github.com/raphi011/inkwell/internal/storage"
	"github.com/raphi011/inkwell/internal/ui/prompt"
	"github.com/raphi011/inkwell/internal/ui/render"
	"github.com/raphi011/inkwell/internal/ui/table"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "config",
		Short:   "Manage configuration",
		Aliases: []string{"cfg"},
		GroupID: GroupConfig,
		Long: `Manage inkwell configuration.

Global config: ~/.config/inkwell/config.toml (or $INKWELL_CONFIG)
Local config:  .inkwell.toml (in the working directory)`,
		Example: `  inkwell config init          # Create default global config
  inkwell config init --local  # Create local directory config
  inkwell config show          # Show effective config
  inkwell config styles        # List theme styles`,
	}

	cmd.AddCommand(newConfigInitCmd())
	cmd.AddCommand(newConfigShowCmd())
	cmd.AddCommand(newConfigStylesCmd())

	return cmd
}

func newConfigInitCmd() *cobra.Command {
	var (
		force  bool
		stdout bool
		local  bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create default config file",
		Args:  cobra.NoArgs,
		Long: `Create default config file.

Without flags, creates the global config. With --local, creates
.inkwell.toml in the working directory. When the file exists and the
terminal is interactive, asks before overwriting it.`,
		Example: `  inkwell config init           # Create global config
  inkwell config init --local   # Create local config
  inkwell config init -f        # Overwrite existing config
  inkwell config init -s        # Print config to stdout`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p := output.FromContext(ctx)

			if local {
				return initLocalConfig(cmd, force, stdout)
			}
			if stdout {
				p.Print(config.DefaultConfig())
				return nil
			}

			path, err := config.Init(force)
			if errors.Is(err, config.ErrConfigExists) && interactive(cmd) {
				if overwrite, ok := prompt.Confirm(ctx, p.Terminal(), "Config file exists. Overwrite?"); ok && overwrite {
					path, err = config.Init(true)
				}
			}
			if err != nil {
				if errors.Is(err, config.ErrConfigExists) {
					return fmt.Errorf("%w (use -f to overwrite)", err)
				}
				return err
			}

			p.Printf("Created config file: %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite existing config")
	cmd.Flags().BoolVarP(&stdout, "stdout", "s", false, "Print config to stdout")
	cmd.Flags().BoolVar(&local, "local", false, "Create .inkwell.toml instead of global config")

	return cmd
}

func initLocalConfig(cmd *cobra.Command, force, stdout bool) error {
	ctx := cmd.Context()
	p := output.FromContext(ctx)
	content := config.DefaultLocalConfig()

	if stdout {
		p.Print(content)
		return nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get working directory: %w", err)
	}
	path := filepath.Join(wd, config.LocalConfigFileName)

	if !force {
		if _, err := os.Stat(path); err == nil {
			overwrite, ok := false, false
			if interactive(cmd) {
				overwrite, ok = prompt.Confirm(ctx, p.Terminal(), "Local config exists. Overwrite?")
			}
			if !ok || !overwrite {
				return fmt.Errorf("%w: %s (use -f to overwrite)", config.ErrConfigExists, path)
			}
		}
	}

	if err := storage.WriteAtomic(path, []byte(content), 0644); err != nil {
		return err
	}

	p.Printf("Created local config: %s\n", path)
	return nil
}

func newConfigShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Args:  cobra.NoArgs,
		Long:  `Show the effective configuration as TOML, after local overrides and flags.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := config.FromContext(ctx)
			if cfg == nil {
				d := config.Default()
				cfg = &d
			}
			return toml.NewEncoder(output.FromContext(ctx).Writer()).Encode(cfg)
		},
	}
}

func newConfigStylesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "styles",
		Short: "List the styles of the effective theme",
		Args:  cobra.NoArgs,
		Long: `List every style name of the effective theme with a sample.

Style names are the keys of [styles.NAME] overrides in the config file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := output.FromContext(cmd.Context())
			return p.Render(stylesTable(p.Terminal()))
		},
	}
}

// stylesTable lists the theme styles of t with a styled sample each.
func stylesTable(t *render.Terminal) *table.Table {
	b := table.New()
	b.Header().Row("Style", "Sample")
	for _, name := range t.Theme().StyleNames() {
		b.Body().Row(name, render.NewText("inkwell", t.Style(name)))
	}
	return b.MustBuild()
}
