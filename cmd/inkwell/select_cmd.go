package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/inkwell/internal/config"
	"github.com/raphi011/inkwell/internal/log"
	"github.com/raphi011/inkwell/internal/output"
	"github.com/raphi011/inkwell/internal/term"
	"github.com/raphi011/inkwell/internal/ui/prompt"
)

// ErrCancelled is returned when the user aborts a selection.
var ErrCancelled = errors.New("selection cancelled")

// listFlags are shared by select and multiselect.
type listFlags struct {
	title     string
	filter    bool
	delimiter string
}

func (f *listFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.title, "title", "t", "", "Line drawn above the entries")
	cmd.Flags().BoolVar(&f.filter, "filter", false, "Fuzzy filter entries by typing")
	cmd.Flags().StringVarP(&f.delimiter, "delimiter", "d", "", "Split each entry into title and description at the first delimiter")
}

// options converts flags and config into prompt options.
func (f *listFlags) options(cfg *config.Config) []prompt.Option {
	opts := []prompt.Option{
		prompt.WithTitle(f.title),
		prompt.WithFilter(f.filter),
	}
	if cfg != nil {
		opts = append(opts,
			prompt.WithMarkers(cfg.Markers()),
			prompt.WithClearOnExit(cfg.ClearOnExit()),
			prompt.WithInstructions(cfg.Instructions()),
		)
	}
	return opts
}

// parseEntries splits args into entries. With an empty delimiter every arg
// is a title.
func parseEntries(args []string, delimiter string) []prompt.Entry {
	entries := make([]prompt.Entry, len(args))
	for i, arg := range args {
		entries[i] = prompt.Entry{Title: arg}
		if delimiter == "" {
			continue
		}
		if title, desc, ok := strings.Cut(arg, delimiter); ok {
			entries[i] = prompt.Entry{Title: title, Description: desc}
		}
	}
	return entries
}

func titles(entries []prompt.Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Title
	}
	return out
}

// interactive reports whether keys can be read from cmd's input.
func interactive(cmd *cobra.Command) bool {
	f, ok := cmd.InOrStdin().(*os.File)
	return ok && term.IsTerminal(f)
}

// plainFallback prints the entries when no terminal can take the selection.
func plainFallback(ctx context.Context, entries []prompt.Entry) error {
	log.FromContext(ctx).Printf("Warning: input is not a terminal, printing entries\n")
	output.FromContext(ctx).Lines(titles(entries))
	return nil
}

func newSelectCmd() *cobra.Command {
	var (
		flags  listFlags
		cursor int
	)

	cmd := &cobra.Command{
		Use:     "select <entry>...",
		Short:   "Pick one entry from an interactive list",
		GroupID: GroupWidgets,
		Args:    cobra.MinimumNArgs(1),
		Long: `Pick one entry from an interactive list and print it.

Move with the arrow keys, confirm with enter, cancel with escape or ctrl-c.
When input is not a terminal the entries are printed unchanged.`,
		Example: `  inkwell select red green blue
  inkwell select --filter $(ls)
  inkwell select -d : "fix:Bug fixes" "feat:New features"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			entries := parseEntries(args, flags.delimiter)
			if !interactive(cmd) {
				return plainFallback(ctx, entries)
			}

			p := output.FromContext(ctx)
			opts := append(flags.options(config.FromContext(ctx)),
				prompt.WithStartingCursor(cursor),
				prompt.WithOnlyActiveDescription(true),
			)

			picked, ok := prompt.SelectEntry(ctx, p.Terminal(), entries, opts...)
			if !ok {
				return ErrCancelled
			}
			p.Println(picked)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&cursor, "cursor", 0, "Index of the initially highlighted entry")

	return cmd
}

func newMultiSelectCmd() *cobra.Command {
	var (
		flags    listFlags
		limit    int
		selected []string
	)

	cmd := &cobra.Command{
		Use:     "multiselect <entry>...",
		Short:   "Select several entries from an interactive list",
		GroupID: GroupWidgets,
		Args:    cobra.MinimumNArgs(1),
		Long: `Select entries from an interactive list and print them, one per line.

Toggle the entry under the cursor with x (tab when filtering), confirm with
enter, cancel with escape or ctrl-c.`,
		Example: `  inkwell multiselect a b c
  inkwell multiselect --limit 2 --selected b a b c`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit < 0 {
				return fmt.Errorf("invalid --limit %d: must not be negative", limit)
			}
			ctx := cmd.Context()
			entries := parseEntries(args, flags.delimiter)
			preselect(entries, selected)
			if !interactive(cmd) {
				return plainFallback(ctx, entries)
			}

			p := output.FromContext(ctx)
			opts := append(flags.options(config.FromContext(ctx)), prompt.WithLimit(limit))
			picked, ok := prompt.MultiSelectList(ctx, p.Terminal(), entries, opts...)
			if !ok {
				return ErrCancelled
			}
			p.Lines(picked)
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVarP(&limit, "limit", "l", 0, "Maximum number of selected entries (0 for no limit)")
	cmd.Flags().StringSliceVar(&selected, "selected", nil, "Titles that start out selected")

	return cmd
}

// preselect marks entries whose title is in titles.
func preselect(entries []prompt.Entry, titles []string) {
	for i := range entries {
		for _, t := range titles {
			if entries[i].Title == t {
				entries[i].Selected = true
				break
			}
		}
	}
}
