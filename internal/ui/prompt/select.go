package prompt

import (
	"context"
	"slices"

	"github.com/sahilm/fuzzy"

	"github.com/raphi011/inkwell/internal/log"
	"github.com/raphi011/inkwell/internal/term"
	"github.com/raphi011/inkwell/internal/ui/animation"
	"github.com/raphi011/inkwell/internal/ui/render"
	"github.com/raphi011/inkwell/internal/ui/styles"
)

// ToggleKey flips the entry under the cursor in a multi-select list. With
// filtering enabled, typed characters go to the filter and Tab toggles
// instead.
const ToggleKey = "x"

type config struct {
	title                 string
	markers               styles.Markers
	cursor                int
	instructions          bool
	onlyActiveDescription bool
	clearOnExit           bool
	limit                 int
	filter                bool
}

// Option configures a selection prompt.
type Option func(*config)

// WithTitle sets the line drawn above the entries.
func WithTitle(title string) Option {
	return func(c *config) {
		c.title = title
	}
}

// WithMarkers overrides the cursor and selection markers. Empty fields keep
// their defaults.
func WithMarkers(m styles.Markers) Option {
	return func(c *config) {
		c.markers = m
	}
}

// WithStartingCursor places the cursor on entry i.
func WithStartingCursor(i int) Option {
	return func(c *config) {
		c.cursor = i
	}
}

// WithInstructions controls the key help line below the entries.
// Default true.
func WithInstructions(show bool) Option {
	return func(c *config) {
		c.instructions = show
	}
}

// WithOnlyActiveDescription hides descriptions of entries not under the
// cursor.
func WithOnlyActiveDescription(only bool) Option {
	return func(c *config) {
		c.onlyActiveDescription = only
	}
}

// WithClearOnExit erases the list when the prompt returns. When false the
// last frame stays on screen. Default true.
func WithClearOnExit(enabled bool) Option {
	return func(c *config) {
		c.clearOnExit = enabled
	}
}

// WithLimit caps the number of entries a multi-select list lets the user
// select. Zero means no limit.
func WithLimit(n int) Option {
	return func(c *config) {
		c.limit = max(n, 0)
	}
}

// WithFilter enables fuzzy filtering: typed characters narrow the list.
func WithFilter(enabled bool) Option {
	return func(c *config) {
		c.filter = enabled
	}
}

func newConfig(opts []Option) config {
	c := config{instructions: true, clearOnExit: true}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// SelectList lets the user pick one of entries. It returns false if the
// user cancelled, input ended, or the terminal is not interactive.
func SelectList(ctx context.Context, t *render.Terminal, entries []string, opts ...Option) (string, bool) {
	items := make([]Entry, len(entries))
	for i, e := range entries {
		items[i] = Entry{Title: e}
	}
	return SelectEntry(ctx, t, items, opts...)
}

// SelectEntry is like [SelectList] for entries with descriptions. Selected
// flags are ignored.
func SelectEntry(ctx context.Context, t *render.Terminal, entries []Entry, opts ...Option) (string, bool) {
	cfg := newConfig(opts)
	cfg.markers = styles.Markers{Cursor: cfg.markers.Cursor}.Merge(styles.Markers{Cursor: styles.DefaultMarkers().Cursor})
	cfg.limit = 1

	items := make([]Entry, len(entries))
	for i, e := range entries {
		items[i] = Entry{Title: e.Title, Description: e.Description}
	}
	result, ok := run(ctx, t, items, true, cfg)
	if !ok || len(result) == 0 {
		return "", false
	}
	return result[0].Title, true
}

// MultiSelectList lets the user select any number of entries, up to the
// configured limit. Entries with Selected set start out selected. It returns
// the titles of the selected entries in their original order, or false if
// the user cancelled, input ended, or the terminal is not interactive.
func MultiSelectList(ctx context.Context, t *render.Terminal, entries []Entry, opts ...Option) ([]string, bool) {
	cfg := newConfig(opts)
	cfg.markers = cfg.markers.Merge(styles.DefaultMarkers())

	result, ok := run(ctx, t, entries, false, cfg)
	if !ok {
		return nil, false
	}
	selected := []string{}
	for _, e := range result {
		if e.Selected {
			selected = append(selected, e.Title)
		}
	}
	return selected, true
}

// selection is the state of a running prompt.
type selection struct {
	items   []Entry
	single  bool
	cfg     config
	cursor  int   // index into visible
	visible []int // item indexes in display order
	matches map[int][]int
	filter  []rune
}

func newSelection(items []Entry, single bool, cfg config) *selection {
	s := &selection{items: items, single: single, cfg: cfg}
	s.applyFilter()
	s.cursor = cfg.cursor
	s.clamp()
	return s
}

// itemSource implements fuzzy.Source over entry titles.
type itemSource []Entry

func (s itemSource) String(i int) string { return s[i].Title }
func (s itemSource) Len() int            { return len(s) }

func (s *selection) applyFilter() {
	s.matches = nil
	if len(s.filter) == 0 {
		s.visible = make([]int, len(s.items))
		for i := range s.items {
			s.visible[i] = i
		}
		return
	}
	found := fuzzy.FindFrom(string(s.filter), itemSource(s.items))
	s.visible = make([]int, len(found))
	s.matches = make(map[int][]int, len(found))
	for i, m := range found {
		s.visible[i] = m.Index
		s.matches[i] = m.MatchedIndexes
	}
	s.cursor = 0
}

func (s *selection) clamp() {
	s.cursor = min(max(s.cursor, 0), max(len(s.visible)-1, 0))
}

func (s *selection) selectedCount() int {
	n := 0
	for _, e := range s.items {
		if e.Selected {
			n++
		}
	}
	return n
}

// toggle flips the entry under the cursor. Selecting is refused once the
// limit is reached; deselecting always works.
func (s *selection) toggle() {
	if len(s.visible) == 0 {
		return
	}
	e := &s.items[s.visible[s.cursor]]
	if e.Selected || s.cfg.limit == 0 || s.selectedCount() < s.cfg.limit {
		e.Selected = !e.Selected
	}
}

type outcome int

const (
	pending outcome = iota
	confirmed
	cancelled
)

// handle applies one key press.
func (s *selection) handle(ev term.KeyEvent) outcome {
	switch {
	case ev.IsCtrlC(), ev.Key == term.KeyEscape:
		return cancelled
	case ev.Key == term.KeyArrowUp:
		s.cursor--
	case ev.Key == term.KeyArrowDown:
		s.cursor++
	case ev.Key == term.KeyHome, ev.Key == term.KeyPageUp:
		s.cursor = 0
	case ev.Key == term.KeyEnd, ev.Key == term.KeyPageDown:
		s.cursor = len(s.visible) - 1
	case ev.Key == term.KeyEnter:
		if s.single && len(s.visible) == 0 {
			return pending
		}
		return confirmed
	case !s.single && s.isToggle(ev):
		s.toggle()
	case s.cfg.filter && ev.Key == term.KeyBackspace:
		if len(s.filter) > 0 {
			s.filter = s.filter[:len(s.filter)-1]
			s.applyFilter()
		}
	case s.cfg.filter && ev.IsRune():
		s.filter = append(s.filter, []rune(ev.Key)...)
		s.applyFilter()
	}
	s.clamp()
	return pending
}

func (s *selection) isToggle(ev term.KeyEvent) bool {
	if s.cfg.filter {
		return ev.Key == term.KeyTab
	}
	return ev.Key == ToggleKey && ev.IsRune()
}

// result returns the chosen entries: the entry under the cursor for single
// selection, every entry with its selected flag for multi selection.
func (s *selection) result() []Entry {
	if s.single {
		return []Entry{s.items[s.visible[s.cursor]]}
	}
	return s.items
}

func (s *selection) widget(t *render.Terminal) render.Renderable {
	entries := make([]Entry, len(s.visible))
	for i, idx := range s.visible {
		entries[i] = s.items[idx]
	}
	l := &List{
		Entries:               entries,
		Title:                 s.cfg.title,
		Cursor:                s.cursor,
		Markers:               s.cfg.markers,
		StyleOnHover:          s.single,
		OnlyActiveDescription: s.cfg.onlyActiveDescription,
		Filter:                string(s.filter),
		ShowFilter:            s.cfg.filter,
		Matches:               s.matches,
	}
	if s.cfg.instructions {
		l.Caption = s.instructions(t)
	}
	return l
}

func (s *selection) instructions(t *render.Terminal) render.Renderable {
	var pairs []string
	if !s.single {
		toggle := ToggleKey
		if s.cfg.filter {
			toggle = "tab"
		}
		pairs = append(pairs, toggle, "toggle")
	}
	pairs = append(pairs, "↑", "up", "↓", "down")
	if s.cfg.filter {
		pairs = append(pairs, "type", "filter")
	}
	if s.single {
		pairs = append(pairs, "enter", "select")
	} else {
		pairs = append(pairs, "enter", "confirm")
	}
	return instructions(t, pairs...)
}

// run is the read-eval loop shared by the selection prompts. The context is
// checked between key presses; a blocked read is not interrupted.
func run(ctx context.Context, t *render.Terminal, entries []Entry, single bool, cfg config) ([]Entry, bool) {
	l := log.FromContext(ctx)
	if len(entries) == 0 {
		return nil, false
	}

	scope, err := t.EnterRawMode()
	if err != nil {
		l.Debug("select: raw mode unavailable", "err", err)
		return nil, false
	}
	defer scope.Close()

	s := newSelection(slices.Clone(entries), single, cfg)
	a := animation.New(t, func(sel *selection) render.Renderable {
		return sel.widget(t)
	})
	defer func() {
		if cfg.clearOnExit {
			_ = a.Clear()
		} else {
			_ = a.Stop()
		}
	}()

	for {
		if err := ctx.Err(); err != nil {
			l.Debug("select: cancelled", "err", err)
			return nil, false
		}
		if err := a.Update(s); err != nil {
			l.Debug("select: draw failed", "err", err)
			return nil, false
		}
		ev, err := scope.ReadKey()
		if err != nil {
			l.Debug("select: input ended", "err", err)
			return nil, false
		}
		switch s.handle(ev) {
		case confirmed:
			return s.result(), true
		case cancelled:
			l.Debug("select: cancelled by key", "key", ev)
			return nil, false
		}
	}
}
