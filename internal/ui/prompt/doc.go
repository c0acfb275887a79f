// Package prompt provides interactive prompts driven by raw key input.
//
// Every prompt enters raw mode on the terminal's input for its duration and
// repaints itself in place with an animation. When the terminal is not
// interactive, prompts return immediately with ok set to false so callers
// can fall back to non-interactive behavior.
//
// Available prompts:
//   - [SelectList]: single selection from a list
//   - [MultiSelectList]: multiple selection with an optional limit
//   - [Confirm]: yes/no confirmation
//
// [List] is the widget the selection prompts draw; it renders on its own as
// well.
package prompt
