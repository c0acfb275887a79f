package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/raphi011/inkwell/internal/config"
	"github.com/raphi011/inkwell/internal/ui/prompt"
)

// execute runs the command tree with args against in-memory streams. The
// global config points at a missing file so user settings do not leak in.
func execute(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Setenv("INKWELL_CONFIG", filepath.Join(t.TempDir(), "config.toml"))

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestTableCmd_Stdin(t *testing.T) {
	def := `[[body]]
cells = ["a", "bb"]

[[body]]
cells = ["ccc", "d"]
`
	got, _, err := execute(t, def, "table", "-f", "-", "--border", "ascii", "--color", "never")
	if err != nil {
		t.Fatalf("table error = %v", err)
	}
	want := strings.Join([]string{
		"+-----+----+",
		"| a   | bb |",
		"+-----+----+",
		"| ccc | d  |",
		"+-----+----+",
	}, "\n") + "\n"
	if got != want {
		t.Errorf("table output =\n%s\nwant\n%s", got, want)
	}
}

func TestTableCmd_Demo(t *testing.T) {
	got, _, err := execute(t, "", "table", "--width", "60", "--color", "never")
	if err != nil {
		t.Fatalf("table error = %v", err)
	}
	for _, want := range []string{"╭", "Widget", "fuzzy filter", "3 widgets", "inkwell table demo"} {
		if !strings.Contains(got, want) {
			t.Errorf("demo table missing %q:\n%s", want, got)
		}
	}
	for i, line := range strings.Split(strings.TrimSuffix(got, "\n"), "\n") {
		if w := len([]rune(line)); w > 60 {
			t.Errorf("line %d is %d cells wide, want at most 60", i, w)
		}
	}
}

func TestTableCmd_Errors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"bad border", []string{"table", "--border", "wavy"}, "--border"},
		{"missing file", []string{"table", "-f", "does-not-exist.toml"}, "failed to read table definition"},
		{"bad color", []string{"table", "--color", "purple"}, "--color"},
		{"bad theme", []string{"table", "--theme", "neon"}, "--theme"},
		{"negative width", []string{"table", "--width", "-2"}, "--width"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, "", tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestSelectCmd_NotInteractive(t *testing.T) {
	stdout, stderr, err := execute(t, "", "select", "a", "b", "c")
	if err != nil {
		t.Fatalf("select error = %v", err)
	}
	if stdout != "a\nb\nc\n" {
		t.Errorf("stdout = %q, want the entries one per line", stdout)
	}
	if !strings.Contains(stderr, "not a terminal") {
		t.Errorf("stderr = %q, want a warning", stderr)
	}
}

func TestSelectCmd_QuietSuppressesWarning(t *testing.T) {
	_, stderr, err := execute(t, "", "select", "-q", "-d", ":", "fix:Bug fixes")
	if err != nil {
		t.Fatalf("select error = %v", err)
	}
	if stderr != "" {
		t.Errorf("stderr = %q, want empty with --quiet", stderr)
	}
}

func TestMultiSelectCmd(t *testing.T) {
	stdout, _, err := execute(t, "", "multiselect", "--limit", "1", "x", "y")
	if err != nil {
		t.Fatalf("multiselect error = %v", err)
	}
	if stdout != "x\ny\n" {
		t.Errorf("stdout = %q, want %q", stdout, "x\ny\n")
	}

	if _, _, err := execute(t, "", "multiselect", "--limit", "-1", "x"); err == nil {
		t.Error("expected error for negative limit")
	}
	if _, _, err := execute(t, "", "multiselect"); err == nil {
		t.Error("expected error without entries")
	}
}

func TestProgressCmd(t *testing.T) {
	stdout, _, err := execute(t, "", "progress", "--tasks", "2", "--total", "3", "--tick", "1ms", "--color", "never")
	if err != nil {
		t.Fatalf("progress error = %v", err)
	}
	for _, want := range []string{"task-1", "task-2", "3/3", "100%"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("progress output missing %q", want)
		}
	}
}

func TestProgressCmd_Indeterminate(t *testing.T) {
	stdout, _, err := execute(t, "", "progress", "--tasks", "1", "--total", "2", "--tick", "1ms", "--indeterminate", "--color", "never")
	if err != nil {
		t.Fatalf("progress error = %v", err)
	}
	if !strings.Contains(stdout, "2/2") {
		t.Errorf("progress output missing final count:\n%q", stdout)
	}
}

func TestProgressCmd_InvalidFlags(t *testing.T) {
	if _, _, err := execute(t, "", "progress", "--tasks", "0"); err == nil {
		t.Error("expected error for zero tasks")
	}
	if _, _, err := execute(t, "", "progress", "--total", "0"); err == nil {
		t.Error("expected error for zero total")
	}
}

func TestConfigShow(t *testing.T) {
	stdout, _, err := execute(t, "", "config", "show", "--theme", "nord", "--width", "50")
	if err != nil {
		t.Fatalf("config show error = %v", err)
	}
	for _, want := range []string{`theme = "nord"`, "width = 50", "[progress]"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("config show missing %q:\n%s", want, stdout)
		}
	}
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inkwell", "config.toml")

	run := func(args ...string) (string, error) {
		var out bytes.Buffer
		t.Setenv("INKWELL_CONFIG", path)
		cmd := newRootCmd()
		cmd.SetArgs(args)
		cmd.SetIn(strings.NewReader(""))
		cmd.SetOut(&out)
		cmd.SetErr(&bytes.Buffer{})
		err := cmd.Execute()
		return out.String(), err
	}

	stdout, err := run("config", "init")
	if err != nil {
		t.Fatalf("config init error = %v", err)
	}
	if want := "Created config file: " + path + "\n"; stdout != want {
		t.Errorf("stdout = %q, want %q", stdout, want)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not created: %v", err)
	}

	if _, err := run("config", "init"); err == nil || !strings.Contains(err.Error(), "use -f") {
		t.Errorf("second init error = %v, want hint to use -f", err)
	}
	if _, err := run("config", "init", "-f"); err != nil {
		t.Errorf("forced init error = %v", err)
	}

	stdout, err = run("config", "init", "--stdout")
	if err != nil {
		t.Fatalf("config init --stdout error = %v", err)
	}
	if stdout != config.DefaultConfig() {
		t.Error("config init --stdout should print the default config")
	}
}

func TestConfigStyles(t *testing.T) {
	stdout, _, err := execute(t, "", "config", "styles", "--color", "never")
	if err != nil {
		t.Fatalf("config styles error = %v", err)
	}
	for _, want := range []string{"Style", "select.cursor", "progressbar.complete"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("config styles missing %q", want)
		}
	}
}

func TestVersionCmd(t *testing.T) {
	stdout, _, err := execute(t, "", "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !strings.HasPrefix(stdout, "inkwell dev (none, unknown, go") {
		t.Errorf("version = %q", stdout)
	}
}

func TestCompletionCmd(t *testing.T) {
	stdout, _, err := execute(t, "", "completion", "bash")
	if err != nil {
		t.Fatalf("completion error = %v", err)
	}
	if !strings.Contains(stdout, "inkwell") {
		t.Error("completion script should mention the command name")
	}
	if _, _, err := execute(t, "", "completion", "tcsh"); err == nil {
		t.Error("expected error for unsupported shell")
	}
}

func TestParseEntries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		args      []string
		delimiter string
		want      []prompt.Entry
	}{
		{"no delimiter", []string{"a:b"}, "", []prompt.Entry{{Title: "a:b"}}},
		{"split", []string{"fix:Bug fixes", "plain"}, ":", []prompt.Entry{
			{Title: "fix", Description: "Bug fixes"},
			{Title: "plain"},
		}},
		{"first delimiter only", []string{"a:b:c"}, ":", []prompt.Entry{{Title: "a", Description: "b:c"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := parseEntries(tt.args, tt.delimiter)
			if len(got) != len(tt.want) {
				t.Fatalf("parseEntries() = %+v, want %+v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("parseEntries()[%d] = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestPreselect(t *testing.T) {
	t.Parallel()

	entries := parseEntries([]string{"a", "b", "c"}, "")
	preselect(entries, []string{"c", "a", "zzz"})
	want := []bool{true, false, true}
	for i, e := range entries {
		if e.Selected != want[i] {
			t.Errorf("entries[%d].Selected = %v, want %v", i, e.Selected, want[i])
		}
	}
}
