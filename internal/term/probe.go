package term

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/raphi011/inkwell/internal/cmd"
)

// ProbeSize asks stty for the size of the terminal connected to in. It is the
// fallback for when the ioctl query on the output fails, e.g. when stdout is
// redirected but stdin is still a terminal.
func ProbeSize(ctx context.Context, in *os.File) (width, height int, err error) {
	if !IsTerminal(in) {
		return 0, 0, ErrNotTerminal
	}
	out, err := cmd.OutputWithStdin(ctx, in, "stty", "size")
	if err != nil {
		// Some systems only find stty through env.
		out, err = cmd.OutputWithStdin(ctx, in, "/usr/bin/env", "stty", "size")
		if err != nil {
			return 0, 0, fmt.Errorf("stty size: %w", err)
		}
	}
	return ParseSttySize(string(out))
}

// ParseSttySize parses the "rows columns" output of stty size.
func ParseSttySize(s string) (width, height int, err error) {
	fields := strings.Fields(s)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("unexpected stty output %q", s)
	}
	height, err = strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("unexpected stty output %q: %w", s, err)
	}
	width, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("unexpected stty output %q: %w", s, err)
	}
	return width, height, nil
}
