package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"time"

	"github.com/raphi011/inkwell/internal/log"
)

// RunContext executes a command in dir and discards its output.
func RunContext(ctx context.Context, dir, name string, args ...string) error {
	_, err := run(ctx, nil, dir, name, args...)
	return err
}

// OutputContext executes a command in dir and returns its stdout.
func OutputContext(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	return run(ctx, nil, dir, name, args...)
}

// OutputWithStdin executes a command with stdin connected to in and returns
// its stdout. Commands like stty read the terminal from stdin.
func OutputWithStdin(ctx context.Context, in io.Reader, name string, args ...string) ([]byte, error) {
	return run(ctx, in, "", name, args...)
}

func run(ctx context.Context, in io.Reader, dir, name string, args ...string) ([]byte, error) {
	c := exec.CommandContext(ctx, name, args...)
	c.Dir = dir
	c.Stdin = in

	var stdout, stderr bytes.Buffer
	c.Stdout = &stdout
	c.Stderr = &stderr

	done := log.FromContext(ctx).Command(dir, name, args...)
	start := time.Now()
	err := c.Run()
	done(time.Since(start))

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s", msg)
		}
		return nil, err
	}
	return stdout.Bytes(), nil
}
