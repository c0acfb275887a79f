// Package cmd provides helpers for executing external commands with proper
// error handling.
//
// Failed commands report their stderr output as the error message, and every
// invocation is traced through the context logger in verbose mode.
//
// # Usage
//
//	out, err := cmd.OutputContext(ctx, "", "stty", "size")
//	if err != nil {
//	    // err contains stderr output if available
//	}
//
// Only terminal probing shells out: when the platform size query fails, the
// terminal package falls back to asking stty.
package cmd
