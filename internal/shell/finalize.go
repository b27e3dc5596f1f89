package shell

import (
	"fmt"
	"io"
	"os"
	"os/exec"
)

// OutputShape records which streams a builtin produced and whether they
// need a trailing newline (spec §4.4). Echo-style builtins set Flush false
// and the renderer appends the newline; builtins whose bytes must go out
// exactly as given (clear's escape sequence) set Flush true to mean "write
// exactly these bytes, already newline-terminated or not."
type OutputShape int

const (
	ShapeNone OutputShape = iota
	ShapeStdoutOnly
	ShapeStderrOnly
	ShapeBoth
)

// CommandResult is what a builtin produces in place of a real process exit.
type CommandResult struct {
	Shape    OutputShape
	Stdout   string
	Stderr   string
	Flush    bool
	ExitCode int
}

// StageHandle is what Dispatch returns for one pipeline stage: either a
// builtin's already-computed CommandResult, or a live external process.
type StageHandle struct {
	Builtin *CommandResult
	Process *exec.Cmd
}

// Finalize waits for a stage (if external) and writes its output to the
// endpoints it was given, returning the stage's exit code. Builtins never
// block; externals are waited on here, in pipeline order, matching a POSIX
// shell reporting the exit status of its last stage (spec §4.4, §5).
func Finalize(handle StageHandle, stdout, stderr StageEndpoint, inheritedOut, inheritedErr *os.File) int {
	if handle.Builtin != nil {
		return writeBuiltinResult(*handle.Builtin, stdout, stderr, inheritedOut, inheritedErr)
	}
	return waitExternal(handle.Process)
}

// writeBuiltinResult renders res through stdoutEP/stderrEP. Both endpoints
// are materialized and closed unconditionally, even when res.Shape means
// there's nothing to write on one or both of them: a non-terminal stage's
// stdout is frequently a PipeWrite whose parent-side copy must close so the
// next stage's read sees EOF. A builtin like `cd` that produces ShapeNone
// (or the no-op empty-command handle) would otherwise leave that pipe held
// open forever, hanging the stage downstream of it (spec §5).
func writeBuiltinResult(res CommandResult, stdoutEP, stderrEP StageEndpoint, inheritedOut, inheritedErr *os.File) int {
	writeTo(stdoutEP, inheritedOut, res.Stdout, res.Flush, res.Shape == ShapeStdoutOnly || res.Shape == ShapeBoth)
	writeTo(stderrEP, inheritedErr, res.Stderr, res.Flush, res.Shape == ShapeStderrOnly || res.Shape == ShapeBoth)
	return res.ExitCode
}

func writeTo(ep StageEndpoint, inherited *os.File, text string, flush, shouldWrite bool) {
	w, closer, err := ep.Writer(inherited)
	if err != nil {
		return
	}
	defer closer()

	if !shouldWrite {
		return
	}
	if !flush {
		fmt.Fprintln(w, text)
		return
	}
	if text != "" {
		io.WriteString(w, text)
	}
}

func waitExternal(cmd *exec.Cmd) int {
	if cmd == nil {
		return 0
	}
	err := cmd.Wait()
	if err == nil {
		return 0
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode()
	}
	return 1
}
