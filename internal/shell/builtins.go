package shell

import (
	"fmt"
	"strings"

	"github.com/gYonder/posh/internal/session"
)

// ErrExit is returned by Dispatch whenever the `exit` builtin runs, including
// inside a pipeline stage; the REPL loop checks for it and stops reading further lines
// (spec §4.3: exit inside a pipeline stage is treated the same as exiting
// the whole shell — see the Open Question decision in the grounding ledger).
type ErrExit struct {
	Code int
}

func (e *ErrExit) Error() string {
	return fmt.Sprintf("exit: %d", e.Code)
}

func runEcho(cmd *SimpleCommand) CommandResult {
	joined := make([]string, len(cmd.Args))
	for i, a := range cmd.Args {
		joined[i] = a.Text
	}
	return CommandResult{
		Shape:  ShapeStdoutOnly,
		Stdout: strings.Join(joined, " "),
	}
}

func runType(cmd *SimpleCommand, paths PathIndex) CommandResult {
	name := Get(cmd.Args, 0, "")
	if name == "" {
		return CommandResult{}
	}
	if BuiltinNames[name] {
		return CommandResult{
			Shape:  ShapeStdoutOnly,
			Stdout: fmt.Sprintf("%s is a shell builtin", name),
		}
	}
	if abs, ok := paths.Lookup(name); ok {
		return CommandResult{
			Shape:  ShapeStdoutOnly,
			Stdout: fmt.Sprintf("%s is %s", name, abs),
		}
	}
	return CommandResult{
		Shape:    ShapeStderrOnly,
		Stderr:   fmt.Sprintf("%s: not found", name),
		ExitCode: 1,
	}
}

func runExit(cmd *SimpleCommand) CommandResult {
	code := Get(cmd.Args, 0, 0)
	return CommandResult{ExitCode: code}
}

func runPwd(sess *session.Session) CommandResult {
	return CommandResult{Shape: ShapeStdoutOnly, Stdout: sess.CWD}
}

func runCd(cmd *SimpleCommand, sess *session.Session) CommandResult {
	target := Get(cmd.Args, 0, "~")
	if err := sess.Chdir(target); err != nil {
		return CommandResult{
			Shape:    ShapeStderrOnly,
			Stderr:   fmt.Sprintf("cd: %s: No such file or directory", target),
			ExitCode: 1,
		}
	}
	return CommandResult{}
}

// runClear clears the terminal via the ANSI "clear screen and home cursor"
// sequence, the same capability a terminfo-driven `clear(1)` emits.
func runClear() CommandResult {
	return CommandResult{
		Shape:  ShapeStdoutOnly,
		Stdout: "\x1b[H\x1b[2J",
		Flush:  true,
	}
}
