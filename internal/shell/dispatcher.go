package shell

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/gYonder/posh/internal/session"
)

// Dispatch resolves one SimpleCommand against the builtin set and the
// PathIndex, producing a StageHandle. stdin/stdout/stderr are the
// endpoints this stage should use if it turns out to be external; builtins
// ignore them here and instead hand their CommandResult to Finalize, which
// writes it through the same endpoints (spec §4.3).
//
// A non-nil *ErrExit return means the `exit` builtin ran; the caller should
// stop processing further pipeline stages and further input lines.
func Dispatch(cmd *SimpleCommand, stdin, stdout, stderr StageEndpoint, sess *session.Session, paths PathIndex) (StageHandle, error) {
	name := cmd.Name.Text

	if name == "" {
		closeUnread(stdin)
		return StageHandle{Builtin: &CommandResult{}}, nil
	}

	if BuiltinNames[name] {
		// None of the builtins read stdin; drop the parent's copy of a
		// piped-in stdin immediately so an upstream writer sees EOF rather
		// than leaking the descriptor for the rest of the process's life.
		closeUnread(stdin)
		return dispatchBuiltin(name, cmd, sess, paths)
	}

	abs, ok := paths.Lookup(name)
	if !ok {
		closeUnread(stdin)
		return StageHandle{Builtin: &CommandResult{
			Shape:    ShapeStderrOnly,
			Stderr:   fmt.Sprintf("%s: command not found", name),
			ExitCode: 127,
		}}, nil
	}

	args := make([]string, 0, len(cmd.Args)+1)
	args = append(args, name)
	for _, a := range cmd.Args {
		args = append(args, a.Text)
	}

	child := exec.Command(abs)
	child.Args = args

	stdinFile, stdinCloser, err := stdin.Reader()
	if err != nil {
		return StageHandle{}, err
	}
	stdoutFile, stdoutCloser, err := stdout.Writer(os.Stdout)
	if err != nil {
		stdinCloser()
		return StageHandle{}, err
	}
	stderrFile, stderrCloser, err := stderr.Writer(os.Stderr)
	if err != nil {
		stdinCloser()
		stdoutCloser()
		return StageHandle{}, err
	}

	child.Stdin = stdinFile
	child.Stdout = stdoutFile
	child.Stderr = stderrFile

	err = child.Start()
	// The pipeline owns closing the parent's copies of pipe/file endpoints
	// immediately after spawn regardless of start success, so EOF
	// propagates to sibling stages (spec §4.4, §5). Inherit/Null closers
	// are no-ops or close a throwaway /dev/null handle either way.
	stdinCloser()
	stdoutCloser()
	stderrCloser()
	if err != nil {
		return StageHandle{}, err
	}

	return StageHandle{Process: child}, nil
}

// closeUnread drops the parent's copy of a stdin endpoint that nothing in
// this process is going to read (empty command, or a builtin — none of
// which consume stdin).
func closeUnread(stdin StageEndpoint) {
	if stdin.Kind == PipeRead || stdin.Kind == File {
		stdin.File.Close()
	}
}

func dispatchBuiltin(name string, cmd *SimpleCommand, sess *session.Session, paths PathIndex) (StageHandle, error) {
	switch name {
	case "echo":
		res := runEcho(cmd)
		return StageHandle{Builtin: &res}, nil
	case "type":
		res := runType(cmd, paths)
		return StageHandle{Builtin: &res}, nil
	case "exit":
		res := runExit(cmd)
		return StageHandle{Builtin: &res}, &ErrExit{Code: res.ExitCode}
	case "pwd":
		res := runPwd(sess)
		return StageHandle{Builtin: &res}, nil
	case "cd":
		res := runCd(cmd, sess)
		return StageHandle{Builtin: &res}, nil
	case "clear":
		res := runClear()
		return StageHandle{Builtin: &res}, nil
	}
	// Unreachable: name is already known to be in BuiltinNames.
	return StageHandle{Builtin: &CommandResult{}}, nil
}
