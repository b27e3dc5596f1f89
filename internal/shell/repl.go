package shell

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"

	"github.com/gYonder/posh/internal/config"
	"github.com/gYonder/posh/internal/session"
	"github.com/gYonder/posh/internal/ui"
)

// Shell is the interactive REPL: read a line, lex it, parse it, run its
// pipeline, repeat. Everything outside that cycle — prompt rendering,
// history, tab completion, screen clearing — is delegated to collaborators
// (spec §1).
type Shell struct {
	Session   *session.Session
	Paths     PathIndex
	RL        *readline.Instance
	completer *Completer
}

// New builds a Shell with its own PathIndex (built once from $PATH) and a
// readline instance wired to the shell's completer and history file.
func New(sess *session.Session) (*Shell, error) {
	paths := BuildPathIndex(os.Getenv("PATH"))
	completer := NewCompleter(paths)

	historyPath, err := config.HistoryPath()
	if err != nil {
		historyPath = ""
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          ui.Prompt(),
		HistoryFile:     historyPath,
		AutoComplete:    completer,
		InterruptPrompt: ui.InterruptMarker(),
		EOFPrompt:       ui.EOFMarker(),
	})
	if err != nil {
		return nil, err
	}

	return &Shell{
		Session:   sess,
		Paths:     paths,
		RL:        rl,
		completer: completer,
	}, nil
}

// Run drives the read-lex-parse-run loop until the input source is
// exhausted or `exit` is invoked. It returns the process exit code.
func (sh *Shell) Run() int {
	defer sh.RL.Close()

	for {
		line, err := sh.RL.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			// Ctrl-C at the prompt: discard the partial line, read again
			// (spec §5: "discards the partial line and begins a new read").
			continue
		}
		if errors.Is(err, io.EOF) {
			// Ctrl-D: the correct interactive behavior is to exit the shell
			// (spec §9, Open Question resolved in favor of termination).
			return 0
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}

		code, runErr := sh.RunLine(line)
		if runErr != nil {
			var exitErr *ErrExit
			if errors.As(runErr, &exitErr) {
				return exitErr.Code
			}
		}
		_ = code
	}
}

// RunLine lexes, parses, and runs one input line, returning the exit code
// of its terminal stage. A non-nil *ErrExit error means `exit` ran.
func (sh *Shell) RunLine(line string) (int, error) {
	words, err := Lex(line)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1, nil
	}
	if len(words) == 0 {
		return 0, nil
	}

	pipeline, err := Parse(words)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1, nil
	}
	if pipeline == nil {
		return 0, nil
	}

	code, err := Run(pipeline, sh.Session, sh.Paths)
	if err != nil {
		var exitErr *ErrExit
		if errors.As(err, &exitErr) {
			return exitErr.Code, err
		}
	}
	return code, nil
}
