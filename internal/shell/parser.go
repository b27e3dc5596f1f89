package shell

import "fmt"

// Redirection operator words, recognized only as whole, unquoted words
// (spec §4.1/§6). A quoted occurrence of one of these strings is an
// ordinary argument.
const (
	opPipe          = "|"
	opRedirOut      = ">"
	opRedirOut1     = "1>"
	opRedirAppend   = ">>"
	opRedirAppend1  = "1>>"
	opRedirErr      = "2>"
	opRedirErrApp   = "2>>"
)

// RedirKind distinguishes stdout from stderr redirection targets.
type RedirKind int

const (
	RedirStdout RedirKind = iota
	RedirStderr
)

// RedirMode says whether a redirection target is truncated or appended to.
type RedirMode int

const (
	Truncate RedirMode = iota
	Append
)

// Redirection binds one stream of a SimpleCommand to a file target.
type Redirection struct {
	Which  RedirKind
	Target Word
	Mode   RedirMode
}

// SimpleCommand is one pipeline stage: a command name, its arguments, and
// the redirections that apply to it (spec §3).
type SimpleCommand struct {
	Name    Word
	Args    []Word
	Redirs  []Redirection
}

// Pipeline is a non-empty, ordered list of SimpleCommands connected by
// anonymous pipes (spec §3).
type Pipeline struct {
	Stages []*SimpleCommand
}

func isOperatorWord(w Word) (string, bool) {
	if w.Quoted {
		return "", false
	}
	switch w.Text {
	case opPipe, opRedirOut, opRedirOut1, opRedirAppend, opRedirAppend1, opRedirErr, opRedirErrApp:
		return w.Text, true
	}
	return "", false
}

// Parse turns a lexed word list into a Pipeline, splitting on "|" and
// extracting redirections from each resulting stage (spec §4.2). Returns
// (nil, nil) for an empty word list — no SimpleCommand is produced for an
// empty line.
func Parse(words []Word) (*Pipeline, error) {
	if len(words) == 0 {
		return nil, nil
	}

	stages := splitOnPipe(words)
	pipeline := &Pipeline{}
	for _, stage := range stages {
		if len(stage) == 0 {
			return nil, fmt.Errorf("syntax error near unexpected token `|'")
		}
		cmd, err := parseStage(stage)
		if err != nil {
			return nil, err
		}
		pipeline.Stages = append(pipeline.Stages, cmd)
	}
	return pipeline, nil
}

func splitOnPipe(words []Word) [][]Word {
	var stages [][]Word
	var current []Word
	for _, w := range words {
		if op, ok := isOperatorWord(w); ok && op == opPipe {
			stages = append(stages, current)
			current = nil
			continue
		}
		current = append(current, w)
	}
	return append(stages, current)
}

// parseStage scans one stage's words left-to-right, peeling off
// redirections as it finds them. Multiple redirections of the same stream
// are last-wins (spec §3/§9): later ones simply overwrite the field set by
// earlier ones.
func parseStage(words []Word) (*SimpleCommand, error) {
	cmd := &SimpleCommand{}
	var args []Word

	i := 0
	for i < len(words) {
		op, ok := isOperatorWord(words[i])
		if !ok {
			args = append(args, words[i])
			i++
			continue
		}

		if i+1 >= len(words) {
			return nil, fmt.Errorf("syntax error: missing filename after %q", op)
		}
		target := words[i+1]

		switch op {
		case opRedirOut, opRedirOut1:
			cmd.setRedir(RedirStdout, target, Truncate)
		case opRedirAppend, opRedirAppend1:
			cmd.setRedir(RedirStdout, target, Append)
		case opRedirErr:
			cmd.setRedir(RedirStderr, target, Truncate)
		case opRedirErrApp:
			cmd.setRedir(RedirStderr, target, Append)
		}
		i += 2
	}

	if len(args) == 0 {
		// A stage consisting only of redirections/whitespace has an empty
		// name; the dispatcher treats that as a no-op (spec §4.3).
		cmd.Name = Word{}
		return cmd, nil
	}

	cmd.Name = args[0]
	cmd.Args = args[1:]
	return cmd, nil
}

// setRedir records a redirection, overwriting any prior one for the same
// stream (last-wins).
func (c *SimpleCommand) setRedir(which RedirKind, target Word, mode RedirMode) {
	for i := range c.Redirs {
		if c.Redirs[i].Which == which {
			c.Redirs[i].Target = target
			c.Redirs[i].Mode = mode
			return
		}
	}
	c.Redirs = append(c.Redirs, Redirection{Which: which, Target: target, Mode: mode})
}
