package shell

import (
	"os"
	"path/filepath"
)

// EndpointKind distinguishes the five ways a pipeline stage's stdin,
// stdout, or stderr can be wired (spec §4.4).
type EndpointKind int

const (
	// Inherit passes the shell's own stream through unchanged.
	Inherit EndpointKind = iota
	// Null discards writes and yields EOF on read, like /dev/null.
	Null
	// PipeRead is the read end of an os.Pipe feeding from a prior stage.
	PipeRead
	// PipeWrite is the write end of an os.Pipe feeding a later stage.
	PipeWrite
	// File is an opened file, for `>`, `>>`, `2>`, `2>>` targets.
	File
)

// StageEndpoint describes one stream (stdin, stdout, or stderr) of one
// pipeline stage. A PipeRead or PipeWrite endpoint owns its *os.File and
// must be consumed exactly once: handing it to a spawned external command
// or a builtin transfers ownership, and the pipeline must not close it
// again afterward (spec §4.4, §5).
type StageEndpoint struct {
	Kind EndpointKind
	File *os.File
}

// InheritEndpoint returns an endpoint that passes the shell's stream through.
func InheritEndpoint() StageEndpoint { return StageEndpoint{Kind: Inherit} }

// NullEndpoint returns an endpoint backed by /dev/null.
func NullEndpoint() StageEndpoint { return StageEndpoint{Kind: Null} }

// FileEndpoint returns an endpoint backed by an already-opened file.
func FileEndpoint(f *os.File) StageEndpoint { return StageEndpoint{Kind: File, File: f} }

// Reader returns the *os.File to read from for stdin-shaped endpoints.
// Inherit yields os.Stdin; Null opens /dev/null read-only.
func (e StageEndpoint) Reader() (*os.File, func(), error) {
	switch e.Kind {
	case Inherit:
		return os.Stdin, func() {}, nil
	case Null:
		f, err := os.Open(os.DevNull)
		if err != nil {
			return nil, nil, err
		}
		return f, func() { f.Close() }, nil
	case PipeRead, File:
		// The parent's copy must close once the descriptor has been
		// handed off (to a spawned child, or after a builtin's one-shot
		// write/read), so EOF/close propagates to the other end.
		return e.File, func() { e.File.Close() }, nil
	}
	return os.Stdin, func() {}, nil
}

// Writer returns the *os.File to write to for stdout/stderr-shaped
// endpoints, and the stream they inherit from when Kind is Inherit.
func (e StageEndpoint) Writer(inherited *os.File) (*os.File, func(), error) {
	switch e.Kind {
	case Inherit:
		return inherited, func() {}, nil
	case Null:
		f, err := os.OpenFile(os.DevNull, os.O_WRONLY, 0)
		if err != nil {
			return nil, nil, err
		}
		return f, func() { f.Close() }, nil
	case PipeWrite, File:
		return e.File, func() { e.File.Close() }, nil
	}
	return inherited, func() {}, nil
}

// OpenRedirTarget opens a Redirection's target file with the truncate or
// append flag its Mode calls for (spec §3: last-wins already resolved by
// the parser, so each stream has at most one Redirection here). Missing
// parent directories are created recursively first, matching spec.md §3's
// creation policy (end-to-end scenario #5: `echo hi > /tmp/xyz/out.txt`
// must succeed even when `/tmp/xyz` doesn't exist yet).
func OpenRedirTarget(r Redirection) (*os.File, error) {
	if dir := filepath.Dir(r.Target.Text); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}

	flags := os.O_WRONLY | os.O_CREATE
	if r.Mode == Append {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	return os.OpenFile(r.Target.Text, flags, 0644)
}

// Close releases an endpoint's parent-side descriptor if it owns one
// (PipeRead/PipeWrite/File); Inherit and Null endpoints have nothing that
// needs closing here (Null's is opened and closed per-use in Reader/Writer).
// Callers must invoke this exactly once per endpoint that was never handed
// to Reader/Writer/a spawned child, so a pipe or file descriptor isn't left
// open (spec §5: "every opened file descriptor... is owned by exactly one
// party at any moment").
func (e StageEndpoint) Close() {
	if (e.Kind == PipeRead || e.Kind == PipeWrite || e.Kind == File) && e.File != nil {
		e.File.Close()
	}
}
