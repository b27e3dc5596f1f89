// Package session holds the working-directory half of the shell's shared
// mutable state; the other half, the cached PATH index, is owned by the
// shell package. Everything else a pipeline needs is passed by value.
package session

import (
	"os"
	"path/filepath"
	"strings"
)

// Session tracks the shell's working directory across commands.
type Session struct {
	CWD         string
	HomeDir     string
	PreviousDir string
}

// New creates a Session seeded from the process's actual cwd and $HOME.
func New() (*Session, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = cwd
	}
	return &Session{CWD: cwd, HomeDir: home}, nil
}

// ResolvePath expands a user-supplied path argument against the session's
// notion of cwd, home, and previous directory. It does not touch the
// filesystem or the real OS cwd.
func (s *Session) ResolvePath(path string) string {
	if path == "" {
		return s.CWD
	}

	if path == "-" {
		if s.PreviousDir == "" {
			return s.CWD
		}
		return s.PreviousDir
	}

	if path == "~" {
		return s.HomeDir
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(s.HomeDir, path[2:])
	}

	var absolute string
	if filepath.IsAbs(path) {
		absolute = path
	} else {
		absolute = filepath.Join(s.CWD, path)
	}

	return filepath.Clean(absolute)
}

// Chdir changes both the session's tracked cwd and the process's real
// working directory, since spawned external children inherit the latter.
func (s *Session) Chdir(path string) error {
	target := s.ResolvePath(path)
	if err := os.Chdir(target); err != nil {
		return err
	}
	s.PreviousDir = s.CWD
	s.CWD = target
	return nil
}
