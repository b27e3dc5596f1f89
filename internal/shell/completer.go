package shell

import (
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/chzyer/readline"
)

// Completer provides tab completion over the builtin name set and the
// cached PathIndex (spec §1: "the core exposes its built-in list and its
// cached PATH index" to the line-editing collaborator). It implements
// readline.AutoCompleter.
type Completer struct {
	Paths PathIndex
}

// NewCompleter builds a completer bound to the given PathIndex. The
// PathIndex may be swapped out later via SetPaths if the shell rebuilds it.
func NewCompleter(paths PathIndex) *Completer {
	return &Completer{Paths: paths}
}

// SetPaths updates the PathIndex a completer searches, for callers that
// rebuild it on demand (spec §3: PathIndex "may be rebuilt on demand, for
// example, before tab-completion").
func (c *Completer) SetPaths(paths PathIndex) {
	c.Paths = paths
}

// Do implements readline.AutoCompleter: only the first word of a line is
// completed, against builtin names and PathIndex keys. Argument completion
// (paths, flags) is out of scope for the core (spec §1).
func (c *Completer) Do(line []rune, pos int) ([][]rune, int) {
	lineStr := string(line[:pos])
	if strings.ContainsAny(lineStr, " \t") {
		return nil, 0
	}
	return c.completeCommand(lineStr)
}

func (c *Completer) completeCommand(prefix string) ([][]rune, int) {
	seen := make(map[string]bool, len(BuiltinNames)+len(c.Paths))
	var candidates []string

	for name := range BuiltinNames {
		candidates = append(candidates, name)
	}
	for name := range c.Paths {
		candidates = append(candidates, name)
	}
	sort.Strings(candidates)

	glob := prefix + "*"
	var matches []string
	for _, name := range candidates {
		if seen[name] {
			continue
		}
		ok, err := doublestar.Match(glob, name)
		if err != nil || !ok {
			continue
		}
		seen[name] = true
		matches = append(matches, name)
	}

	result := make([][]rune, len(matches))
	for i, m := range matches {
		result[i] = []rune(m[len(prefix):] + " ")
	}
	return result, len(prefix)
}

var _ readline.AutoCompleter = (*Completer)(nil)
