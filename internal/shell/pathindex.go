package shell

import (
	"os"
	"path/filepath"
	"strings"
)

// BuiltinNames lists the shell's builtins, exactly (spec §3): echo, type,
// exit, pwd, cd, clear. PathIndex construction excludes these names even
// when an executable of the same basename exists on $PATH, keeping the two
// sets disjoint.
var BuiltinNames = map[string]bool{
	"echo":  true,
	"type":  true,
	"exit":  true,
	"pwd":   true,
	"cd":    true,
	"clear": true,
}

// PathIndex maps an executable's basename to its first-seen absolute path
// across $PATH's directories (spec §3). Built once at startup; a shell
// session's PATH does not change mid-run.
type PathIndex map[string]string

// BuildPathIndex scans the colon-separated $PATH, recording the first
// match for each basename and skipping names already claimed by a builtin.
// A missing or empty $PATH yields an empty, non-nil index rather than an
// error — a shell with no external commands is still a valid shell.
func BuildPathIndex(pathEnv string) PathIndex {
	index := PathIndex{}
	if pathEnv == "" {
		return index
	}

	for _, dir := range strings.Split(pathEnv, string(os.PathListSeparator)) {
		if dir == "" {
			continue
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			name := entry.Name()
			if BuiltinNames[name] {
				continue
			}
			if _, exists := index[name]; exists {
				continue
			}
			full := filepath.Join(dir, name)
			info, err := entry.Info()
			if err != nil || info.IsDir() || !isExecutable(info.Mode()) {
				continue
			}
			index[name] = full
		}
	}
	return index
}

func isExecutable(mode os.FileMode) bool {
	return mode&0111 != 0
}

// Lookup resolves name to an absolute path, reporting whether it was found.
func (p PathIndex) Lookup(name string) (string, bool) {
	path, ok := p[name]
	return path, ok
}
