package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/gYonder/posh/internal/config"
	"github.com/gYonder/posh/internal/session"
	"github.com/gYonder/posh/internal/shell"
	"github.com/gYonder/posh/internal/ui"
)

// version is the shell's release string, set at build time via
// -ldflags "-X main.version=...". Left at "dev" for local builds.
var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	var (
		command     = pflag.StringP("command", "c", "", "run a single command and exit")
		showVersion = pflag.Bool("version", false, "print the version and exit")
	)
	pflag.Parse()

	if *showVersion {
		fmt.Println(version)
		return 0
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "posh: loading config: %v\n", err)
		cfg = config.Default()
	}
	ui.ApplyTheme(cfg.Theme)

	sess, err := session.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "posh: %v\n", err)
		return 1
	}

	if *command != "" {
		paths := shell.BuildPathIndex(os.Getenv("PATH"))
		code, _ := runOneShot(*command, sess, paths)
		return code
	}

	sh, err := shell.New(sess)
	if err != nil {
		fmt.Fprintf(os.Stderr, "posh: %v\n", err)
		return 1
	}
	return sh.Run()
}

func runOneShot(command string, sess *session.Session, paths shell.PathIndex) (int, error) {
	words, err := shell.Lex(command)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1, err
	}
	if len(words) == 0 {
		return 0, nil
	}

	pipeline, err := shell.Parse(words)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return 1, err
	}
	if pipeline == nil {
		return 0, nil
	}

	code, err := shell.Run(pipeline, sess, paths)
	if err != nil {
		if exitErr, ok := err.(*shell.ErrExit); ok {
			return exitErr.Code, nil
		}
	}
	return code, nil
}
