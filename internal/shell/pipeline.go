package shell

import (
	"fmt"
	"os"

	"github.com/gYonder/posh/internal/session"
)

// Run dispatches every stage of a pipeline left-to-right, then waits on
// them in the same order, returning the exit code of the terminal stage
// (spec §4.4, §5). Parse/lex-tier callers never see this function; Run
// assumes pipeline is non-nil and non-empty.
//
// stdout/stderr endpoints that are Inherit write directly to the shell's
// own os.Stdout/os.Stderr — for an external terminal stage this produces
// byte-for-byte the same output the spec's "capture into CommandResult,
// then render" description calls for, since flush=true rendering is a
// verbatim passthrough; Run skips the intermediate buffer as a documented
// simplification.
//
// A non-nil *ErrExit return means `exit` ran during this pipeline; the
// caller (the REPL) should stop reading further lines.
func Run(pipeline *Pipeline, sess *session.Session, paths PathIndex) (int, error) {
	n := len(pipeline.Stages)
	handles := make([]StageHandle, n)
	stdouts := make([]StageEndpoint, n)
	stderrs := make([]StageEndpoint, n)

	var prevRead StageEndpoint = InheritEndpoint()

	for i, stage := range pipeline.Stages {
		stdinEP := prevRead

		stdoutEP := InheritEndpoint()
		if i < n-1 {
			pr, pw, err := os.Pipe()
			if err != nil {
				return 1, err
			}
			stdoutEP = StageEndpoint{Kind: PipeWrite, File: pw}
			prevRead = StageEndpoint{Kind: PipeRead, File: pr}
		}
		stderrEP := InheritEndpoint()

		for _, r := range stage.Redirs {
			f, err := OpenRedirTarget(r)
			if err != nil {
				fmt.Fprintf(os.Stderr, "%s: %v\n", r.Target.Text, err)
				continue
			}
			switch r.Which {
			case RedirStdout:
				// The file replaces any pipe-write end; closing the parent's
				// copy lets the next stage read EOF from an empty pipe.
				stdoutEP.Close()
				stdoutEP = FileEndpoint(f)
			case RedirStderr:
				stderrEP = FileEndpoint(f)
			}
		}

		stdouts[i] = stdoutEP
		stderrs[i] = stderrEP

		handle, err := Dispatch(stage, stdinEP, stdoutEP, stderrEP, sess, paths)
		handles[i] = handle
		if err != nil {
			if exitErr, ok := err.(*ErrExit); ok {
				// Still finalize what's already spawned so children aren't
				// left dangling, then propagate the exit request.
				drainRemaining(handles, stdouts, stderrs, i)
				return exitErr.Code, exitErr
			}
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}
	}

	var last int
	for i := range pipeline.Stages {
		last = Finalize(handles[i], stdouts[i], stderrs[i], os.Stdout, os.Stderr)
	}
	return last, nil
}

// drainRemaining finalizes already-dispatched stages up to and including
// index i when `exit` cuts a pipeline short, so any spawned children are
// waited on rather than abandoned.
func drainRemaining(handles []StageHandle, stdouts, stderrs []StageEndpoint, upTo int) {
	for i := 0; i <= upTo; i++ {
		Finalize(handles[i], stdouts[i], stderrs[i], os.Stdout, os.Stderr)
	}
}
