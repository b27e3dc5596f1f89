package shell_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/gYonder/posh/internal/session"
	"github.com/gYonder/posh/internal/shell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSessionAt(t *testing.T, dir string) *session.Session {
	t.Helper()
	return &session.Session{CWD: dir, HomeDir: dir}
}

func mustLookPath(t *testing.T, name string) {
	t.Helper()
	if _, err := exec.LookPath(name); err != nil {
		t.Skipf("%s not available on PATH: %v", name, err)
	}
}

func runLine(t *testing.T, sess *session.Session, paths shell.PathIndex, line string) (int, error) {
	t.Helper()
	words, err := shell.Lex(line)
	require.NoError(t, err)
	pipeline, err := shell.Parse(words)
	require.NoError(t, err)
	require.NotNil(t, pipeline)
	return shell.Run(pipeline, sess, paths)
}

func TestPipeline_EchoRedirectsToFile(t *testing.T) {
	dir := t.TempDir()
	sess := newSessionAt(t, dir)
	target := filepath.Join(dir, "out.txt")

	code, err := runLine(t, sess, shell.PathIndex{}, "echo hi > "+target)
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "hi\n", string(data))
}

func TestPipeline_AppendPreservesExistingContent(t *testing.T) {
	dir := t.TempDir()
	sess := newSessionAt(t, dir)
	target := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(target, []byte("first\n"), 0644))

	_, err := runLine(t, sess, shell.PathIndex{}, "echo second >> "+target)
	require.NoError(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n", string(data))
}

func TestPipeline_TruncateOverwritesExistingContent(t *testing.T) {
	dir := t.TempDir()
	sess := newSessionAt(t, dir)
	target := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(target, []byte("stale content that is long\n"), 0644))

	_, err := runLine(t, sess, shell.PathIndex{}, "echo new > "+target)
	require.NoError(t, err)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "new\n", string(data))
}

func TestPipeline_ExternalPipe(t *testing.T) {
	mustLookPath(t, "cat")
	dir := t.TempDir()
	sess := newSessionAt(t, dir)
	paths := shell.BuildPathIndex(os.Getenv("PATH"))

	code, err := runLine(t, sess, paths, "echo one | cat")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
}

func TestPipeline_CommandNotFound(t *testing.T) {
	dir := t.TempDir()
	sess := newSessionAt(t, dir)

	code, err := runLine(t, sess, shell.PathIndex{}, "nosuchcmd")
	require.NoError(t, err)
	assert.Equal(t, 127, code)
}

func TestPipeline_TypeBuiltin(t *testing.T) {
	dir := t.TempDir()
	sess := newSessionAt(t, dir)

	code, err := runLine(t, sess, shell.PathIndex{}, "type echo")
	require.NoError(t, err)
	assert.Equal(t, 0, code)
}

func TestPipeline_TypeUnknownExitsOne(t *testing.T) {
	dir := t.TempDir()
	sess := newSessionAt(t, dir)

	code, err := runLine(t, sess, shell.PathIndex{}, "type nonesuch")
	require.NoError(t, err)
	assert.Equal(t, 1, code)
}

func TestPipeline_PwdThenCdThenPwdRoundTrips(t *testing.T) {
	dir := t.TempDir()
	sess := newSessionAt(t, dir)

	_, err := runLine(t, sess, shell.PathIndex{}, "pwd")
	require.NoError(t, err)
	before := sess.CWD

	_, err = runLine(t, sess, shell.PathIndex{}, "cd .")
	require.NoError(t, err)

	assert.Equal(t, before, sess.CWD)
}

func TestPipeline_CdNoSuchDirectory(t *testing.T) {
	dir := t.TempDir()
	sess := newSessionAt(t, dir)

	code, err := runLine(t, sess, shell.PathIndex{}, "cd /no/such/directory/xyz")
	require.NoError(t, err)
	assert.Equal(t, 1, code)
}

func TestPipeline_ExitReturnsCode(t *testing.T) {
	dir := t.TempDir()
	sess := newSessionAt(t, dir)

	code, err := runLine(t, sess, shell.PathIndex{}, "exit 42")
	require.Error(t, err)
	var exitErr *shell.ErrExit
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 42, exitErr.Code)
	assert.Equal(t, 42, code)
}

func TestPipeline_EmptyLineIsNoOp(t *testing.T) {
	dir := t.TempDir()
	sess := newSessionAt(t, dir)

	words, err := shell.Lex("   ")
	require.NoError(t, err)
	pipeline, err := shell.Parse(words)
	require.NoError(t, err)
	assert.Nil(t, pipeline)
}
