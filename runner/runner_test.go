package runner

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/muyoamon/morphl/ast"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestRunPrefixFallback exercises the full pipeline end to end with no
// custom grammar active, mirroring the teacher's TestRun shape
// (lang/runner/runner_test.go): write temp files, Run, assert.
func TestRunPrefixFallback(t *testing.T) {
	dir := t.TempDir()
	rulesPath := writeFile(t, dir, "rules.syntax", "# no custom token kinds needed\n")
	srcPath := writeFile(t, dir, "main.morphl", "$decl x $add 2 3")

	var out bytes.Buffer
	result, err := Run(rulesPath, srcPath, &out, false)
	require.NoError(t, err)
	require.False(t, result.Sink.HadFailure())
	require.Equal(t, ast.Decl, result.AST.Kind)
}

// TestRunUnresolvedForwardFails checks that a $forward left without a
// matching body is reported as a failure at end of translation unit
// (spec.md testable-property scenario 4).
func TestRunUnresolvedForwardFails(t *testing.T) {
	dir := t.TempDir()
	rulesPath := writeFile(t, dir, "rules.syntax", "")
	srcPath := writeFile(t, dir, "main.morphl", "$forward bar $func")

	var out bytes.Buffer
	result, err := Run(rulesPath, srcPath, &out, false)
	require.NoError(t, err)
	require.True(t, result.Sink.HadFailure())
}

// TestRunForwardResolvedByMatchingDeclSucceeds exercises spec.md
// testable-property scenario 3 end to end: a $forward followed by a $decl
// with a structurally equal signature must make the translation unit
// succeed, with no "missing body" diagnostic.
func TestRunForwardResolvedByMatchingDeclSucceeds(t *testing.T) {
	dir := t.TempDir()
	rulesPath := writeFile(t, dir, "rules.syntax", "")
	srcPath := writeFile(t, dir, "main.morphl", "$forward foo $group 1; $decl foo $group 1")

	var out bytes.Buffer
	result, err := Run(rulesPath, srcPath, &out, false)
	require.NoError(t, err)
	require.False(t, result.Sink.HadFailure())
}

// TestRunMissingSyntaxRulesFileIsFatal exercises the I/O error path: a
// missing or unreadable file is fatal at the translation-unit level.
func TestRunMissingSyntaxRulesFileIsFatal(t *testing.T) {
	dir := t.TempDir()
	srcPath := writeFile(t, dir, "main.morphl", "$decl x 1")

	var out bytes.Buffer
	_, err := Run(filepath.Join(dir, "does_not_exist.syntax"), srcPath, &out, false)
	require.Error(t, err)
}

// TestRunDebugEnablesTrace checks that --debug-equivalent wiring routes
// internal tracing to the output writer without corrupting the rendered
// diagnostics, matching the teacher's debug-dump behavior (lang/runner/
// runner.go, lang/ll1/debug.go) re-grounded on logrus.
func TestRunDebugEnablesTrace(t *testing.T) {
	dir := t.TempDir()
	rulesPath := writeFile(t, dir, "rules.syntax", "")
	srcPath := writeFile(t, dir, "main.morphl", "$decl x 1")

	var out bytes.Buffer
	_, err := Run(rulesPath, srcPath, &out, true)
	require.NoError(t, err)
	require.Contains(t, out.String(), "tokenized source")
}
