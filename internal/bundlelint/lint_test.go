package bundlelint

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeBundle(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestNew_Validation(t *testing.T) {
	t.Run("MissingDir", func(t *testing.T) {
		_, err := New(Config{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bundle directory is required")
	})

	t.Run("NonexistentDir", func(t *testing.T) {
		_, err := New(Config{BundleDir: "/nonexistent/bundles"})
		require.Error(t, err)
	})

	t.Run("NotADirectory", func(t *testing.T) {
		dir := t.TempDir()
		writeBundle(t, dir, "messages.yaml", "code.x: \"100\"\n")
		_, err := New(Config{BundleDir: filepath.Join(dir, "messages.yaml")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "is not a directory")
	})
}

func TestRun_CompleteBundle(t *testing.T) {
	dir := t.TempDir()
	writeBundle(t, dir, "messages.yaml", `
code.user.not.found: "404001"
title.user.not.found: "Not Found"
detail.user.not.found: "user {0} does not exist"
`)

	linter, err := New(Config{BundleDir: dir})
	require.NoError(t, err)

	report, err := linter.Run()
	require.NoError(t, err)
	assert.Equal(t, []string{"messages.yaml"}, report.Bundles)
	assert.Empty(t, report.Issues)
	assert.False(t, report.HasErrors())
}

func TestRun_IncompleteTriple(t *testing.T) {
	dir := t.TempDir()
	writeBundle(t, dir, "messages.yaml", `
code.user.not.found: "404001"
detail.user.not.found: "user {0} does not exist"
`)

	linter, err := New(Config{BundleDir: dir})
	require.NoError(t, err)

	report, err := linter.Run()
	require.NoError(t, err)
	require.Len(t, report.Issues, 1)
	assert.Equal(t, "user.not.found", report.Issues[0].Key)
	assert.Equal(t, SeverityWarning, report.Issues[0].Severity)
	assert.Contains(t, report.Issues[0].Message, "missing title")
	assert.False(t, report.HasErrors())
}

func TestRun_StrictMode(t *testing.T) {
	dir := t.TempDir()
	writeBundle(t, dir, "messages.yaml", `
title.payment.declined: "Payment Declined"
`)

	linter, err := New(Config{BundleDir: dir, Strict: true})
	require.NoError(t, err)

	report, err := linter.Run()
	require.NoError(t, err)
	require.Len(t, report.Issues, 2)
	for _, issue := range report.Issues {
		assert.Equal(t, SeverityError, issue.Severity)
	}
	assert.True(t, report.HasErrors())
}

func TestRun_UnknownPrefix(t *testing.T) {
	dir := t.TempDir()
	writeBundle(t, dir, "messages.yaml", `
label.user.not.found: "oops"
`)

	linter, err := New(Config{BundleDir: dir})
	require.NoError(t, err)

	report, err := linter.Run()
	require.NoError(t, err)
	require.Len(t, report.Issues, 1)
	assert.Contains(t, report.Issues[0].Message, "unknown prefix")
}

func TestRun_LocaleOrphan(t *testing.T) {
	dir := t.TempDir()
	writeBundle(t, dir, "messages.yaml", `
code.user.not.found: "404001"
title.user.not.found: "Not Found"
detail.user.not.found: "user {0} does not exist"
`)
	writeBundle(t, dir, "messages_fr.yaml", `
detail.user.not.found: "l'utilisateur {0} n'existe pas"
detail.user.missing: "clé inconnue"
`)

	linter, err := New(Config{BundleDir: dir})
	require.NoError(t, err)

	report, err := linter.Run()
	require.NoError(t, err)
	assert.Equal(t, []string{"messages.yaml", "messages_fr.yaml"}, report.Bundles)

	var orphanIssues []Issue
	for _, issue := range report.Issues {
		if issue.Message == "key not present in default bundle" {
			orphanIssues = append(orphanIssues, issue)
		}
	}
	require.Len(t, orphanIssues, 1)
	assert.Equal(t, "messages_fr.yaml", orphanIssues[0].Bundle)
	assert.Equal(t, "detail.user.missing", orphanIssues[0].Key)
}

func TestRun_EmptyDirectory(t *testing.T) {
	linter, err := New(Config{BundleDir: t.TempDir()})
	require.NoError(t, err)

	_, err = linter.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no message bundles")
}

func TestIsBundleFile(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"messages.yaml", true},
		{"messages.yml", true},
		{"messages_fr.yaml", true},
		{"messages_pt_BR.yaml", true},
		{"config.yaml", false},
		{"messages.json", false},
		{"readme.md", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isBundleFile(tt.name))
		})
	}
}
