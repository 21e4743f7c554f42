package commands_test

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/accounts"
	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/classify"
	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/commands"
	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/config"
	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/importer"
)

func runCheetah(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := commands.NewRootCommand("test")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func requireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
}

func TestInit_CreatesStructure(t *testing.T) {
	dir := t.TempDir()
	_, err := runCheetah(t, "init", dir, "--name", "Test Biz", "--no-git")
	require.NoError(t, err)

	expectedDirs := []string{
		"accounts",
		"rules",
		"logs",
		"exports",
		"import",
		filepath.Join("import", "processed"),
	}
	for _, d := range expectedDirs {
		info, err := os.Stat(filepath.Join(dir, d))
		require.NoError(t, err, "directory %s should exist", d)
		assert.True(t, info.IsDir(), "%s should be a directory", d)
	}
	for _, f := range []string{config.FileName, "ledger.db", ".gitignore", accounts.SnapshotPath, "rules/custom-rules.yaml"} {
		_, err := os.Stat(filepath.Join(dir, f))
		assert.NoError(t, err, "%s should exist", f)
	}
}

func TestInit_Config(t *testing.T) {
	dir := t.TempDir()
	_, err := runCheetah(t, "init", dir, "--name", "My Company", "--currency", "KES", "--standard", "ifrs-sme", "--no-git")
	require.NoError(t, err)

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	require.NoError(t, err)
	assert.Equal(t, "My Company", cfg.Company.Name)
	assert.Equal(t, "KES", cfg.Company.Currency)
	assert.Equal(t, "ifrs-sme", cfg.Reporting.Standard)
	assert.NotEmpty(t, cfg.Store.LedgerID)
	assert.False(t, cfg.Git.AutoCommit)
	require.NoError(t, cfg.Validate())
}

func TestInit_EmptyCustomRules(t *testing.T) {
	dir := t.TempDir()
	_, err := runCheetah(t, "init", dir, "--name", "Test Biz", "--no-git")
	require.NoError(t, err)

	rules, err := classify.LoadRules(filepath.Join(dir, "rules", "custom-rules.yaml"))
	require.NoError(t, err)
	assert.Empty(t, rules)
}

func TestInit_Sample(t *testing.T) {
	dir := t.TempDir()
	_, err := runCheetah(t, "init", dir, "--name", "Test Biz", "--sample", "--no-git")
	require.NoError(t, err)

	files, err := importer.Scan(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)

	raw, p, err := importer.DefaultRegistry().ParseFile(files[0].Path, "")
	require.NoError(t, err)
	assert.Equal(t, "standard", p.Format())
	assert.Len(t, raw, len(accounts.SampleTrialBalance()))
}

func TestInit_GitRepo(t *testing.T) {
	requireGit(t)
	dir := t.TempDir()
	_, err := runCheetah(t, "init", dir, "--name", "Test Biz")
	require.NoError(t, err)

	// .git directory should exist.
	_, err = os.Stat(filepath.Join(dir, ".git"))
	require.NoError(t, err, ".git should exist")

	// git log should have an init commit.
	log := exec.Command("git", "log", "--format=%s", "-1")
	log.Dir = dir
	out, err := log.Output()
	require.NoError(t, err)
	assert.Contains(t, string(out), "init:")

	// Verify author.
	authorLog := exec.Command("git", "log", "--format=%an <%ae>", "-1")
	authorLog.Dir = dir
	out, err = authorLog.Output()
	require.NoError(t, err)
	assert.Contains(t, string(out), "Cheetah Reporter <reporter@cheetah.local>")

	// The database stays out of version control.
	ls := exec.Command("git", "ls-files")
	ls.Dir = dir
	out, err = ls.Output()
	require.NoError(t, err)
	assert.NotContains(t, string(out), "ledger.db")
	assert.Contains(t, string(out), config.FileName)
}

func TestInit_Gitignore(t *testing.T) {
	dir := t.TempDir()
	_, err := runCheetah(t, "init", dir, "--name", "Test Biz", "--no-git")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, ".gitignore"))
	require.NoError(t, err)
	contents := string(data)

	for _, pattern := range []string{"exports/", "ledger.db"} {
		assert.Contains(t, contents, pattern, ".gitignore should contain %s", pattern)
	}
}

func TestInit_RequiresName(t *testing.T) {
	dir := t.TempDir()
	_, err := runCheetah(t, "init", dir)
	require.Error(t, err, "init without --name should fail")
}

func TestInit_RejectsBadCurrency(t *testing.T) {
	dir := t.TempDir()
	_, err := runCheetah(t, "init", dir, "--name", "Test Biz", "--currency", "usd", "--no-git")
	require.Error(t, err)
}

func TestInit_Twice(t *testing.T) {
	dir := t.TempDir()
	_, err := runCheetah(t, "init", dir, "--name", "Test Biz", "--no-git")
	require.NoError(t, err)
	_, err = runCheetah(t, "init", dir, "--name", "Test Biz", "--no-git")
	require.Error(t, err)
}
