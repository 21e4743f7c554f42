package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("Acme Ltd", "KES")
	cfg.Reporting.Standard = "ifrs-sme"
	cfg.Statements.AggregateSmallBalances = true
	cfg.Statements.SmallBalanceThreshold = decimal.RequireFromString("2500.50")
	cfg.Classification.RulesFile = "rules.yaml"

	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Company, got.Company)
	assert.Equal(t, cfg.Reporting, got.Reporting)
	assert.Equal(t, cfg.Classification, got.Classification)
	assert.True(t, cfg.Statements.SmallBalanceThreshold.Equal(got.Statements.SmallBalanceThreshold))
	assert.True(t, cfg.Statements.BalanceTolerance.Equal(got.Statements.BalanceTolerance))
	assert.True(t, got.Statements.AggregateSmallBalances)
	assert.Equal(t, cfg.Store, got.Store)
	assert.Equal(t, cfg.Log, got.Log)
	assert.Equal(t, cfg.Git, got.Git)
	require.NoError(t, got.Validate())
}

func TestDefaults(t *testing.T) {
	cfg := Default("My Company", "USD")

	assert.Equal(t, "My Company", cfg.Company.Name)
	assert.Equal(t, "USD", cfg.Company.Currency)
	assert.Equal(t, "ifrs", cfg.Reporting.Standard)
	assert.Equal(t, int32(2), cfg.Reporting.Precision)
	assert.Equal(t, 50, cfg.Classification.Threshold)
	assert.Equal(t, "ledger.db", cfg.Store.Path)
	assert.True(t, cfg.Git.AutoCommit)
	assert.Equal(t, "Cheetah Reporter", cfg.Git.AuthorName)
	require.NoError(t, cfg.Validate())

	opts := cfg.StatementOptions()
	assert.Equal(t, int32(2), opts.Precision)
	assert.True(t, opts.Tolerance.Equal(decimal.NewFromInt(1)))
	assert.True(t, opts.IncludeCurrentYearProfit)
	assert.Equal(t, 50, cfg.ClassifyOptions().Threshold)
	assert.Equal(t, "warn", cfg.Logging().Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing company", func(c *Config) { c.Company.Name = "" }},
		{"bad currency", func(c *Config) { c.Company.Currency = "shilling" }},
		{"unknown standard", func(c *Config) { c.Reporting.Standard = "us-gaap" }},
		{"precision out of range", func(c *Config) { c.Reporting.Precision = 9 }},
		{"threshold out of range", func(c *Config) { c.Classification.Threshold = 101 }},
		{"unknown log level", func(c *Config) { c.Log.Level = "trace" }},
		{"bad author email", func(c *Config) { c.Git.AuthorEmail = "nobody" }},
		{"negative tolerance", func(c *Config) { c.Statements.BalanceTolerance = decimal.NewFromInt(-1) }},
		{"missing store path", func(c *Config) { c.Store.Path = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default("Acme", "KES")
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoggingOverrides(t *testing.T) {
	cfg := Default("Acme", "KES")
	cfg.Log = LogConfig{}
	lc := cfg.Logging()
	assert.Equal(t, "warn", lc.Level)
	assert.Equal(t, "console", lc.Format)

	cfg.Log = LogConfig{Level: "debug", Format: "json"}
	lc = cfg.Logging()
	assert.Equal(t, "debug", lc.Level)
	assert.Equal(t, "json", lc.Format)
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestYAMLFormat(t *testing.T) {
	cfg := Default("Test Biz", "KES")
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, Save(path, cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "name: Test Biz")
	assert.Contains(t, contents, "currency: KES")
	assert.Contains(t, contents, "standard: ifrs")
	assert.Contains(t, contents, "auto_commit: true")
}
