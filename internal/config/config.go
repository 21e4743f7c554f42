package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/classify"
	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/logging"
	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/model"
	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/statement"
)

// FileName is the project configuration file at the repo root.
const FileName = "cheetah.yaml"

// Config represents the top-level cheetah.yaml configuration.
type Config struct {
	Company        CompanyConfig        `yaml:"company"`
	Reporting      ReportingConfig      `yaml:"reporting"`
	Classification ClassificationConfig `yaml:"classification"`
	Statements     StatementsConfig     `yaml:"statements"`
	Store          StoreConfig          `yaml:"store"`
	Log            LogConfig            `yaml:"log"`
	Git            GitConfig            `yaml:"git"`
}

// CompanyConfig identifies the reporting entity.
type CompanyConfig struct {
	Name     string `yaml:"name" validate:"required"`
	Currency string `yaml:"currency" validate:"required,len=3,uppercase"`
}

// ReportingConfig selects the statement layout.
type ReportingConfig struct {
	Standard  string `yaml:"standard" validate:"required"`
	Precision int32  `yaml:"precision" validate:"gte=0,lte=6"`
	PeriodEnd string `yaml:"period_end,omitempty"` // "YYYY-MM-DD"
}

// ClassificationConfig controls automatic mapping.
type ClassificationConfig struct {
	Threshold     int    `yaml:"threshold" validate:"gte=0,lte=100"`
	AutoMap       bool   `yaml:"auto_map"`
	MinConfidence int    `yaml:"min_confidence" validate:"gte=0,lte=100"`
	RulesFile     string `yaml:"rules_file,omitempty"`
}

// StatementsConfig mirrors statement.Options.
type StatementsConfig struct {
	IncludeZeroBalances      bool            `yaml:"include_zero_balances"`
	AggregateSmallBalances   bool            `yaml:"aggregate_small_balances"`
	SmallBalanceThreshold    decimal.Decimal `yaml:"small_balance_threshold"`
	BalanceTolerance         decimal.Decimal `yaml:"balance_tolerance"`
	IncludeCurrentYearProfit bool            `yaml:"include_current_year_profit"`
}

// StoreConfig locates the ledger database, relative to the repo root, and
// names the project's ledger.
type StoreConfig struct {
	Path     string `yaml:"path" validate:"required"`
	LedgerID string `yaml:"ledger_id,omitempty"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	Format string `yaml:"format" validate:"omitempty,oneof=console json"`
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email" validate:"omitempty,email"`
}

// Load reads a cheetah.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default(companyName, currency string) *Config {
	return &Config{
		Company: CompanyConfig{
			Name:     companyName,
			Currency: currency,
		},
		Reporting: ReportingConfig{
			Standard:  statement.StandardIFRS,
			Precision: 2,
		},
		Classification: ClassificationConfig{
			Threshold:     50,
			AutoMap:       true,
			MinConfidence: 70,
		},
		Statements: StatementsConfig{
			SmallBalanceThreshold:    decimal.Zero,
			BalanceTolerance:         decimal.NewFromInt(1),
			IncludeCurrentYearProfit: true,
		},
		Store: StoreConfig{
			Path: "ledger.db",
		},
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "Cheetah Reporter",
			AuthorEmail: "reporter@cheetah.local",
		},
	}
}

// Validate checks field ranges and that the reporting standard is known.
func (c *Config) Validate() error {
	if err := model.Validate(c); err != nil {
		return err
	}
	if _, err := statement.TemplateFor(c.Reporting.Standard); err != nil {
		return err
	}
	if c.Statements.SmallBalanceThreshold.IsNegative() || c.Statements.BalanceTolerance.IsNegative() {
		return fmt.Errorf("invalid %T: statement thresholds must not be negative", c)
	}
	return nil
}

// StatementOptions converts the statements section to populate options.
func (c *Config) StatementOptions() statement.Options {
	return statement.Options{
		Precision:                c.Reporting.Precision,
		IncludeZeroBalances:      c.Statements.IncludeZeroBalances,
		AggregateSmallBalances:   c.Statements.AggregateSmallBalances,
		SmallBalanceThreshold:    c.Statements.SmallBalanceThreshold,
		Tolerance:                c.Statements.BalanceTolerance,
		IncludeCurrentYearProfit: c.Statements.IncludeCurrentYearProfit,
	}
}

// ClassifyOptions returns engine options with the configured threshold.
func (c *Config) ClassifyOptions() classify.Options {
	opts := classify.DefaultOptions()
	opts.Threshold = c.Classification.Threshold
	return opts
}

// Logging returns the logger configuration. Empty fields keep the
// logging defaults.
func (c *Config) Logging() logging.Config {
	lc := logging.DefaultConfig()
	if c.Log.Level != "" {
		lc.Level = c.Log.Level
	}
	if c.Log.Format != "" {
		lc.Format = c.Log.Format
	}
	return lc
}
