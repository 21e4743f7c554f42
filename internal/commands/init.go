package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/accounts"
	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/classify"
	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/config"
	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/gitops"
	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/ledger"
	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/logging"
	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/statement"
	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/store"
)

const (
	rulesFile  = "rules/custom-rules.yaml"
	sampleFile = "import/sample-trial-balance.csv"
)

type initOptions struct {
	name     string
	currency string
	standard string
	sample   bool
	noGit    bool
}

func newInitCommand(global *globalOptions) *cobra.Command {
	var opts initOptions

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new Cheetah project",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := global.repo
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd.Context(), cmd.OutOrStdout(), absDir, opts)
		},
	}

	cmd.Flags().StringVar(&opts.name, "name", "", "company name (required)")
	_ = cmd.MarkFlagRequired("name")
	cmd.Flags().StringVar(&opts.currency, "currency", "USD", "reporting currency (ISO 4217)")
	cmd.Flags().StringVar(&opts.standard, "standard", statement.StandardIFRS, "reporting standard: ifrs or ifrs-sme")
	cmd.Flags().BoolVar(&opts.sample, "sample", false, "add a sample trial balance to import/")
	cmd.Flags().BoolVar(&opts.noGit, "no-git", false, "do not initialize a git repository")

	return cmd
}

func runInit(ctx context.Context, out io.Writer, dir string, opts initOptions) error {
	if _, err := os.Stat(filepath.Join(dir, config.FileName)); err == nil {
		return fmt.Errorf("%s already exists in %s", config.FileName, dir)
	}

	// Create directory structure.
	dirs := []string{
		"accounts",
		"rules",
		"logs",
		"exports",
		"import",
		filepath.Join("import", "processed"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfg := config.Default(opts.name, opts.currency)
	cfg.Reporting.Standard = opts.standard
	cfg.Classification.RulesFile = rulesFile
	cfg.Git.AutoCommit = !opts.noGit
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Create the ledger database and an empty ledger.
	logger, err := logging.New(cfg.Logging())
	if err != nil {
		return fmt.Errorf("creating logger: %w", err)
	}
	st, err := store.Open(filepath.Join(dir, cfg.Store.Path), logger, cfg.Log.Level)
	if err != nil {
		return err
	}
	defer st.Close()
	tb, err := ledger.NewService(st, logger).Create(ctx)
	if err != nil {
		return err
	}
	cfg.Store.LedgerID = tb.ID

	if err := config.Save(filepath.Join(dir, config.FileName), cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Write an empty custom rules file.
	if err := classify.SaveRules(filepath.Join(dir, rulesFile), nil); err != nil {
		return fmt.Errorf("writing rules: %w", err)
	}

	if opts.sample {
		if err := writeSample(filepath.Join(dir, sampleFile)); err != nil {
			return err
		}
	}

	// Write .gitignore.
	gitignore := "exports/\n" + cfg.Store.Path + "\n" + cfg.Store.Path + "-journal\n"
	if err := os.WriteFile(filepath.Join(dir, ".gitignore"), []byte(gitignore), 0o644); err != nil {
		return fmt.Errorf("writing .gitignore: %w", err)
	}

	// Write import/.gitkeep.
	if err := os.WriteFile(filepath.Join(dir, "import", ".gitkeep"), []byte{}, 0o644); err != nil {
		return fmt.Errorf("writing .gitkeep: %w", err)
	}

	if err := accounts.SaveSnapshot(dir, nil, nil); err != nil {
		return err
	}

	// Initialize git and create initial commit.
	suffix := ""
	if !opts.noGit {
		if err := gitops.Init(dir); err != nil {
			return err
		}
		c := gitops.Committer{Dir: dir, AuthorName: cfg.Git.AuthorName, AuthorEmail: cfg.Git.AuthorEmail}
		hash, err := c.Commit("init: Initialize " + opts.name)
		if err != nil {
			return fmt.Errorf("initial commit: %w", err)
		}
		suffix = " (" + hash + ")"
	}

	fmt.Fprintf(out, "Initialized Cheetah project at %s%s\n", dir, suffix)
	return nil
}

func writeSample(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating sample: %w", err)
	}
	defer f.Close()
	if err := accounts.WriteRaw(f, accounts.SampleTrialBalance()); err != nil {
		return fmt.Errorf("writing sample: %w", err)
	}
	return nil
}
