package commands

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/accounts"
	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/auditlog"
	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/classify"
	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/config"
	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/gitops"
	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/ledger"
	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/logging"
	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/statement"
	"github.com/kanmwangi2/Cheetah-Reporter-sub000/internal/store"
)

// project is an opened cheetah project directory.
type project struct {
	root   string
	user   string
	cfg    *config.Config
	logger *zap.Logger
	store  *store.SQLiteStore
	svc    *ledger.Service
}

func openProject(opts *globalOptions) (*project, error) {
	root, err := filepath.Abs(opts.repo)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	cfg, err := config.Load(filepath.Join(root, config.FileName))
	if err != nil {
		return nil, fmt.Errorf("not a cheetah project (run cheetah init): %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", config.FileName, err)
	}
	if cfg.Store.LedgerID == "" {
		return nil, fmt.Errorf("%s has no ledger_id; run cheetah init", config.FileName)
	}

	logger, err := logging.New(cfg.Logging())
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	st, err := store.Open(filepath.Join(root, cfg.Store.Path), logger, cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	return &project{
		root:   root,
		user:   opts.user,
		cfg:    cfg,
		logger: logger,
		store:  st,
		svc:    ledger.NewService(st, logger),
	}, nil
}

func (p *project) Close() {
	if err := p.store.Close(); err != nil {
		p.logger.Warn("closing store", zap.Error(err))
	}
	_ = p.logger.Sync()
}

func (p *project) ledgerID() string {
	return p.cfg.Store.LedgerID
}

func (p *project) load(ctx context.Context) (*ledger.TrialBalance, error) {
	return p.svc.Get(ctx, p.ledgerID())
}

// engine builds the classification engine from the built-in catalog plus
// the project's custom rules file, when it exists.
func (p *project) engine() (*classify.Engine, error) {
	rules := classify.DefaultRuleset()
	if path := p.rulesPath(); path != "" {
		custom, err := classify.LoadRules(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, err
		default:
			if rules, err = classify.WithCustomRules(rules, custom); err != nil {
				return nil, fmt.Errorf("custom rules: %w", err)
			}
		}
	}
	return classify.NewEngine(rules, p.cfg.ClassifyOptions()), nil
}

func (p *project) rulesPath() string {
	if p.cfg.Classification.RulesFile == "" {
		return ""
	}
	return filepath.Join(p.root, p.cfg.Classification.RulesFile)
}

func (p *project) template(standard string) (statement.Template, error) {
	if standard == "" {
		standard = p.cfg.Reporting.Standard
	}
	return statement.TemplateFor(standard)
}

// record mirrors the edits made since fromVersion into the audit log and
// the trial balance snapshot, then commits the project when auto-commit is
// on. Failures here are logged; the ledger itself is already saved.
func (p *project) record(tb *ledger.TrialBalance, fromVersion int, message string) {
	if fromVersion < len(tb.History) {
		entries := auditlog.FromRecords(tb.ID, fromVersion+1, tb.History[fromVersion:])
		if err := auditlog.Append(p.root, entries); err != nil {
			p.logger.Warn("writing audit log", zap.Error(err))
		}
	}
	if err := accounts.SaveSnapshot(p.root, tb.Accounts, tb.Mappings); err != nil {
		p.logger.Warn("writing trial balance snapshot", zap.Error(err))
	}
	p.commit(message)
}

func (p *project) commit(message string) {
	if !p.cfg.Git.AutoCommit || !gitops.IsRepo(p.root) {
		return
	}
	c := gitops.Committer{Dir: p.root, AuthorName: p.cfg.Git.AuthorName, AuthorEmail: p.cfg.Git.AuthorEmail}
	hash, err := c.Commit(message)
	switch {
	case errors.Is(err, gitops.ErrNothingToCommit):
	case err != nil:
		p.logger.Warn("git commit failed", zap.Error(err))
	default:
		p.logger.Debug("committed", zap.String("hash", hash), zap.String("message", message))
	}
}
