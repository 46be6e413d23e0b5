package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/spf13/viper"

	geminiadapter "github.com/bnema/fanthom/internal/adapters/completion/gemini"
	mockadapter "github.com/bnema/fanthom/internal/adapters/completion/mock"
	openaiadapter "github.com/bnema/fanthom/internal/adapters/completion/openai"
	relayadapter "github.com/bnema/fanthom/internal/adapters/completion/relay"
	ledgerrender "github.com/bnema/fanthom/internal/adapters/render/ledger"
	firestorerepo "github.com/bnema/fanthom/internal/adapters/repo/firestore"
	postgresrepo "github.com/bnema/fanthom/internal/adapters/repo/postgres"
	redisrepo "github.com/bnema/fanthom/internal/adapters/repo/redis"
	tomlrepo "github.com/bnema/fanthom/internal/adapters/repo/toml"
	chainstore "github.com/bnema/fanthom/internal/adapters/secrets/chain"
	filestore "github.com/bnema/fanthom/internal/adapters/secrets/file"
	"github.com/bnema/fanthom/internal/application"
	"github.com/bnema/fanthom/internal/config"
	"github.com/bnema/fanthom/internal/ports"
)

type app struct {
	cfg         config.Config
	logger      *slog.Logger
	ledger      *application.Ledger
	draftStore  ports.DraftStore
	credentials *application.Credentials
	clock       ports.Clock

	summaryRenderer    func(ledgerrender.Summary, ledgerrender.RenderOptions) (string, error)
	generationRenderer func(ledgerrender.Generation) (string, error)
	now                func() time.Time

	completionOnce sync.Once
	completion     ports.CompletionService
	completionErr  error

	closers []func() error
}

func wireApp() (*app, error) {
	v, cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	a := &app{
		cfg:                cfg,
		logger:             cfg.Logger(os.Stderr),
		clock:              ports.SystemClock{},
		summaryRenderer:    ledgerrender.Render,
		generationRenderer: ledgerrender.RenderGeneration,
		now:                time.Now,
	}

	ledgerStore, draftStore, err := a.wireStores(context.Background(), v)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.ledger = application.NewLedger(ledgerStore, a.clock, a.logger)
	a.draftStore = draftStore

	secretStore, err := wireSecretStore(cfg.Secrets)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.credentials = application.NewCredentials(secretStore)

	return a, nil
}

func (a *app) wireStores(ctx context.Context, v *viper.Viper) (ports.LedgerStore, ports.DraftStore, error) {
	switch a.cfg.Ledger.Backend {
	case config.BackendFirestore:
		client, err := firestorerepo.NewClient(ctx, a.cfg.Ledger.FirestoreProject, a.cfg.Ledger.CredentialsFile)
		if err != nil {
			return nil, nil, fmt.Errorf("wire firestore ledger: %w", err)
		}
		a.closers = append(a.closers, client.Close)
		return firestorerepo.NewLedgerStore(client, a.clock), firestorerepo.NewDraftStore(client), nil

	case config.BackendPostgres:
		db, err := postgresrepo.Open(ctx, a.cfg.Ledger.PostgresDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("wire postgres ledger: %w", err)
		}
		if sqlDB, err := db.DB(); err == nil {
			a.closers = append(a.closers, sqlDB.Close)
		}
		return postgresrepo.NewLedgerStore(db, a.clock), postgresrepo.NewDraftStore(db), nil

	case config.BackendRedis:
		client, err := redisrepo.Connect(ctx, a.cfg.Ledger.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("wire redis ledger: %w", err)
		}
		a.closers = append(a.closers, client.Close)
		return redisrepo.NewLedgerStore(client, a.clock), redisrepo.NewDraftStore(client), nil

	default:
		ledgerStore, err := tomlrepo.NewLedgerStore(v, a.clock)
		if err != nil {
			return nil, nil, fmt.Errorf("wire toml ledger: %w", err)
		}
		draftStore, err := tomlrepo.NewDraftStore(v)
		if err != nil {
			return nil, nil, fmt.Errorf("wire toml drafts: %w", err)
		}
		return ledgerStore, draftStore, nil
	}
}

func wireSecretStore(cfg config.SecretsConfig) (ports.SecretStore, error) {
	root := cfg.Path
	if root == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		root = filepath.Join(homeDir, ".fanthom", "secrets")
	}

	if cfg.Backend == config.SecretsFile {
		return filestore.NewStore(root), nil
	}

	store, err := chainstore.NewPassFirstWithFileFallback(root)
	if err != nil {
		return nil, fmt.Errorf("wire secret store chain: %w", err)
	}
	return store, nil
}

// completionService builds the configured provider on first use, so commands
// that never generate do not need an API key.
func (a *app) completionService(ctx context.Context) (ports.CompletionService, error) {
	a.completionOnce.Do(func() {
		a.completion, a.completionErr = a.wireCompletion(ctx)
	})
	return a.completion, a.completionErr
}

func (a *app) wireCompletion(ctx context.Context) (ports.CompletionService, error) {
	c := a.cfg.Completion

	switch c.Provider {
	case config.ProviderMock:
		a.logger.Warn("mock completion mode: drafts are canned samples")
		return mockadapter.New(c.MockDelay), nil

	case config.ProviderRelay:
		client, err := relayadapter.New(c.RelayURL, nil)
		if err != nil {
			return nil, fmt.Errorf("wire relay completion: %w", err)
		}
		return client, nil

	case config.ProviderGemini:
		key, err := a.apiKey(ctx)
		if err != nil {
			return nil, err
		}
		client, err := geminiadapter.New(ctx, key, c.Model)
		if err != nil {
			return nil, fmt.Errorf("wire gemini completion: %w", err)
		}
		a.closers = append(a.closers, client.Close)
		return client, nil

	default:
		key, err := a.apiKey(ctx)
		if err != nil {
			return nil, err
		}
		client, err := openaiadapter.New(openaiadapter.Settings{APIKey: key, BaseURL: c.BaseURL, Model: c.Model})
		if err != nil {
			return nil, fmt.Errorf("wire openai completion: %w", err)
		}
		return client, nil
	}
}

func (a *app) apiKey(ctx context.Context) (string, error) {
	ref := a.cfg.Completion.APIKeyRef
	if ref == "" {
		ref = application.SecretRef(a.cfg.Completion.Provider)
	}

	key, err := a.credentials.ResolveAPIKey(ctx, ref, a.cfg.Completion.APIKey)
	if err != nil {
		return "", fmt.Errorf("%s api key not configured (run `fanthom secret set --provider %s` or set %s): %w",
			a.cfg.Completion.Provider, a.cfg.Completion.Provider, "FANTHOM_COMPLETION_API_KEY", err)
	}
	return key, nil
}

func (a *app) generator(ctx context.Context) (*application.Generator, error) {
	completion, err := a.completionService(ctx)
	if err != nil {
		return nil, err
	}

	return application.NewGenerator(a.ledger, completion, a.draftStore, a.clock, a.logger, a.completionSettings()), nil
}

// draftSaver returns a generator that can only save drafts; it never reaches
// the completion service.
func (a *app) draftSaver() *application.Generator {
	return application.NewGenerator(a.ledger, nil, a.draftStore, a.clock, a.logger, a.completionSettings())
}

func (a *app) completionSettings() application.CompletionSettings {
	return application.CompletionSettings{
		Model:       a.cfg.Completion.Model,
		Temperature: a.cfg.Completion.Temperature,
		MaxTokens:   a.cfg.Completion.MaxTokens,
	}
}

func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
