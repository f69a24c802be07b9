package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/dmitrymomot/notifykit/pkg/catalog"
	"github.com/dmitrymomot/notifykit/pkg/config"
	"github.com/dmitrymomot/notifykit/pkg/credentials"
	"github.com/dmitrymomot/notifykit/pkg/directsend"
	"github.com/dmitrymomot/notifykit/pkg/email"
	"github.com/dmitrymomot/notifykit/pkg/email/templates"
	"github.com/dmitrymomot/notifykit/pkg/kvstore"
	"github.com/dmitrymomot/notifykit/pkg/logger"
	"github.com/dmitrymomot/notifykit/pkg/notifyapi"
	"github.com/dmitrymomot/notifykit/pkg/redis"
	"github.com/dmitrymomot/notifykit/pkg/stats"
	"github.com/dmitrymomot/notifykit/pkg/wizard"
)

// app holds everything a command needs. It is built once per invocation.
type app struct {
	cfg    AppConfig
	logger *slog.Logger

	store   kvstore.Store
	creds   *credentials.Source
	tracker *stats.Tracker

	api     *notifyapi.Client
	local   *catalog.StaticProvider
	remote  *catalog.RemoteProvider
	catalog *catalog.Catalog

	dispatcher wizard.Dispatcher
	storeCheck func(context.Context) error
	closers    []func() error
}

type buildOptions struct {
	store      kvstore.Store
	httpClient *http.Client
	logOutput  io.Writer
}

func newApp(ctx context.Context, cfg AppConfig, opts buildOptions) (*app, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	a := &app{
		cfg:    cfg,
		logger: logger.New(append(cfg.loggerOptions(), logger.WithOutput(opts.logOutput))...),
	}

	store, err := a.openStore(ctx, opts.store)
	if err != nil {
		return nil, err
	}
	a.store = store
	a.creds = credentials.New(store)
	a.tracker = stats.NewTracker(store)

	a.local = catalog.Builtin()
	if cfg.TemplatesFile != "" {
		fromFile, err := catalog.LoadFile(cfg.TemplatesFile)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.local = catalog.Merge(catalog.Builtin(), fromFile)
	}

	if cfg.APIURL != "" {
		apiOpts := []notifyapi.Option{
			notifyapi.WithTimeout(cfg.HTTPTimeout),
			notifyapi.WithTokenSource(a.creds.TokenSource(ctx)),
			notifyapi.WithLogger(a.logger),
		}
		if opts.httpClient != nil {
			apiOpts = append(apiOpts, notifyapi.WithHTTPClient(opts.httpClient))
		}
		a.api, err = notifyapi.New(cfg.APIURL, apiOpts...)
		if err != nil {
			_ = a.Close()
			return nil, err
		}
		a.remote = catalog.NewRemoteProvider(a.api)
		a.catalog = catalog.New(a.local, a.remote)
	} else {
		a.catalog = catalog.New(a.local, nil)
	}

	if a.dispatcher, err = a.buildDispatcher(); err != nil {
		_ = a.Close()
		return nil, err
	}
	return a, nil
}

func (a *app) openStore(ctx context.Context, injected kvstore.Store) (kvstore.Store, error) {
	if injected != nil {
		return injected, nil
	}

	switch a.cfg.Store {
	case StoreMemory:
		return kvstore.NewMemory(nil), nil
	case StoreRedis:
		var rcfg redis.Config
		if err := config.Load(&rcfg); err != nil {
			return nil, err
		}
		client, err := redis.Connect(ctx, rcfg)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Close)
		a.storeCheck = redis.Healthcheck(client)
		return redis.NewStore(client, redis.WithKeyPrefix(rcfg.KeyPrefix)), nil
	default:
		path, err := a.cfg.storePath()
		if err != nil {
			return nil, fmt.Errorf("resolve store path: %w", err)
		}
		return kvstore.NewFile(path), nil
	}
}

func (a *app) buildDispatcher() (wizard.Dispatcher, error) {
	switch a.cfg.Delivery {
	case DeliveryAPI:
		return a.api, nil
	}

	var ecfg email.Config
	if err := config.Load(&ecfg); err != nil {
		return nil, err
	}
	layout := directsend.WithLayout(templates.LayoutProps{
		ProductName:  ecfg.ProductName,
		SupportEmail: ecfg.SupportEmail,
	})

	var sender email.EmailSender
	if a.cfg.Delivery == DeliveryPostmark {
		s, err := email.NewPostmarkClient(ecfg)
		if err != nil {
			return nil, err
		}
		sender = s
	} else {
		sender = email.NewDevSender(a.cfg.DevMailDir)
	}
	return directsend.New(sender, layout, directsend.WithLogger(a.logger)), nil
}

// requireAPI fails when no service URL is configured.
func (a *app) requireAPI() (*notifyapi.Client, error) {
	if a.api == nil {
		return nil, ErrNoAPIURL
	}
	return a.api, nil
}

// manager returns the custom-template manager bound to the service.
func (a *app) manager() (*catalog.Manager, error) {
	api, err := a.requireAPI()
	if err != nil {
		return nil, err
	}
	return catalog.NewManager(api,
		catalog.WithReadOnly(a.local),
		catalog.WithRemoteProvider(a.remote),
		catalog.WithManagerLogger(a.logger),
	), nil
}

func (a *app) newWizard() *wizard.Wizard {
	opts := []wizard.Option{
		wizard.WithCatalog(a.catalog),
		wizard.WithDispatcher(a.dispatcher),
		wizard.WithStats(a.tracker),
		wizard.WithLogger(a.logger),
	}
	// Direct delivery needs no service credential.
	if a.cfg.Delivery == DeliveryAPI {
		opts = append(opts, wizard.WithCredentials(a.creds))
	}
	return wizard.New(opts...)
}

// Close releases backend connections.
func (a *app) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	a.closers = nil
	return errors.Join(errs...)
}
