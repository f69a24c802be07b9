package commands

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/notifykit/pkg/config"
	"github.com/dmitrymomot/notifykit/pkg/kvstore"
)

// annotationOffline marks commands that run without configuration.
const annotationOffline = "offline"

// Option customizes the root command. Used by tests and embedders.
type Option func(*rootOptions)

type rootOptions struct {
	cfg   *AppConfig
	build buildOptions
	onApp func(*app)
}

// WithConfig skips environment loading and uses cfg.
func WithConfig(cfg AppConfig) Option {
	return func(o *rootOptions) {
		o.cfg = &cfg
	}
}

// WithStore replaces the configured key-value store.
func WithStore(s kvstore.Store) Option {
	return func(o *rootOptions) {
		o.build.store = s
	}
}

// WithHTTPClient sets the client used to reach the notification service.
func WithHTTPClient(c *http.Client) Option {
	return func(o *rootOptions) {
		o.build.httpClient = c
	}
}

// WithLogOutput redirects log records.
func WithLogOutput(w io.Writer) Option {
	return func(o *rootOptions) {
		o.build.logOutput = w
	}
}

// Execute runs the CLI with process arguments.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// NewRootCommand builds the command tree.
func NewRootCommand(opts ...Option) *cobra.Command {
	o := &rootOptions{}
	for _, opt := range opts {
		opt(o)
	}

	var (
		envFile string
		a       *app
	)

	root := &cobra.Command{
		Use:          "notifywizard",
		Short:        "Compose and send portal notifications",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[annotationOffline] == "true" {
				return nil
			}
			cfg, err := o.loadConfig(envFile)
			if err != nil {
				return err
			}
			if o.build.logOutput == nil {
				o.build.logOutput = cmd.ErrOrStderr()
			}
			a, err = newApp(cmd.Context(), cfg, o.build)
			if err != nil {
				return err
			}
			if o.onApp != nil {
				o.onApp(a)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", "", "load variables from this .env file before reading configuration")

	get := func() *app { return a }
	root.AddCommand(
		sendCmd(get),
		templatesCmd(get),
		recipientsCmd(),
		statsCmd(get),
		pingCmd(get),
		loginCmd(get),
		logoutCmd(get),
	)
	closeAfterRun(root, func() error {
		if a == nil {
			return nil
		}
		return a.Close()
	})
	return root
}

// closeAfterRun wraps every RunE in the tree so release runs whether the
// command succeeds or fails. PersistentPostRunE is skipped on failure.
func closeAfterRun(cmd *cobra.Command, release func() error) {
	for _, c := range cmd.Commands() {
		closeAfterRun(c, release)
	}
	if cmd.RunE == nil {
		return
	}
	run := cmd.RunE
	cmd.RunE = func(c *cobra.Command, args []string) error {
		err := run(c, args)
		if closeErr := release(); closeErr != nil {
			return errors.Join(err, closeErr)
		}
		return err
	}
}

func (o *rootOptions) loadConfig(envFile string) (AppConfig, error) {
	if o.cfg != nil {
		return *o.cfg, nil
	}
	if envFile != "" {
		if err := config.LoadEnv(envFile); err != nil {
			return AppConfig{}, err
		}
	}
	var cfg AppConfig
	if err := config.Load(&cfg); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}
