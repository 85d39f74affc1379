package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/techflow/launchpad/client"
	"github.com/techflow/launchpad/internal/website"
	"github.com/techflow/launchpad/pkg/core"
	"github.com/techflow/launchpad/pkg/health"
	"github.com/techflow/launchpad/pkg/hero"
	"github.com/techflow/launchpad/pkg/logging"
	"github.com/techflow/launchpad/pkg/metrics"
	"github.com/techflow/launchpad/pkg/protocol"
	"github.com/techflow/launchpad/pkg/router"
	"github.com/techflow/launchpad/pkg/shutdown"
)

type serveOptions struct {
	addr        string
	codec       string
	contentFile string
	logLevel    string
	logFormat   string
	dev         bool
}

func newServeCmd() *cobra.Command {
	opts := &serveOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the landing page with its live hero",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, opts, os.LookupEnv)
			if err != nil {
				return err
			}
			return runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "Listen address (env "+core.EnvAddress+")")
	cmd.Flags().StringVar(&opts.codec, "codec", "", "Live session codec: json, msgpack or phoenix (env "+core.EnvCodec+")")
	cmd.Flags().StringVar(&opts.contentFile, "content", "", "Hero content overrides, YAML or JSON (env "+core.EnvContentFile+")")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error (env "+core.EnvLogLevel+")")
	cmd.Flags().StringVar(&opts.logFormat, "log-format", "", "Log format: json, console or text (env "+core.EnvLogFormat+")")
	cmd.Flags().BoolVar(&opts.dev, "dev", false, "Use development defaults: debug logging, relaxed timeouts, any origin")

	return cmd
}

// loadConfig layers defaults, then the environment, then explicit flags.
func loadConfig(cmd *cobra.Command, opts *serveOptions, lookup func(string) (string, bool)) (core.Config, error) {
	cfg := core.DefaultConfig()
	if opts.dev {
		cfg = core.DevelopmentConfig()
	}
	if err := cfg.ApplyEnv(lookup); err != nil {
		return cfg, newCommandError("load configuration", "environment", err, "Check the LAUNCHPAD_* variables.")
	}

	flags := cmd.Flags()
	if flags.Changed("addr") {
		cfg.Address = opts.addr
	}
	if flags.Changed("codec") {
		cfg.Codec = opts.codec
	}
	if flags.Changed("content") {
		cfg.ContentFile = opts.contentFile
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = opts.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = opts.logFormat
	}

	if err := cfg.Validate(); err != nil {
		return cfg, newCommandError("load configuration", "validation", err, "Run 'launchpad serve --help' for accepted values.")
	}
	return cfg, nil
}

// app is the wired HTTP surface of a running server.
type app struct {
	router  *router.Router
	metrics *metrics.Metrics
	health  *health.Checker
}

func (a *app) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.router.ServeHTTP(w, r)
}

func newApp(cfg core.Config, logger logging.Logger, overrides *hero.Overrides, draining func() bool) (*app, error) {
	codecs := protocol.NewCodecRegistry()
	if err := codecs.SetDefault(cfg.Codec); err != nil {
		return nil, err
	}

	m := metrics.New()
	r := router.New(router.Options{
		Config:   &cfg,
		Logger:   logger,
		Observer: m,
		Codecs:   codecs,
	})

	checker := health.NewChecker(version)
	checker.AddCriticalCheck("draining", health.DrainingCheck(draining), 0)
	checker.AddCheck("sessions", health.SessionCapacityCheck(r.Sessions().Count, cfg.MaxConnections), 0)

	r.Live("/", hero.Factory(hero.Options{
		Overrides:  overrides,
		OnNavigate: m.Navigated,
	}), router.WithLayout(website.Layout(website.DefaultPageConfig())))

	r.Handle("/assets/*", http.StripPrefix("/assets", client.Handler()))
	r.Handle(website.ContentPath, website.ContentHandler(overrides))
	r.Handle("/metrics", m.Handler())
	r.Mount("/health", checker.Routes())

	return &app{router: r, metrics: m, health: checker}, nil
}

func loadContent(path string) (*hero.Overrides, error) {
	if path == "" {
		return nil, nil
	}
	o, err := hero.LoadOverrides(path)
	if err != nil {
		return nil, newCommandError("load hero content", path, err, "Check the file exists and is valid YAML or JSON.")
	}
	return o, nil
}

func runServe(ctx context.Context, cfg core.Config) error {
	logger, err := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		return newCommandError("start logger", cfg.LogLevel, err, "Use one of debug, info, warn or error.")
	}
	logging.SetDefault(logger)

	overrides, err := loadContent(cfg.ContentFile)
	if err != nil {
		return err
	}

	sd := shutdown.NewHandler(&shutdown.Config{
		Timeout: cfg.Timeouts.GracefulShutdown,
		Signals: shutdown.DefaultConfig().Signals,
		Logger:  logger,
	})

	a, err := newApp(cfg, logger, overrides, sd.Draining)
	if err != nil {
		return newCommandError("configure server", cfg.Codec, err, "Use one of json, msgpack or phoenix.")
	}

	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           a,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Timeouts.RequestTimeout,
		IdleTimeout:       2 * time.Minute,
	}
	sd.Register(shutdown.HTTPServerHook(srv))
	sd.Register(shutdown.SessionsHook(a.router))

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	a.router.StartSweeper(ctx, cfg.Timeouts.SessionCleanup, cfg.Timeouts.SessionCleanup)

	listenErr := make(chan error, 1)
	go func() {
		logger.Info("listening",
			logging.String("addr", cfg.Address),
			logging.String("codec", cfg.Codec),
			logging.String("version", version),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
	}()

	waitErr := make(chan error, 1)
	go func() {
		waitErr <- sd.Wait(ctx)
	}()

	select {
	case err := <-listenErr:
		_ = sd.Shutdown()
		return newCommandError("listen", cfg.Address, err, "Is another process using this address?")
	case err := <-waitErr:
		if err != nil {
			logger.Error("shutdown incomplete", logging.Err(err))
			return err
		}
		logger.Info("stopped")
		return nil
	}
}
