package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/JadedPigeon/typechecker/internal/config"
	"github.com/JadedPigeon/typechecker/internal/effectiveness"
	"github.com/JadedPigeon/typechecker/internal/history"
	"github.com/JadedPigeon/typechecker/internal/logging"
	"github.com/JadedPigeon/typechecker/internal/observe"
	"github.com/JadedPigeon/typechecker/internal/pokeapi"
	"github.com/JadedPigeon/typechecker/internal/suggest"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

// errReported is returned once a failure has already been shown to the user.
var errReported = errors.New("lookup failed")

type options struct {
	configPath string
	verbose    bool
}

// app wires the engine to its collaborators.
type app struct {
	cfg       *config.Config
	logger    *zap.Logger
	engine    *effectiveness.Engine
	suggester *suggest.Suggester
	history   *history.Store
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "typechecker",
		Short: "Show which types a Pokemon is strong or weak against",
		Long: `typechecker looks a Pokemon up on PokeAPI and lists the types it is
strong against and weak against, with the reason for each.

Run without arguments to start an interactive session.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), opts, false)
			if err != nil {
				return err
			}
			defer a.Close()
			return a.interactive(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a TOML config file")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newCheckCmd(opts),
		newServeCmd(opts),
		newHistoryCmd(opts),
	)
	return root
}

func newApp(ctx context.Context, opts *options, jsonLogs bool) (*app, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	level := cfg.Log.Level
	if opts.verbose {
		level = "debug"
	}
	logger, err := logging.New(level, jsonLogs)
	if err != nil {
		return nil, err
	}

	metrics, err := observe.NewMetrics(otel.GetMeterProvider())
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics: %w", err)
	}

	client := pokeapi.New(
		pokeapi.WithBaseURL(cfg.PokeAPI.BaseURL),
		pokeapi.WithTimeout(cfg.PokeAPI.Timeout.Duration),
		pokeapi.WithUserAgent(cfg.PokeAPI.UserAgent),
		pokeapi.WithLogger(logger.Named("pokeapi")),
		pokeapi.WithMetrics(metrics),
	)

	a := &app{
		cfg:       cfg,
		logger:    logger,
		engine:    effectiveness.New(client, effectiveness.WithLogger(logger.Named("engine"))),
		suggester: suggest.New(client),
	}

	if cfg.History.DSN != "" {
		store, err := history.Open(ctx, cfg.History.Driver, cfg.History.DSN)
		if err != nil {
			return nil, fmt.Errorf("error opening history: %w", err)
		}
		if err := store.Migrate(ctx); err != nil {
			store.Close()
			return nil, err
		}
		a.history = store
	}
	return a, nil
}

func (a *app) Close() {
	if err := a.history.Close(); err != nil {
		a.logger.Warn("error while closing history", zap.Error(err))
	}
	_ = a.logger.Sync()
}

// lookup computes a report and records it in the history, if one is kept.
func (a *app) lookup(ctx context.Context, name string) (*effectiveness.Report, error) {
	report, err := a.engine.Compute(ctx, name)
	if err != nil {
		return nil, err
	}
	if _, err := a.history.Record(ctx, report); err != nil {
		a.logger.Warn("error recording lookup", zap.String("pokemon", name), zap.Error(err))
	}
	return report, nil
}

// suggestions returns close species names when err says name was not found.
func (a *app) suggestions(ctx context.Context, name string, err error) []string {
	if effectiveness.KindOf(err) != effectiveness.KindNotFound || a.cfg.Suggest.Limit == 0 {
		return nil
	}
	names, serr := a.suggester.Suggest(ctx, name, a.cfg.Suggest.Limit)
	if serr != nil {
		a.logger.Debug("could not load suggestions", zap.Error(serr))
		return nil
	}
	return names
}

func didYouMean(names []string) string {
	return fmt.Sprintf("Did you mean: %s?", strings.Join(names, ", "))
}
