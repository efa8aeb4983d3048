package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/JadedPigeon/typechecker/internal/handlers"
	"github.com/JadedPigeon/typechecker/internal/history"
	"github.com/JadedPigeon/typechecker/internal/present"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

func newCheckCmd(opts *options) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "check <pokemon>",
		Short: "Look up a single Pokemon and exit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := present.ByName(output)
			if err != nil {
				return err
			}
			a, err := newApp(cmd.Context(), opts, false)
			if err != nil {
				return err
			}
			defer a.Close()
			return a.check(cmd.Context(), cmd.OutOrStdout(), cmd.ErrOrStderr(), p, args[0])
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "table", "output format: "+strings.Join(present.Formats, ", "))
	return cmd
}

func (a *app) check(ctx context.Context, out, errOut io.Writer, p present.Presenter, name string) error {
	report, err := a.lookup(ctx, strings.TrimSpace(name))
	if err != nil {
		if perr := p.PresentError(out, err); perr != nil {
			return perr
		}
		if names := a.suggestions(ctx, name, err); len(names) > 0 {
			fmt.Fprintln(errOut, didYouMean(names))
		}
		return errReported
	}
	return p.Present(out, report)
}

func newServeCmd(opts *options) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve lookups over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), opts, true)
			if err != nil {
				return err
			}
			defer a.Close()
			if addr == "" {
				addr = a.cfg.HTTP.Addr
			}
			return a.serve(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	return cmd
}

func (a *app) serve(ctx context.Context, addr string) error {
	h := &handlers.Config{
		Engine: a.engine,
		Logger: a.logger.Named("http"),
	}
	if a.history != nil {
		h.History = a.history
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.logger.Warn("error while shutting down server", zap.Error(err))
		}
	}()

	a.logger.Info("serving type lookups", zap.String("addr", addr))
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	a.logger.Info("shutting down")
	return nil
}

func newHistoryCmd(opts *options) *cobra.Command {
	var (
		limit  int
		output string
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent lookups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), opts, false)
			if err != nil {
				return err
			}
			defer a.Close()
			if a.history == nil {
				return errors.New("history is disabled; set DB_URL or history.dsn")
			}
			lookups, err := a.history.Recent(cmd.Context(), limit)
			if err != nil {
				return err
			}
			return writeLookups(cmd.OutOrStdout(), output, lookups)
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", history.DefaultLimit, "number of lookups to show")
	cmd.Flags().StringVarP(&output, "output", "o", "plain", "output format: plain, json, yaml")
	return cmd
}

func writeLookups(w io.Writer, format string, lookups []history.Lookup) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(lookups)
	case "yaml":
		enc := yaml.NewEncoder(w)
		if err := enc.Encode(lookups); err != nil {
			return err
		}
		return enc.Close()
	case "plain", "":
		if len(lookups) == 0 {
			_, err := fmt.Fprintln(w, "No lookups recorded.")
			return err
		}
		for _, l := range lookups {
			if _, err := fmt.Fprintf(w, "%s  %-12s %-20s strong=%d weak=%d\n",
				l.CreatedAt.Local().Format(time.DateTime), l.Species, strings.Join(l.Types, ", "),
				l.StrongCount, l.WeakCount); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unknown output format %q", format)
}
