// Package pokeapi fetches species and type records from PokeAPI.
package pokeapi

import (
	"cmp"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/JadedPigeon/typechecker/internal/effectiveness"
	"github.com/JadedPigeon/typechecker/internal/observe"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL   = "https://pokeapi.co/api/v2"
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "typechecker/1.0"

	// PokeAPI has ~1300 pokemon; the index is requested in one page.
	indexLimit = 100000
)

const (
	msgConnect = "Error connecting to PokéAPI. Please check your internet connection."
	msgTimeout = "Request timed out. Please try again."
)

var _ effectiveness.Provider = (*Client)(nil)

type Client struct {
	baseURL   string
	userAgent string
	timeout   time.Duration
	httpc     *http.Client
	logger    *zap.Logger
	metrics   *observe.Metrics
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = strings.TrimRight(u, "/") }
}

// WithTimeout sets the deadline applied to each request on its own.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func WithUserAgent(ua string) Option {
	return func(c *Client) { c.userAgent = ua }
}

func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpc = h }
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

func WithMetrics(m *observe.Metrics) Option {
	return func(c *Client) { c.metrics = m }
}

func New(opts ...Option) *Client {
	c := &Client{
		baseURL:   DefaultBaseURL,
		userAgent: DefaultUserAgent,
		timeout:   DefaultTimeout,
		httpc:     &http.Client{},
		logger:    zap.NewNop(),
		metrics:   observe.Noop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Species fetches /pokemon/{name}. Types are returned in slot order.
func (c *Client) Species(ctx context.Context, name string) (*effectiveness.Species, error) {
	name = normalize(name)
	var data pokemonResponse
	if err := getJSON(ctx, c, "pokemon", "/pokemon/"+url.PathEscape(name), msgConnect, &data); err != nil {
		return nil, err
	}

	types := slices.Clone(data.Types)
	slices.SortStableFunc(types, func(a, b typeSlot) int {
		return cmp.Compare(a.Slot, b.Slot)
	})

	species := &effectiveness.Species{
		Name:  normalize(data.Name),
		Types: make([]string, 0, len(types)),
	}
	for _, t := range types {
		species.Types = append(species.Types, normalize(t.Type.Name))
	}
	return species, nil
}

// TypeRelations fetches /type/{name}.
func (c *Client) TypeRelations(ctx context.Context, name string) (*effectiveness.TypeRelations, error) {
	name = normalize(name)
	var data typeResponse
	msg := fmt.Sprintf("Error fetching type data for %s", name)
	if err := getJSON(ctx, c, "type", "/type/"+url.PathEscape(name), msg, &data); err != nil {
		return nil, err
	}

	dr := data.DamageRelations
	return &effectiveness.TypeRelations{
		Name:             normalize(data.Name),
		DoubleDamageTo:   names(dr.DoubleDamageTo),
		DoubleDamageFrom: names(dr.DoubleDamageFrom),
		HalfDamageTo:     names(dr.HalfDamageTo),
		HalfDamageFrom:   names(dr.HalfDamageFrom),
		NoDamageTo:       names(dr.NoDamageTo),
		NoDamageFrom:     names(dr.NoDamageFrom),
	}, nil
}

// SpeciesNames returns the names of every pokemon PokeAPI knows about.
func (c *Client) SpeciesNames(ctx context.Context) ([]string, error) {
	var data listResponse
	path := fmt.Sprintf("/pokemon?limit=%d", indexLimit)
	if err := getJSON(ctx, c, "index", path, msgConnect, &data); err != nil {
		return nil, err
	}
	return names(data.Results), nil
}

type validator interface {
	validate() error
}

// getJSON performs one GET under its own deadline and decodes the body into
// dst. Failures come back as *effectiveness.Error; cancellation of ctx by the
// caller is returned as ctx.Err().
func getJSON[T any, PT interface {
	*T
	validator
}](ctx context.Context, c *Client, kind, path, upstreamMsg string, dst PT) (err error) {
	start := time.Now()
	status := "ok"
	defer func() {
		if err != nil {
			status = statusOf(err)
		}
		c.metrics.RecordRequest(ctx, kind, status, time.Since(start))
		c.logger.Debug("pokeapi request",
			zap.String("path", path),
			zap.String("status", status),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
	}()

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return effectiveness.Upstream(err, "%s", upstreamMsg)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return classify(ctx, err, upstreamMsg)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return effectiveness.NotFound("%s %q not found", kind, strings.TrimPrefix(path, "/"+kind+"/"))
	case resp.StatusCode != http.StatusOK:
		return effectiveness.Upstream(fmt.Errorf("GET %s: %s", path, resp.Status), "%s", upstreamMsg)
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return classify(ctx, fmt.Errorf("decode %s: %w", path, err), upstreamMsg)
	}
	if err := dst.validate(); err != nil {
		return effectiveness.Upstream(fmt.Errorf("unexpected %s payload: %w", kind, err), "%s", upstreamMsg)
	}
	return nil
}

func classify(ctx context.Context, err error, upstreamMsg string) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return ctx.Err()
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return effectiveness.Timeout(err, msgTimeout)
	}
	return effectiveness.Upstream(err, "%s", upstreamMsg)
}

func statusOf(err error) string {
	if errors.Is(err, context.Canceled) {
		return "canceled"
	}
	return effectiveness.KindOf(err).String()
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func names(list *[]namedResource) []string {
	if list == nil {
		return []string{}
	}
	out := make([]string, 0, len(*list))
	for _, r := range *list {
		out = append(out, normalize(r.Name))
	}
	return out
}
