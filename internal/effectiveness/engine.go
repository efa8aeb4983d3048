// Package effectiveness computes which types a Pokémon is strong or weak
// against, and why, from the damage relations of each of its types.
package effectiveness

import (
	"cmp"
	"context"
	"errors"
	"slices"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type side int

const (
	strong side = iota
	weak
)

// rules maps each damage relation list onto a side and a reason. Reasons are
// reported in this order.
var rules = []struct {
	list   func(*TypeRelations) []string
	side   side
	reason Reason
}{
	{func(t *TypeRelations) []string { return t.DoubleDamageTo }, strong, DealsDoubleDamage},
	{func(t *TypeRelations) []string { return t.HalfDamageFrom }, strong, TakesHalfDamage},
	{func(t *TypeRelations) []string { return t.NoDamageFrom }, strong, TakesNoDamage},
	{func(t *TypeRelations) []string { return t.DoubleDamageFrom }, weak, TakesDoubleDamage},
	{func(t *TypeRelations) []string { return t.HalfDamageTo }, weak, DealsHalfDamage},
	{func(t *TypeRelations) []string { return t.NoDamageTo }, weak, DealsNoDamage},
}

type Engine struct {
	provider Provider
	logger   *zap.Logger
}

type Option func(*Engine)

func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

func New(provider Provider, opts ...Option) *Engine {
	e := &Engine{
		provider: provider,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Compute looks up the species, fetches the relations of each of its types
// concurrently and folds them into a Report.
//
// A species that does not exist fails with a KindNotFound *Error naming the
// input. A type whose relations are missing contributes nothing. Any other
// fetch error aborts the whole computation and is returned as is.
func (e *Engine) Compute(ctx context.Context, name string) (*Report, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}

	log := e.logger.With(zap.String("query_id", uuid.NewString()), zap.String("pokemon", name))
	log.Debug("computing effectiveness")

	species, err := e.provider.Species(ctx, name)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, NotFound("Pokemon '%s' not found.", name)
		}
		log.Debug("species lookup failed", zap.Error(err))
		return nil, err
	}

	relations, err := e.fetchRelations(ctx, log, species.Types)
	if err != nil {
		log.Debug("type lookup failed", zap.Error(err))
		return nil, err
	}

	report := Fold(species, relations)
	log.Debug("computed effectiveness",
		zap.Strings("types", report.Types),
		zap.Int("strong", len(report.StrongAgainst)),
		zap.Int("weak", len(report.WeakAgainst)))
	return report, nil
}

// fetchRelations returns one entry per type, in slot order. Entries for
// types that were not found are nil.
func (e *Engine) fetchRelations(ctx context.Context, log *zap.Logger, types []string) ([]*TypeRelations, error) {
	results := make([]*TypeRelations, len(types))

	g, gctx := errgroup.WithContext(ctx)
	for i, typ := range types {
		g.Go(func() error {
			rel, err := e.provider.TypeRelations(gctx, typ)
			if errors.Is(err, ErrNotFound) {
				log.Warn("type relations not found, skipping", zap.String("type", typ))
				return nil
			}
			if err != nil {
				return err
			}
			results[i] = rel
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Fold merges the relations of a species' types into a Report. Nil entries
// are ignored. A type name can end up on both sides; the two are not netted.
func Fold(species *Species, relations []*TypeRelations) *Report {
	acc := [2]map[string]map[Reason]struct{}{{}, {}}
	for _, rel := range relations {
		if rel == nil {
			continue
		}
		for _, r := range rules {
			for _, name := range r.list(rel) {
				set, ok := acc[r.side][name]
				if !ok {
					set = make(map[Reason]struct{}, 1)
					acc[r.side][name] = set
				}
				set[r.reason] = struct{}{}
			}
		}
	}

	return &Report{
		Species:       species.Name,
		Types:         slices.Clone(species.Types),
		StrongAgainst: toRelations(acc[strong]),
		WeakAgainst:   toRelations(acc[weak]),
	}
}

func toRelations(m map[string]map[Reason]struct{}) []Relation {
	out := make([]Relation, 0, len(m))
	for name, set := range m {
		reasons := make([]Reason, 0, len(set))
		for _, r := range rules {
			if _, ok := set[r.reason]; ok {
				reasons = append(reasons, r.reason)
			}
		}
		out = append(out, Relation{Type: name, Reasons: reasons})
	}
	slices.SortFunc(out, func(a, b Relation) int {
		return cmp.Or(
			strings.Compare(strings.ToLower(a.Type), strings.ToLower(b.Type)),
			strings.Compare(a.Type, b.Type),
		)
	})
	return out
}
