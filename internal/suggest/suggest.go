// Package suggest proposes species names close to one that was not found.
package suggest

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/antzucaro/matchr"
)

// DefaultThreshold is the minimum Jaro-Winkler similarity for a candidate.
const DefaultThreshold = 0.8

// Index lists every known species name.
type Index interface {
	SpeciesNames(ctx context.Context) ([]string, error)
}

// Suggester loads the name index on first use and keeps it for the life of
// the process. A failed load is retried on the next call.
type Suggester struct {
	index     Index
	threshold float64

	mu    sync.Mutex
	names []string
}

func New(index Index) *Suggester {
	return &Suggester{index: index, threshold: DefaultThreshold}
}

func (s *Suggester) load(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.names != nil {
		return s.names, nil
	}
	names, err := s.index.SpeciesNames(ctx)
	if err != nil {
		return nil, err
	}
	s.names = names
	return names, nil
}

type candidate struct {
	name  string
	score float64
}

// Suggest returns up to n names similar to name, best first.
func (s *Suggester) Suggest(ctx context.Context, name string, n int) ([]string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if n <= 0 || name == "" {
		return nil, nil
	}
	names, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	var found []candidate
	for _, candidateName := range names {
		if candidateName == name {
			continue
		}
		score := matchr.JaroWinkler(name, candidateName, false)
		if score >= s.threshold {
			found = append(found, candidate{candidateName, score})
		}
	}
	slices.SortFunc(found, func(a, b candidate) int {
		return cmp.Or(cmp.Compare(b.score, a.score), strings.Compare(a.name, b.name))
	})

	out := make([]string, 0, min(n, len(found)))
	for _, c := range found[:min(n, len(found))] {
		out = append(out, c.name)
	}
	return out, nil
}
