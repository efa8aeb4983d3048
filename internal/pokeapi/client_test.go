package pokeapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/JadedPigeon/typechecker/internal/effectiveness"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const charizardJSON = `{
	"id": 6,
	"name": "charizard",
	"height": 17,
	"types": [
		{"slot": 2, "type": {"name": "flying", "url": "https://pokeapi.co/api/v2/type/3/"}},
		{"slot": 1, "type": {"name": "fire", "url": "https://pokeapi.co/api/v2/type/10/"}}
	]
}`

const electricJSON = `{
	"id": 13,
	"name": "electric",
	"damage_relations": {
		"double_damage_from": [{"name": "ground", "url": ""}],
		"double_damage_to": [{"name": "flying", "url": ""}, {"name": "water", "url": ""}],
		"half_damage_from": [{"name": "electric", "url": ""}, {"name": "flying", "url": ""}, {"name": "steel", "url": ""}],
		"half_damage_to": [{"name": "dragon", "url": ""}, {"name": "electric", "url": ""}, {"name": "grass", "url": ""}],
		"no_damage_from": [],
		"no_damage_to": [{"name": "ground", "url": ""}]
	},
	"moves": []
}`

func newTestServer(t *testing.T, routes map[string]string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSpecies(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		if r.URL.Path != "/pokemon/charizard" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(charizardJSON))
	}))
	defer srv.Close()

	c := New(WithBaseURL(srv.URL + "/"))
	species, err := c.Species(context.Background(), "  Charizard ")
	require.NoError(t, err)
	assert.Equal(t, "charizard", species.Name)
	assert.Equal(t, []string{"fire", "flying"}, species.Types)
	assert.Equal(t, DefaultUserAgent, gotUA)
}

func TestSpecies_NotFound(t *testing.T) {
	srv := newTestServer(t, nil)

	_, err := New(WithBaseURL(srv.URL)).Species(context.Background(), "missingno")
	assert.ErrorIs(t, err, effectiveness.ErrNotFound)
}

func TestTypeRelations(t *testing.T) {
	srv := newTestServer(t, map[string]string{"/type/electric": electricJSON})

	rel, err := New(WithBaseURL(srv.URL)).TypeRelations(context.Background(), "ELECTRIC")
	require.NoError(t, err)
	assert.Equal(t, &effectiveness.TypeRelations{
		Name:             "electric",
		DoubleDamageTo:   []string{"flying", "water"},
		DoubleDamageFrom: []string{"ground"},
		HalfDamageTo:     []string{"dragon", "electric", "grass"},
		HalfDamageFrom:   []string{"electric", "flying", "steel"},
		NoDamageTo:       []string{"ground"},
		NoDamageFrom:     []string{},
	}, rel)
}

func TestTypeRelations_MalformedPayload(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing damage relations", `{"name": "electric"}`},
		{"missing list", `{"name": "electric", "damage_relations": {"double_damage_from": [], "double_damage_to": [], "half_damage_from": [], "half_damage_to": [], "no_damage_from": []}}`},
		{"wrong shape", `{"name": "electric", "damage_relations": []}`},
		{"not json", `<html>oops</html>`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t, map[string]string{"/type/electric": tt.body})

			_, err := New(WithBaseURL(srv.URL)).TypeRelations(context.Background(), "electric")
			assert.ErrorIs(t, err, effectiveness.ErrUpstream)
			assert.EqualError(t, err, "Error fetching type data for electric")
		})
	}
}

func TestSpecies_MalformedPayload(t *testing.T) {
	srv := newTestServer(t, map[string]string{"/pokemon/ditto": `{"name": "ditto", "types": []}`})

	_, err := New(WithBaseURL(srv.URL)).Species(context.Background(), "ditto")
	assert.ErrorIs(t, err, effectiveness.ErrUpstream)
}

func TestServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := New(WithBaseURL(srv.URL)).Species(context.Background(), "pikachu")
	assert.ErrorIs(t, err, effectiveness.ErrUpstream)
	assert.EqualError(t, err, msgConnect)
}

func TestConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(WithBaseURL(url)).Species(context.Background(), "pikachu")
	assert.ErrorIs(t, err, effectiveness.ErrUpstream)
}

func TestTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	_, err := New(WithBaseURL(srv.URL), WithTimeout(20*time.Millisecond)).TypeRelations(context.Background(), "fire")
	assert.ErrorIs(t, err, effectiveness.ErrTimeout)
	assert.EqualError(t, err, msgTimeout)
}

func TestCallerCancellation(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, err := New(WithBaseURL(srv.URL)).Species(ctx, "pikachu")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, effectiveness.KindUnknown, effectiveness.KindOf(err))
}

func TestSpeciesNames(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/pokemon" || r.URL.Query().Get("limit") == "" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"count": 3, "results": [{"name": "bulbasaur"}, {"name": "ivysaur"}, {"name": "venusaur"}]}`))
	}))
	defer srv.Close()

	got, err := New(WithBaseURL(srv.URL)).SpeciesNames(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"bulbasaur", "ivysaur", "venusaur"}, got)
}

func TestClientWithEngine(t *testing.T) {
	srv := newTestServer(t, map[string]string{
		"/pokemon/pikachu": `{"name": "pikachu", "types": [{"slot": 1, "type": {"name": "electric"}}]}`,
		"/type/electric":   electricJSON,
	})

	report, err := effectiveness.New(New(WithBaseURL(srv.URL))).Compute(context.Background(), "Pikachu")
	require.NoError(t, err)
	assert.Equal(t, "pikachu", report.Species)
	assert.Equal(t, []effectiveness.Relation{
		{Type: "electric", Reasons: []effectiveness.Reason{effectiveness.TakesHalfDamage}},
		{Type: "flying", Reasons: []effectiveness.Reason{effectiveness.DealsDoubleDamage, effectiveness.TakesHalfDamage}},
		{Type: "steel", Reasons: []effectiveness.Reason{effectiveness.TakesHalfDamage}},
		{Type: "water", Reasons: []effectiveness.Reason{effectiveness.DealsDoubleDamage}},
	}, report.StrongAgainst)
	assert.Equal(t, []effectiveness.Relation{
		{Type: "dragon", Reasons: []effectiveness.Reason{effectiveness.DealsHalfDamage}},
		{Type: "electric", Reasons: []effectiveness.Reason{effectiveness.DealsHalfDamage}},
		{Type: "grass", Reasons: []effectiveness.Reason{effectiveness.DealsHalfDamage}},
		{Type: "ground", Reasons: []effectiveness.Reason{effectiveness.TakesDoubleDamage, effectiveness.DealsNoDamage}},
	}, report.WeakAgainst)
}
