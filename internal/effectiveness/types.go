package effectiveness

import "context"

// Species is a Pokémon and its types in slot order.
type Species struct {
	Name  string
	Types []string
}

// TypeRelations holds the six damage relation lists of one type.
type TypeRelations struct {
	Name             string
	DoubleDamageTo   []string
	DoubleDamageFrom []string
	HalfDamageTo     []string
	HalfDamageFrom   []string
	NoDamageTo       []string
	NoDamageFrom     []string
}

//go:generate mockgen -source=types.go -destination=mock_provider_test.go -package=effectiveness

// Provider resolves species and type records. A missing record is reported
// as an error matching ErrNotFound.
type Provider interface {
	Species(ctx context.Context, name string) (*Species, error)
	TypeRelations(ctx context.Context, name string) (*TypeRelations, error)
}

type Reason string

const (
	DealsDoubleDamage Reason = "Deals 2x damage"
	TakesHalfDamage   Reason = "Takes 0.5x damage"
	TakesNoDamage     Reason = "Takes no damage"
	TakesDoubleDamage Reason = "Takes 2x damage"
	DealsHalfDamage   Reason = "Deals 0.5x damage"
	DealsNoDamage     Reason = "Deals no damage"
)

// Relation is one opposing type and why it counts as strong or weak.
type Relation struct {
	Type    string   `json:"type" yaml:"type"`
	Reasons []Reason `json:"reasons" yaml:"reasons"`
}

// Report is the result of one lookup.
type Report struct {
	Species       string     `json:"pokemon" yaml:"pokemon"`
	Types         []string   `json:"types" yaml:"types"`
	StrongAgainst []Relation `json:"strong_against" yaml:"strong_against"`
	WeakAgainst   []Relation `json:"weak_against" yaml:"weak_against"`
}
