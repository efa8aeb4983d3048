package pokeapi

import (
	"errors"
	"fmt"
)

type namedResource struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type typeSlot struct {
	Slot int           `json:"slot"`
	Type namedResource `json:"type"`
}

type pokemonResponse struct {
	ID    int        `json:"id"`
	Name  string     `json:"name"`
	Types []typeSlot `json:"types"`
}

func (p *pokemonResponse) validate() error {
	var errs []error
	if p.Name == "" {
		errs = append(errs, errors.New("name is missing"))
	}
	if len(p.Types) == 0 {
		errs = append(errs, errors.New("types is missing or empty"))
	}
	for i, t := range p.Types {
		if t.Type.Name == "" {
			errs = append(errs, fmt.Errorf("types[%d].type.name is missing", i))
		}
	}
	return errors.Join(errs...)
}

// Lists are pointers so a missing key can be told apart from an empty list.
type damageRelations struct {
	DoubleDamageFrom *[]namedResource `json:"double_damage_from"`
	DoubleDamageTo   *[]namedResource `json:"double_damage_to"`
	HalfDamageFrom   *[]namedResource `json:"half_damage_from"`
	HalfDamageTo     *[]namedResource `json:"half_damage_to"`
	NoDamageFrom     *[]namedResource `json:"no_damage_from"`
	NoDamageTo       *[]namedResource `json:"no_damage_to"`
}

type typeResponse struct {
	ID              int              `json:"id"`
	Name            string           `json:"name"`
	DamageRelations *damageRelations `json:"damage_relations"`
}

func (t *typeResponse) validate() error {
	var errs []error
	if t.Name == "" {
		errs = append(errs, errors.New("name is missing"))
	}
	dr := t.DamageRelations
	if dr == nil {
		return errors.Join(append(errs, errors.New("damage_relations is missing"))...)
	}
	lists := []struct {
		key  string
		list *[]namedResource
	}{
		{"double_damage_from", dr.DoubleDamageFrom},
		{"double_damage_to", dr.DoubleDamageTo},
		{"half_damage_from", dr.HalfDamageFrom},
		{"half_damage_to", dr.HalfDamageTo},
		{"no_damage_from", dr.NoDamageFrom},
		{"no_damage_to", dr.NoDamageTo},
	}
	for _, l := range lists {
		if l.list == nil {
			errs = append(errs, fmt.Errorf("damage_relations.%s is missing", l.key))
			continue
		}
		for i, r := range *l.list {
			if r.Name == "" {
				errs = append(errs, fmt.Errorf("damage_relations.%s[%d].name is missing", l.key, i))
			}
		}
	}
	return errors.Join(errs...)
}

type listResponse struct {
	Count   int              `json:"count"`
	Results *[]namedResource `json:"results"`
}

func (l *listResponse) validate() error {
	if l.Results == nil {
		return errors.New("results is missing")
	}
	return nil
}
