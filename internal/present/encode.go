package present

import (
	"encoding/json"
	"io"

	"github.com/JadedPigeon/typechecker/internal/effectiveness"
	"gopkg.in/yaml.v3"
)

type errorPayload struct {
	Error string `json:"error" yaml:"error"`
}

type JSON struct{}

func (JSON) Present(w io.Writer, r *effectiveness.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func (JSON) PresentError(w io.Writer, err error) error {
	return json.NewEncoder(w).Encode(errorPayload{Error: err.Error()})
}

type YAML struct{}

func (YAML) Present(w io.Writer, r *effectiveness.Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}

func (YAML) PresentError(w io.Writer, err error) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(errorPayload{Error: err.Error()}); err != nil {
		return err
	}
	return enc.Close()
}
