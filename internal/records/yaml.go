package records

import (
	"errors"
	"fmt"
	"io"

	"github.com/dgallion1/pinetree/internal/pine"
	"gopkg.in/yaml.v3"
)

// YAMLLoader handles a YAML sequence of records.
type YAMLLoader struct{}

func (l *YAMLLoader) Load(r io.Reader, filename string) ([]pine.Record, error) {
	var out []pine.Record
	if err := yaml.NewDecoder(r).Decode(&out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return out, nil
}
