package records

import (
	"bytes"
	"fmt"
	"io"

	"github.com/dgallion1/pinetree/internal/pine"
	json "github.com/goccy/go-json"
)

// JSONLoader handles a JSON array of records, or an object wrapping one
// under "records".
type JSONLoader struct{}

func (l *JSONLoader) Load(r io.Reader, filename string) ([]pine.Record, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}

	if data[0] == '{' {
		var wrapped struct {
			Records []pine.Record `json:"records"`
		}
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return nil, fmt.Errorf("parse json: %w", err)
		}
		return wrapped.Records, nil
	}

	var out []pine.Record
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	return out, nil
}
