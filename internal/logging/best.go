package logging

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/gigamonkey/groups/internal/score"
)

// Best is the saved outcome of a run: the decoded groups by name.
type Best struct {
	Solver     string      `json:"solver"`
	Generation int         `json:"generation,omitempty"`
	Fitness    float64     `json:"fitness"`
	Score      score.Score `json:"score"`
	Groups     [][]string  `json:"groups"`
}

// SaveBest writes b as indented JSON to path.
func SaveBest(path string, b Best) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, "creating directory for %s", path)
	}

	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encoding result")
	}

	return errors.Wrapf(os.WriteFile(path, data, 0644), "writing %s", path)
}
