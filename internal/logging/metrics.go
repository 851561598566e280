package logging

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/gigamonkey/groups/internal/ga"
)

// Metrics writes one CSV row and one JSON line per generation. Either path
// may be empty to skip that file.
type Metrics struct {
	csvPath   string
	jsonPath  string
	csvFile   *os.File
	csvWriter *csv.Writer
	jsonFile  *os.File
	log       logrus.FieldLogger
}

// NewMetrics creates the parent directories of the output files.
func NewMetrics(csvPath, jsonPath string, log logrus.FieldLogger) (*Metrics, error) {
	m := &Metrics{
		csvPath:  csvPath,
		jsonPath: jsonPath,
		log:      log,
	}

	for _, path := range []string{csvPath, jsonPath} {
		if path == "" {
			continue
		}
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, errors.Wrapf(err, "creating directory for %s", path)
		}
	}

	return m, nil
}

// Init opens the files and writes the CSV header.
func (m *Metrics) Init() error {
	var err error

	if m.csvPath != "" {
		m.csvFile, err = os.Create(m.csvPath)
		if err != nil {
			return errors.Wrap(err, "creating csv metrics")
		}
		m.csvWriter = csv.NewWriter(m.csvFile)

		header := []string{
			"generation", "best_fitness", "worst_fitness", "mean_fitness",
			"best_meetings", "best_missed", "best_groups", "mean_genome_length",
		}
		if err := m.csvWriter.Write(header); err != nil {
			return errors.Wrap(err, "writing csv header")
		}
	}

	if m.jsonPath != "" {
		m.jsonFile, err = os.OpenFile(m.jsonPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
		if err != nil {
			return errors.Wrap(err, "creating json metrics")
		}
	}

	return nil
}

// Close flushes and closes all files
func (m *Metrics) Close() {
	if m.csvWriter != nil {
		m.csvWriter.Flush()
	}
	if m.csvFile != nil {
		m.csvFile.Close()
	}
	if m.jsonFile != nil {
		m.jsonFile.Close()
	}
}

// Record writes a generation summary. Write failures are logged, not
// returned, so a full disk does not abort a long run.
func (m *Metrics) Record(stats ga.GenerationStats) {
	if m.csvWriter != nil {
		row := []string{
			strconv.Itoa(stats.Generation),
			fmt.Sprintf("%.6f", stats.Best),
			fmt.Sprintf("%.6f", stats.Worst),
			fmt.Sprintf("%.6f", stats.Mean),
			strconv.Itoa(stats.BestScore.Meetings),
			strconv.Itoa(stats.BestScore.Missed),
			strconv.Itoa(stats.BestGroups),
			fmt.Sprintf("%.2f", stats.MeanLength),
		}
		if err := m.csvWriter.Write(row); err != nil {
			m.log.WithError(err).Warn("failed to write csv metrics")
		}
		m.csvWriter.Flush()
	}

	if m.jsonFile != nil {
		line, err := json.Marshal(stats)
		if err != nil {
			m.log.WithError(err).Warn("failed to encode generation summary")
			return
		}
		if _, err := m.jsonFile.Write(append(line, '\n')); err != nil {
			m.log.WithError(err).Warn("failed to write json metrics")
		}
	}
}
