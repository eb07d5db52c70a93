package progress

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
)

var metricsColumns = []string{"best_fitness", "mean_fitness", "stddev_fitness", "population"}

// MetricsWriter records one CSV row and one JSON line per generation.
type MetricsWriter struct {
	csvPath     string
	jsonPath    string
	csvFile     *os.File
	csvWriter   *csv.Writer
	jsonFile    *os.File
	initialized bool
}

// NewMetricsWriter creates a metrics writer and the directories its output
// files live in.
func NewMetricsWriter(csvPath, jsonPath string) (*MetricsWriter, error) {
	w := &MetricsWriter{
		csvPath:  csvPath,
		jsonPath: jsonPath,
	}
	if err := os.MkdirAll(filepath.Dir(csvPath), 0755); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(jsonPath), 0755); err != nil {
		return nil, err
	}
	return w, nil
}

// Init opens the output files and writes the CSV header.
func (w *MetricsWriter) Init() error {
	var err error

	w.csvFile, err = os.Create(w.csvPath)
	if err != nil {
		return err
	}
	w.csvWriter = csv.NewWriter(w.csvFile)

	header := append([]string{"generation"}, metricsColumns...)
	if err := w.csvWriter.Write(header); err != nil {
		return err
	}

	w.jsonFile, err = os.OpenFile(w.jsonPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	w.initialized = true
	return nil
}

// Close flushes and closes the output files.
func (w *MetricsWriter) Close() {
	if w.csvWriter != nil {
		w.csvWriter.Flush()
	}
	if w.csvFile != nil {
		w.csvFile.Close()
	}
	if w.jsonFile != nil {
		w.jsonFile.Close()
	}
}

// Report appends the generation's stats to both files. Stats the writer
// does not know a column for go to the JSON line only.
func (w *MetricsWriter) Report(generation int, stats map[string]string) {
	if !w.initialized {
		return
	}

	row := make([]string, 0, len(metricsColumns)+1)
	row = append(row, strconv.Itoa(generation))
	for _, col := range metricsColumns {
		row = append(row, stats[col])
	}
	w.csvWriter.Write(row)
	w.csvWriter.Flush()

	line := struct {
		Generation int               `json:"generation"`
		Stats      map[string]string `json:"stats"`
	}{Generation: generation, Stats: stats}
	jsonLine, _ := json.Marshal(line)
	w.jsonFile.WriteString(string(jsonLine) + "\n")
}
