package storage

import (
	"encoding/json"
	"io"
)

type ExportData struct {
	Metadata RunMetadata          `json:"metadata"`
	Series   map[string][]float64 `json:"series"`
}

// ExportJSON writes a run's metadata and every column of its table.
func (s *Store) ExportJSON(w io.Writer, runID string) error {
	meta, err := s.Load(runID)
	if err != nil {
		return err
	}
	table, err := s.LoadTable(runID)
	if err != nil {
		return err
	}

	data := ExportData{
		Metadata: *meta,
		Series:   make(map[string][]float64, len(table.Columns)),
	}
	for _, name := range table.Columns {
		data.Series[name] = table.Column(name)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
