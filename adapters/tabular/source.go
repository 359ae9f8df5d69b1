package tabular

import (
	"context"

	"puckval/domain/player"
	"puckval/ports"
)

// FileSource adapts a local CSV or Excel export to the TableSource
// contract, so file-backed and live-API data feed the core identically.
type FileSource struct {
	path string
}

var _ ports.TableSource = (*FileSource)(nil)

// NewFileSource creates a file-backed table source
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// FetchTable reads and normalizes the file into a canonical table.
func (s *FileSource) FetchTable(ctx context.Context) (*player.StatTable, error) {
	rows, err := NewDataReader(s.path).ReadRows()
	if err != nil {
		return nil, err
	}
	return Adapt(rows)
}
