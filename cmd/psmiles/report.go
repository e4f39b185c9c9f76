package main

import (
	"io"

	"github.com/2x3systems/psmiles/libpsm"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Entry is the report of one input line.
type Entry struct {
	Line      int        `yaml:"line"`
	Input     string     `yaml:"input"`
	Valid     bool       `yaml:"valid"`
	Error     string     `yaml:"error,omitempty"`
	Offset    *int       `yaml:"offset,omitempty"`
	Parts     int        `yaml:"parts,omitempty"`
	Particles int        `yaml:"particles,omitempty"`
	Duplicate bool       `yaml:"duplicate,omitempty"`
	Nmers     [][]string `yaml:"nmers,omitempty"`
	Table     [][]string `yaml:"table,omitempty"`
}

// Report is the YAML document written by the check command.
type Report struct {
	Total   int      `yaml:"total"`
	Valid   int      `yaml:"valid"`
	Unique  int      `yaml:"unique"`
	Nmers   int      `yaml:"distinct_nmers,omitempty"`
	Entries []*Entry `yaml:"entries"`
}

func newEntry(line int, X *libpsm.Structure, cfg *Config) *Entry {
	entry := &Entry{
		Line:  line,
		Input: X.Input(),
		Valid: X.IsValid(),
	}
	if !entry.Valid {
		offset := X.ErrorOffset()
		entry.Error = X.ErrorKind().String()
		entry.Offset = &offset
		return entry
	}

	entry.Parts = len(X.Parts())
	entry.Particles = len(X.Particles())
	if cfg.NeighborDepth > 0 {
		entry.Nmers = X.Neighbors(cfg.NeighborDepth, cfg.AllowDoublets)
	}
	if cfg.Anchors != "" {
		entry.Table = X.PositionTable()
	}
	return entry
}

func (rep *Report) WriteTo(w io.Writer) (int64, error) {
	out, err := yaml.Marshal(rep)
	if err != nil {
		return 0, errors.Wrap(err, "encode report")
	}
	n, err := w.Write(out)
	return int64(n), errors.Wrap(err, "write report")
}
