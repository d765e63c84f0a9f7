package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

const (
	FormatOneHotEncoder = "one_hot_encoder"

	HandleUnknownIgnore = "ignore"
	HandleUnknownError  = "error"
)

var ErrUnknownCategory = errors.New("unknown category")

// ColumnSpec is one fitted input column and the categories seen at fit time.
type ColumnSpec struct {
	Name       string   `json:"name"`
	Categories []string `json:"categories"`
}

// preprocessorDoc mirrors the persisted preprocessor artifact.
type preprocessorDoc struct {
	Format        string       `json:"format"`
	HandleUnknown string       `json:"handle_unknown"`
	SparseOutput  *bool        `json:"sparse_output"`
	Columns       []ColumnSpec `json:"columns"`
}

// Preprocessor one-hot encodes a row of categorical columns into a fixed-width
// feature vector. It is immutable after loading.
type Preprocessor struct {
	columns       []ColumnSpec
	offsets       []int
	index         []map[string]int
	width         int
	handleUnknown string
	sparse        bool
}

// ParsePreprocessor decodes and validates a preprocessor artifact.
func ParsePreprocessor(data []byte) (*Preprocessor, error) {
	var doc preprocessorDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode preprocessor: %w", err)
	}
	if doc.Format != FormatOneHotEncoder {
		return nil, fmt.Errorf("unsupported preprocessor format %q", doc.Format)
	}
	if len(doc.Columns) == 0 {
		return nil, errors.New("preprocessor has no columns")
	}

	handle := doc.HandleUnknown
	if handle == "" {
		handle = HandleUnknownError
	}
	if handle != HandleUnknownIgnore && handle != HandleUnknownError {
		return nil, fmt.Errorf("unsupported handle_unknown %q", doc.HandleUnknown)
	}

	p := &Preprocessor{
		columns:       doc.Columns,
		offsets:       make([]int, len(doc.Columns)),
		index:         make([]map[string]int, len(doc.Columns)),
		handleUnknown: handle,
		sparse:        doc.SparseOutput == nil || *doc.SparseOutput,
	}

	seen := make(map[string]struct{}, len(doc.Columns))
	for i, col := range doc.Columns {
		if col.Name == "" {
			return nil, fmt.Errorf("column %d has no name", i)
		}
		if _, dup := seen[col.Name]; dup {
			return nil, fmt.Errorf("duplicate column %q", col.Name)
		}
		seen[col.Name] = struct{}{}
		if len(col.Categories) == 0 {
			return nil, fmt.Errorf("column %q has no categories", col.Name)
		}

		p.offsets[i] = p.width
		p.index[i] = make(map[string]int, len(col.Categories))
		for j, cat := range col.Categories {
			if _, dup := p.index[i][cat]; dup {
				return nil, fmt.Errorf("column %q: duplicate category %q", col.Name, cat)
			}
			p.index[i][cat] = j
		}
		p.width += len(col.Categories)
	}

	return p, nil
}

// Width is the length of every transformed vector.
func (p *Preprocessor) Width() int {
	return p.width
}

// Columns returns the input column names in fitted order.
func (p *Preprocessor) Columns() []string {
	names := make([]string, len(p.columns))
	for i, c := range p.columns {
		names[i] = c.Name
	}
	return names
}

// Categories returns the fitted categories of a column, or nil when the column
// is unknown.
func (p *Preprocessor) Categories(column string) []string {
	for _, c := range p.columns {
		if c.Name == column {
			out := make([]string, len(c.Categories))
			copy(out, c.Categories)
			return out
		}
	}
	return nil
}

// Transform encodes one row. Every fitted column must be present in row.
func (p *Preprocessor) Transform(row map[string]string) (Features, error) {
	sv := &SparseVector{
		Dim:     p.width,
		Indices: make([]int, 0, len(p.columns)),
		Values:  make([]float64, 0, len(p.columns)),
	}

	for i, col := range p.columns {
		value, ok := row[col.Name]
		if !ok {
			return nil, fmt.Errorf("transform: missing column %q", col.Name)
		}
		j, known := p.index[i][value]
		if !known {
			if p.handleUnknown == HandleUnknownIgnore {
				continue
			}
			return nil, fmt.Errorf("transform: column %q: %w %q", col.Name, ErrUnknownCategory, value)
		}
		sv.Indices = append(sv.Indices, p.offsets[i]+j)
		sv.Values = append(sv.Values, 1)
	}

	if p.sparse {
		return sv, nil
	}
	return sv.ToDense(), nil
}
