package parse

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/erraggy/tabtools/collate"
	"github.com/erraggy/tabtools/projection"
	"github.com/erraggy/tabtools/ptr"
	"github.com/erraggy/tabtools/shape"
	"github.com/erraggy/tabtools/taberrors"
)

// CSVParser converts CSV rows into nested JSON documents.
//
// The first record is the header row. Each header is collated and looked up
// in the projection table to find its target location and type hints; a
// header with no projection falls back to a top-level property named by the
// raw header text. Cell text is converted according to the location's
// possible types before being placed into the output document.
type CSVParser struct {
	table  projection.Table
	comma  rune
	logger projection.Logger
}

// CSVOption configures a CSVParser.
type CSVOption func(*CSVParser)

// WithComma sets the field delimiter. Defaults to ','.
func WithComma(comma rune) CSVOption {
	return func(p *CSVParser) {
		if comma != 0 {
			p.comma = comma
		}
	}
}

// WithCSVLogger sets the logger for per-header diagnostics.
// Defaults to projection.NopLogger.
func WithCSVLogger(logger projection.Logger) CSVOption {
	return func(p *CSVParser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewCSVParser creates a CSVParser over a resolved projection table.
func NewCSVParser(table projection.Table, opts ...CSVOption) *CSVParser {
	p := &CSVParser{
		table:  table,
		comma:  ',',
		logger: projection.NopLogger{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// column is one resolved header.
type column struct {
	header string
	info   projection.TypeInfo
}

// Parse reads CSV records from r and calls emit once per data row with the
// assembled document. Parsing stops at the first error; emit errors
// propagate unchanged.
func (p *CSVParser) Parse(r io.Reader, emit func(doc map[string]any) error) error {
	reader := csv.NewReader(r)
	reader.Comma = p.comma
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil
	}
	if err != nil {
		return &taberrors.ParseError{Row: 1, Message: "cannot read header row", Cause: err}
	}

	columns := make([]column, len(header))
	for i, h := range header {
		columns[i] = p.resolveColumn(h)
	}

	row := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		row++
		if err != nil {
			return &taberrors.ParseError{Row: row, Message: "cannot read record", Cause: err}
		}

		doc := make(map[string]any, len(columns))
		for i, cell := range record {
			if i >= len(columns) {
				return &taberrors.ParseError{
					Row:     row,
					Message: fmt.Sprintf("record has %d fields, header has %d", len(record), len(columns)),
				}
			}
			col := columns[i]
			value, place, err := convertCell(cell, col.info.PossibleTypes)
			if err != nil {
				return &taberrors.ParseError{Row: row, Column: col.header, Cause: err}
			}
			if !place {
				continue
			}
			if err := col.info.TargetLocation.Place(doc, value); err != nil {
				return &taberrors.ParseError{Row: row, Column: col.header, Cause: err}
			}
		}
		if err := emit(doc); err != nil {
			return err
		}
	}
}

// resolveColumn looks a raw header up in the projection table.
func (p *CSVParser) resolveColumn(header string) column {
	collated := collate.String(header)
	if info, ok := p.table.Lookup(collated); ok {
		return column{header: header, info: info}
	}
	p.logger.Debug("no projection for column, using top-level property",
		"column", header,
	)
	return column{
		header: header,
		info: projection.TypeInfo{
			TargetLocation: ptr.Pointer{ptr.Prop(header)},
		},
	}
}

// convertCell converts raw cell text according to the location's possible
// types. The boolean result is false when the cell should be omitted from
// the document entirely (an empty cell at a location that allows neither
// strings nor nulls).
func convertCell(cell string, types *shape.Set) (any, bool, error) {
	if types == nil {
		// no type information: keep the raw text
		return cell, true, nil
	}
	ts := *types

	if cell == "" {
		switch {
		case ts.Has(shape.String):
			return "", true, nil
		case ts.Has(shape.Null):
			return nil, true, nil
		default:
			return nil, false, nil
		}
	}

	if ts.Has(shape.Integer) && !ts.Has(shape.String) {
		if i, err := strconv.ParseInt(cell, 10, 64); err == nil {
			return i, true, nil
		}
	}
	if ts.Has(shape.Number) && !ts.Has(shape.String) {
		if f, err := strconv.ParseFloat(cell, 64); err == nil {
			return f, true, nil
		}
	}
	if ts.Has(shape.Boolean) && !ts.Has(shape.String) {
		if b, err := strconv.ParseBool(cell); err == nil {
			return b, true, nil
		}
	}
	if ts.Has(shape.Null) && cell == "null" && !ts.Has(shape.String) {
		return nil, true, nil
	}
	if ts.Has(shape.String) {
		return cell, true, nil
	}
	return nil, false, fmt.Errorf("value %q does not match expected types (%s)", cell, ts)
}
