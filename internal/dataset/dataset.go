// Package dataset holds the in-memory columnar data model the detection
// and sanitization core operates on. Decoding from CSV/Excel/JSON into a
// Dataset happens outside the core; this package only models the decoded
// scalars and enforces structural invariants.
package dataset

import (
	"fmt"
	"strconv"
	"time"
)

// Kind identifies the scalar type held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindText
	KindInt
	KindFloat
	KindTime
)

// String returns the lowercase kind name.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindTime:
		return "time"
	default:
		return "null"
	}
}

// Value is a nullable scalar cell value.
type Value struct {
	Kind  Kind
	Text  string
	Int   int64
	Float float64
	Time  time.Time
}

func Null() Value               { return Value{Kind: KindNull} }
func Text(s string) Value       { return Value{Kind: KindText, Text: s} }
func Int(i int64) Value         { return Value{Kind: KindInt, Int: i} }
func Float(f float64) Value     { return Value{Kind: KindFloat, Float: f} }
func Time(t time.Time) Value    { return Value{Kind: KindTime, Time: t} }

// IsNull reports whether the value holds nothing.
func (v Value) IsNull() bool { return v.Kind == KindNull }

// Canonical returns the text representation matchers operate on.
// Null values canonicalize to the empty string.
func (v Value) Canonical() string {
	switch v.Kind {
	case KindText:
		return v.Text
	case KindInt:
		return strconv.FormatInt(v.Int, 10)
	case KindFloat:
		return strconv.FormatFloat(v.Float, 'g', -1, 64)
	case KindTime:
		return v.Time.Format(time.RFC3339)
	default:
		return ""
	}
}

// Column is an ordered sequence of values under a name.
type Column struct {
	Name   string
	Values []Value
}

// Dataset is an ordered sequence of named columns of equal length.
// Transformations produce a new Dataset; no code path mutates one in place.
type Dataset struct {
	Columns []Column
}

// New builds a Dataset from the given columns without validating them.
// Call Validate before handing the dataset to the analyzer.
func New(columns ...Column) *Dataset {
	return &Dataset{Columns: columns}
}

// RowCount returns the number of rows, defined by the first column.
func (d *Dataset) RowCount() int {
	if len(d.Columns) == 0 {
		return 0
	}
	return len(d.Columns[0].Values)
}

// ColumnCount returns the number of columns.
func (d *Dataset) ColumnCount() int { return len(d.Columns) }

// ColumnNames returns the column names in order.
func (d *Dataset) ColumnNames() []string {
	names := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		names[i] = c.Name
	}
	return names
}

// HasColumn reports whether a column with the given name exists.
func (d *Dataset) HasColumn(name string) bool {
	for _, c := range d.Columns {
		if c.Name == name {
			return true
		}
	}
	return false
}

// StructuralError reports a malformed dataset. It is fatal for the
// current call and never retried.
type StructuralError struct {
	Msg string
}

func (e *StructuralError) Error() string {
	return "structural error: " + e.Msg
}

// Validate checks the equal-length invariant across columns.
func (d *Dataset) Validate() error {
	if len(d.Columns) == 0 {
		return nil
	}
	want := len(d.Columns[0].Values)
	for _, c := range d.Columns[1:] {
		if len(c.Values) != want {
			return &StructuralError{
				Msg: fmt.Sprintf("column %q has %d rows, expected %d", c.Name, len(c.Values), want),
			}
		}
	}
	return nil
}
