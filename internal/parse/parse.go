package parse

import (
	"fmt"
	"strconv"
	"strings"
)

// Error reports a malformed row or token with its position.
type Error struct {
	Record string // record type ("node", "element", ...)
	Line   int    // 1-based line number within the block
	Column int    // 1-based token index, 0 when the whole row is at fault
	Token  string
	Reason string
}

func (e *Error) Error() string {
	if e.Column == 0 {
		return fmt.Sprintf("%s row at line %d: %s", e.Record, e.Line, e.Reason)
	}
	return fmt.Sprintf("%s row at line %d, field %d (%q): %s", e.Record, e.Line, e.Column, e.Token, e.Reason)
}

// Row is one parsed record. Accessors index by schema field position.
type Row struct {
	Line int

	ints    []int
	floats  []float64
	strings []string
	rest    []float64
}

// Int returns the integer value of field i.
func (r Row) Int(i int) int { return r.ints[i] }

// Float returns the floating-point value of field i.
func (r Row) Float(i int) float64 { return r.floats[i] }

// String returns the word value of field i.
func (r Row) String(i int) string { return r.strings[i] }

// Rest returns the trailing variable-length values, if the schema has them.
func (r Row) Rest() []float64 { return r.rest }

// Rows parses a block of delimited text against the schema. Tokens may be
// separated by commas, whitespace, or both. Blank lines and lines starting
// with '#' are skipped. Line numbers in errors are relative to the block.
func (s Schema) Rows(text string) ([]Row, error) {
	var rows []Row
	for n, line := range strings.Split(text, "\n") {
		lineNo := n + 1
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		row, err := s.parseRow(trimmed, lineNo)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func (s Schema) parseRow(line string, lineNo int) (Row, error) {
	tokens := Tokenize(line)

	if len(tokens) < len(s.Fields) {
		return Row{}, &Error{
			Record: s.Record,
			Line:   lineNo,
			Reason: fmt.Sprintf("expected %d fields (%s), got %d", len(s.Fields), s.fieldNames(), len(tokens)),
		}
	}
	if s.Rest == nil && len(tokens) > len(s.Fields) {
		return Row{}, &Error{
			Record: s.Record,
			Line:   lineNo,
			Reason: fmt.Sprintf("expected %d fields (%s), got %d", len(s.Fields), s.fieldNames(), len(tokens)),
		}
	}

	row := Row{
		Line:    lineNo,
		ints:    make([]int, len(s.Fields)),
		floats:  make([]float64, len(s.Fields)),
		strings: make([]string, len(s.Fields)),
	}

	for i, f := range s.Fields {
		tok := tokens[i]
		switch f.Kind {
		case Int:
			v, err := strconv.Atoi(tok)
			if err != nil {
				return Row{}, &Error{
					Record: s.Record, Line: lineNo, Column: i + 1, Token: tok,
					Reason: fmt.Sprintf("field %q must be an integer", f.Name),
				}
			}
			row.ints[i] = v
		case Float:
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return Row{}, &Error{
					Record: s.Record, Line: lineNo, Column: i + 1, Token: tok,
					Reason: fmt.Sprintf("field %q must be a number", f.Name),
				}
			}
			row.floats[i] = v
		case String:
			row.strings[i] = tok
		}
	}

	if s.Rest != nil {
		for i, tok := range tokens[len(s.Fields):] {
			col := len(s.Fields) + i + 1
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return Row{}, &Error{
					Record: s.Record, Line: lineNo, Column: col, Token: tok,
					Reason: fmt.Sprintf("field %q must be a number", s.Rest.Name),
				}
			}
			row.rest = append(row.rest, v)
		}
	}

	return row, nil
}

func (s Schema) fieldNames() string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	if s.Rest != nil {
		names = append(names, s.Rest.Name+"...")
	}
	return strings.Join(names, ", ")
}

// Tokenize splits a row on commas and/or whitespace, dropping empty tokens.
func Tokenize(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
}
