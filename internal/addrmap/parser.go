package addrmap

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/retroenv/retrogolib/log"
)

// Parse reads the address map text and returns its rows in input order.
// Comment lines starting with # and blank lines are ignored, rows of an unknown
// kind are skipped with a warning so that newer exporter versions keep working.
// Every row is a single line, a quote can not continue a field on the next line.
func Parse(logger *log.Logger, r io.Reader) ([]Row, error) {
	scanner := bufio.NewScanner(r)
	var rows []Row

	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" || text[0] == '#' {
			continue
		}

		token, _, _ := strings.Cut(text, ",")
		kind := Kind(strings.TrimSpace(token))
		lay, ok := layouts[kind]
		if !ok {
			logger.Warn("Skipping unexpected address map entry",
				log.Int("line", line),
				log.String("kind", string(kind)))
			continue
		}

		record, err := splitRecord(kind, text, line)
		if err != nil {
			return nil, err
		}
		row, err := parseRow(kind, lay, record, line)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading address map: %w", err)
	}
	return rows, nil
}

// splitRecord splits a single row into its fields. Quotes inside a field are
// kept as text, a quoted field has to be closed on the same line.
func splitRecord(kind Kind, text string, line int) ([]string, error) {
	if unclosedQuote(text) {
		return nil, &MalformedRowError{Line: line, Kind: kind, Msg: "unbalanced quote"}
	}

	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	record, err := reader.Read()
	if err != nil {
		return nil, &MalformedRowError{Line: line, Kind: kind, Msg: "invalid field quoting", Err: err}
	}
	return record, nil
}

// unclosedQuote reports whether a field of the row starts with a quote that
// is not closed. Quotes inside an unquoted field are literal text.
func unclosedQuote(text string) bool {
	inQuotes, fieldStart := false, true

	for i := 0; i < len(text); i++ {
		c := text[i]
		switch {
		case inQuotes:
			if c == '"' {
				if i+1 < len(text) && text[i+1] == '"' {
					i++
					continue
				}
				inQuotes = false
			}
		case c == ',':
			fieldStart = true
			continue
		case c == ' ' && fieldStart:
			continue
		case c == '"' && fieldStart:
			inQuotes = true
		}
		fieldStart = false
	}
	return inQuotes
}

func parseRow(kind Kind, lay layout, record []string, line int) (Row, error) {
	if len(record) < lay.minFields || len(record) > lay.maxFields {
		return Row{}, &MalformedRowError{
			Line: line,
			Kind: kind,
			Msg:  fmt.Sprintf("expected %d to %d fields, got %d", lay.minFields, lay.maxFields, len(record)),
		}
	}

	fields := make([]string, maxFields)
	for i, field := range record {
		fields[i] = strings.TrimSpace(field)
	}

	row := Row{
		Kind: kind,
		Name: fields[1],
		Line: line,
	}
	if row.Name == "" {
		return Row{}, &MalformedRowError{Line: line, Kind: kind, Msg: "missing name"}
	}

	var err error
	switch kind {
	case Constant:
		row.Value = fields[2]
		return row, nil

	case CSRBase:
		row.Address, err = parseField(kind, line, "address", fields[2])

	case CSRRegister:
		if row.Address, err = parseField(kind, line, "address", fields[2]); err != nil {
			return Row{}, err
		}
		row.Size, err = parseField(kind, line, "size", fields[3])
		row.Access = fields[4]

	case MemoryRegion:
		if row.Address, err = parseField(kind, line, "address", fields[2]); err != nil {
			return Row{}, err
		}
		row.Size, err = parseField(kind, line, "size", fields[3])
		row.Type = fields[4]
	}
	if err != nil {
		return Row{}, err
	}
	return row, nil
}

func parseField(kind Kind, line int, name, value string) (uint64, error) {
	i, err := ParseNumber(value)
	if err != nil {
		return 0, &MalformedRowError{
			Line: line,
			Kind: kind,
			Msg:  fmt.Sprintf("invalid %s '%s'", name, value),
			Err:  err,
		}
	}
	return i, nil
}

// ParseNumber parses an unsigned integer as written by the exporter:
// base 16 with a 0x prefix, base 10 otherwise.
func ParseNumber(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if len(s) > 2 && (strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X")) {
		return strconv.ParseUint(s[2:], 16, 64)
	}
	return strconv.ParseUint(s, 10, 64)
}
