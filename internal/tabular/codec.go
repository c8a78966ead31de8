// Package tabular round-trips record sets through a flat comma-separated
// text format for bulk export and import-replace.
package tabular

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
)

// Row is one flat record. Fields carries the field order; Values holds nil,
// bool or string entries (plus numbers on the encode side).
type Row struct {
	Fields []string
	Values map[string]any
}

// Encode renders rows as comma-separated text. The header comes from the
// first row's field order, so fields absent from the first row are lost.
// Values containing a comma, quote or newline are quoted with inner quotes
// doubled; nil encodes as the empty string.
func Encode(rows []Row) string {
	if len(rows) == 0 {
		return ""
	}
	header := rows[0].Fields
	var buf strings.Builder
	w := csv.NewWriter(&buf)
	_ = w.Write(header)
	record := make([]string, len(header))
	for _, row := range rows {
		for i, field := range header {
			record[i] = stringify(row.Values[field])
		}
		_ = w.Write(record)
	}
	w.Flush()
	return strings.TrimSuffix(buf.String(), "\n")
}

// Decode parses comma-separated text. The first line names the fields; the
// literal tokens null, true and false become typed values and everything
// else stays a string. Rows whose field count does not match the header are
// dropped silently, as are unparseable lines.
func Decode(text string) []Row {
	r := csv.NewReader(strings.NewReader(text))
	r.FieldsPerRecord = -1
	header, err := r.Read()
	if err != nil {
		return nil
	}
	var rows []Row
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		if len(record) != len(header) {
			continue
		}
		values := make(map[string]any, len(header))
		for i, field := range header {
			values[field] = coerce(record[i])
		}
		rows = append(rows, Row{
			Fields: append([]string(nil), header...),
			Values: values,
		})
	}
	return rows
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case float64:
		return strconv.FormatFloat(val, 'g', -1, 64)
	case *float64:
		if val == nil {
			return ""
		}
		return strconv.FormatFloat(*val, 'g', -1, 64)
	case *string:
		if val == nil {
			return ""
		}
		return *val
	case int:
		return strconv.Itoa(val)
	default:
		return ""
	}
}

func coerce(token string) any {
	switch token {
	case "null":
		return nil
	case "true":
		return true
	case "false":
		return false
	default:
		return token
	}
}
