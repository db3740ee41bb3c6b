// Package codec converts between the ordered string cells the spreadsheet
// stores and the typed records the service layer works with. It is the
// single place where defaults and coercions happen: a malformed numeric
// cell decodes to 0, a missing cell to the zero value, and encoding is
// always full-width positional so optional fields never shift columns.
package codec

import (
	"strconv"
	"strings"
)

// cell returns the i-th cell of a row, or "" when the row is short.
func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseFloat parses a numeric cell, falling back to 0 on malformed or
// missing input. A single bad cell must never fail a whole table read.
func parseFloat(row []string, i int) float64 {
	v := cell(row, i)
	if v == "" {
		return 0
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(v, ",", ""), 64)
	if err != nil {
		return 0
	}
	return f
}

// parseInt parses an integer cell with a 0 fallback.
func parseInt(row []string, i int) int {
	return int(parseFloat(row, i))
}

// parseBool decodes the sheet's "TRUE"/"FALSE" string flags.
func parseBool(row []string, i int) bool {
	return strings.EqualFold(cell(row, i), "TRUE")
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatBool(v bool) string {
	if v {
		return "TRUE"
	}
	return "FALSE"
}

// dataRows strips the header row. Empty and header-only tables yield nil,
// not an error: an unpopulated worksheet is a valid state.
func dataRows(rows [][]string) [][]string {
	if len(rows) <= 1 {
		return nil
	}
	return rows[1:]
}
