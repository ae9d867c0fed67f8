package dataprocessing

import (
	"strings"
	"time"
	"unicode"

	apperrors "bridgesched/internal/errors"
)

// DateParser expands booked-access date expressions into concrete calendar
// dates. The grammar, in precedence order:
//
//	range:  "D1 to D2"       every day from D1 through D2 inclusive
//	multi:  "D1 & D2 [& D3]" each date in listed order, duplicates kept
//	single: one date token
//
// A field containing both " to " and "&" is treated as a range; the separator
// check for " to " runs first, matching the master sheet's usage.
//
// Date tokens: MM/DD/YY (centuryBase+YY), MM/DD/YYYY, MM/DD (implicit year),
// and bare MMDD (master-sheet due-date shorthand). All dates are UTC midnight.
type DateParser struct {
	implicitYear int
	centuryBase  int
}

// NewDateParser creates a parser. implicitYear <= 0 means the current year;
// centuryBase <= 0 means 2000.
func NewDateParser(implicitYear, centuryBase int) *DateParser {
	if implicitYear <= 0 {
		implicitYear = time.Now().Year()
	}
	if centuryBase <= 0 {
		centuryBase = 2000
	}
	return &DateParser{implicitYear: implicitYear, centuryBase: centuryBase}
}

const rangeSeparator = " to "

// ExpandDates parses a booked-access expression into a non-empty ordered list
// of dates, or a DateParseError naming the offending text.
func (p *DateParser) ExpandDates(raw string) ([]time.Time, error) {
	expr := strings.TrimSpace(raw)
	if expr == "" {
		return nil, &apperrors.DateParseError{Input: raw, Reason: "empty expression"}
	}

	if idx := indexRangeSeparator(expr); idx >= 0 {
		return p.expandRange(expr[:idx], expr[idx+len(rangeSeparator):])
	}

	if strings.Contains(expr, "&") {
		parts := strings.Split(expr, "&")
		dates := make([]time.Time, 0, len(parts))
		for _, part := range parts {
			d, err := p.ParseToken(part)
			if err != nil {
				return nil, err
			}
			dates = append(dates, d)
		}
		return dates, nil
	}

	d, err := p.ParseToken(expr)
	if err != nil {
		return nil, err
	}
	return []time.Time{d}, nil
}

// indexRangeSeparator finds " to " case-insensitively. The separator is pure
// ASCII, so a byte-wise folded scan keeps offsets valid on the original
// string even when the expression carries multibyte runes; lowercasing the
// whole expression first would not (some runes change byte length).
func indexRangeSeparator(expr string) int {
	for i := 0; i+len(rangeSeparator) <= len(expr); i++ {
		if strings.EqualFold(expr[i:i+len(rangeSeparator)], rangeSeparator) {
			return i
		}
	}
	return -1
}

func (p *DateParser) expandRange(startTok, endTok string) ([]time.Time, error) {
	start, err := p.ParseToken(startTok)
	if err != nil {
		return nil, err
	}
	end, err := p.ParseToken(endTok)
	if err != nil {
		return nil, err
	}
	if end.Before(start) {
		return nil, &apperrors.DateParseError{
			Input:  strings.TrimSpace(startTok) + rangeSeparator + strings.TrimSpace(endTok),
			Reason: "range end precedes range start",
		}
	}

	var dates []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates, nil
}

// ParseToken parses one date token. Surrounding whitespace is ignored.
func (p *DateParser) ParseToken(token string) (time.Time, error) {
	tok := strings.TrimSpace(token)
	if tok == "" {
		return time.Time{}, &apperrors.DateParseError{Input: token, Reason: "empty date token"}
	}

	// Bare MMDD, e.g. "1107" for Nov 7 of the implicit year.
	if len(tok) == 4 && isDigits(tok) {
		d, err := time.Parse("0102", tok)
		if err != nil {
			return time.Time{}, &apperrors.DateParseError{Input: tok, Reason: "not a valid MMDD date"}
		}
		return date(p.implicitYear, d.Month(), d.Day()), nil
	}

	// MM/DD/YY before MM/DD/YYYY: the two-digit layout rejects four-digit
	// years, so the order is safe and keeps "10/14/25" in the configured
	// century instead of Go's 69..99 -> 19xx rule.
	if d, err := time.Parse("1/2/06", tok); err == nil {
		yy := d.Year() % 100
		return date(p.centuryBase+yy, d.Month(), d.Day()), nil
	}
	if d, err := time.Parse("1/2/2006", tok); err == nil {
		return date(d.Year(), d.Month(), d.Day()), nil
	}
	if d, err := time.Parse("1/2", tok); err == nil {
		return date(p.implicitYear, d.Month(), d.Day()), nil
	}

	return time.Time{}, &apperrors.DateParseError{Input: tok, Reason: "unrecognized date format"}
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
