package flood

import (
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/lintang-b-s/floodnav/pkg/costfunction"
)

var (
	ErrNotReady  = errors.New("flood data is not ready, the sheet returned an html page")
	ErrEmptyData = errors.New("flood data is empty or malformed")
)

const (
	colRoadID = 1
	colTime   = 2
	colLevel  = 3
	minCols   = 4
)

/*
ParseCSV. parse the published flood sheet.

the first row is a header. columns 1, 2 and 3 hold the road id, the reading time and the level.
rows with fewer than four columns or without road id or time are skipped. the level is either a number
0..3 or a textual label.
*/
func ParseCSV(r io.Reader) ([]Reading, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	text := strings.TrimSpace(string(body))
	if strings.HasPrefix(strings.ToLower(text), "<!doctype html") {
		return nil, ErrNotReady
	}

	cr := csv.NewReader(strings.NewReader(text))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.TrimLeadingSpace = true

	readings := make([]Reading, 0)
	header := true
	for {
		cols, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				continue
			}
			return nil, err
		}
		if header {
			header = false
			continue
		}
		if len(cols) < minCols {
			continue
		}

		id := strings.TrimSpace(cols[colRoadID])
		time := strings.TrimSpace(cols[colTime])
		if id == "" || time == "" {
			continue
		}

		readings = append(readings, Reading{
			RoadID: id,
			Time:   time,
			Level:  ParseLevel(cols[colLevel]),
		})
	}

	if len(readings) == 0 {
		return nil, ErrEmptyData
	}
	return readings, nil
}

// ParseLevel. numeric 0..3, otherwise matched against the labels used on the sheet
// (cao/đỏ = high, trung/vàng = medium, thấp/xanh = low). anything else is normal.
func ParseLevel(raw string) costfunction.Severity {
	raw = strings.TrimSpace(raw)
	if n, ok := parseLeadingInt(raw); ok && n >= 0 && n <= 3 {
		return costfunction.Severity(n)
	}

	lower := strings.ToLower(raw)
	switch {
	case containsAny(lower, "cao", "đỏ", "3"):
		return costfunction.SEVERITY_IMPASSABLE
	case containsAny(lower, "trung", "vàng", "2"):
		return costfunction.SEVERITY_MEDIUM
	case containsAny(lower, "thấp", "xanh", "1"):
		return costfunction.SEVERITY_LOW
	default:
		return costfunction.SEVERITY_NORMAL
	}
}

// parseLeadingInt. integer prefix of s, "2 (medium)" gives 2.
func parseLeadingInt(s string) (int, bool) {
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digitsStart := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digitsStart {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
