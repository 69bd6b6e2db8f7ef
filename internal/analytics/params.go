package analytics

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

const (
	DefaultDateFrom = "-7d"

	dateLayout = "2006-01-02"
)

var (
	ErrInvalidParams = errors.New("invalid analytics parameters")

	relativePattern = regexp.MustCompile(`^-(\d{1,4})([hdwmy])$`)
	intervalUnits   = map[string]string{
		"h": "HOUR",
		"d": "DAY",
		"w": "WEEK",
		"m": "MONTH",
		"y": "YEAR",
	}
)

// QueryParams is the time range of a dashboard read. DateFrom is relative
// ("-7d") or a calendar date; an empty DateTo means now.
type QueryParams struct {
	DateFrom string `json:"dateFrom"`
	DateTo   string `json:"dateTo,omitempty"`
}

func ParseParams(dateFrom, dateTo string) (QueryParams, error) {
	if dateFrom == "" {
		dateFrom = DefaultDateFrom
	}
	if _, err := rangeBound(dateFrom); err != nil {
		return QueryParams{}, fmt.Errorf("%w: dateFrom: %v", ErrInvalidParams, err)
	}
	if dateTo != "" {
		if _, err := rangeBound(dateTo); err != nil {
			return QueryParams{}, fmt.Errorf("%w: dateTo: %v", ErrInvalidParams, err)
		}
		from, fromErr := time.Parse(dateLayout, dateFrom)
		to, toErr := time.Parse(dateLayout, dateTo)
		if fromErr == nil && toErr == nil && from.After(to) {
			return QueryParams{}, fmt.Errorf("%w: dateFrom %s is after dateTo %s", ErrInvalidParams, dateFrom, dateTo)
		}
	}
	return QueryParams{DateFrom: dateFrom, DateTo: dateTo}, nil
}

// rangeClause renders the timestamp filter. Inputs are validated against
// fixed patterns before they reach the query text. A calendar dateTo covers
// the whole day, so the upper bound is the following midnight, exclusive.
func (p QueryParams) rangeClause() string {
	from, err := rangeBound(p.DateFrom)
	if err != nil {
		from, _ = rangeBound(DefaultDateFrom)
	}
	upper := "timestamp <= now()"
	if p.DateTo != "" {
		if t, err := time.Parse(dateLayout, p.DateTo); err == nil {
			upper = "timestamp < " + dateTimeLiteral(t.AddDate(0, 0, 1))
		} else if b, err := rangeBound(p.DateTo); err == nil {
			upper = "timestamp <= " + b
		}
	}
	return fmt.Sprintf("timestamp >= %s AND %s", from, upper)
}

func rangeBound(value string) (string, error) {
	if m := relativePattern.FindStringSubmatch(value); m != nil {
		n, _ := strconv.Atoi(m[1])
		return fmt.Sprintf("now() - INTERVAL %d %s", n, intervalUnits[m[2]]), nil
	}

	if t, err := time.Parse(dateLayout, value); err == nil {
		return dateTimeLiteral(t), nil
	}

	return "", fmt.Errorf("unsupported value %q", value)
}

func dateTimeLiteral(t time.Time) string {
	return fmt.Sprintf("toDateTime('%s')", t.Format("2006-01-02 15:04:05"))
}
