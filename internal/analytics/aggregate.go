package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/dimitrije/site-admin-api/internal/models"
)

const breakdownLimit = 10

// Source executes a HogQL query. *Client is the production implementation.
type Source interface {
	Configured() bool
	Query(ctx context.Context, hogql string) ([][]any, error)
}

type metric struct {
	name   string
	query  func(QueryParams) string
	decode func([][]any) (any, error)
	assign func(*models.AnalyticsResult, any)
}

var metrics = []metric{
	{
		name: "pageViews",
		query: func(p QueryParams) string {
			return fmt.Sprintf("SELECT count() FROM events WHERE event = '$pageview' AND %s", p.rangeClause())
		},
		decode: decodeCount,
		assign: func(r *models.AnalyticsResult, v any) { n := v.(int64); r.PageViews = &n },
	},
	{
		name: "visitors",
		query: func(p QueryParams) string {
			return fmt.Sprintf("SELECT count(DISTINCT person_id) FROM events WHERE event = '$pageview' AND %s", p.rangeClause())
		},
		decode: decodeCount,
		assign: func(r *models.AnalyticsResult, v any) { n := v.(int64); r.Visitors = &n },
	},
	{
		name:   "topPages",
		query:  breakdownQuery("properties.$pathname"),
		decode: decodeBreakdown,
		assign: func(r *models.AnalyticsResult, v any) { r.TopPages = v.([]models.BreakdownItem) },
	},
	{
		name:   "devices",
		query:  breakdownQuery("properties.$device_type"),
		decode: decodeBreakdown,
		assign: func(r *models.AnalyticsResult, v any) { r.Devices = v.([]models.BreakdownItem) },
	},
	{
		name:   "geography",
		query:  breakdownQuery("properties.$geoip_country_name"),
		decode: decodeBreakdown,
		assign: func(r *models.AnalyticsResult, v any) { r.Geography = v.([]models.BreakdownItem) },
	},
	{
		name:   "browsers",
		query:  breakdownQuery("properties.$browser"),
		decode: decodeBreakdown,
		assign: func(r *models.AnalyticsResult, v any) { r.Browsers = v.([]models.BreakdownItem) },
	},
}

func breakdownQuery(property string) func(QueryParams) string {
	return func(p QueryParams) string {
		return fmt.Sprintf(
			"SELECT %s AS label, count() AS total FROM events WHERE event = '$pageview' AND %s GROUP BY label ORDER BY total DESC LIMIT %d",
			property, p.rangeClause(), breakdownLimit,
		)
	}
}

// Aggregator fans the dashboard metrics out to the analytics source.
type Aggregator struct {
	source Source
	logger *slog.Logger
}

func NewAggregator(source Source, logger *slog.Logger) *Aggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{source: source, logger: logger}
}

// Aggregate returns ErrNotConfigured without querying when the source has no
// credentials. Otherwise every metric is queried concurrently and a failed
// metric leaves its slot nil.
func (a *Aggregator) Aggregate(ctx context.Context, params QueryParams) (*models.AnalyticsResult, error) {
	if a.source == nil || !a.source.Configured() {
		return nil, ErrNotConfigured
	}

	ops := make([]func(context.Context) (any, error), len(metrics))
	for i, m := range metrics {
		ops[i] = func(ctx context.Context) (any, error) {
			rows, err := a.source.Query(ctx, m.query(params))
			if err != nil {
				return nil, err
			}
			return m.decode(rows)
		}
	}

	result := &models.AnalyticsResult{Configured: true}
	for i, outcome := range Settle(ctx, ops...) {
		if outcome.Err != nil {
			a.logger.WarnContext(ctx, "analytics query failed", "metric", metrics[i].name, "error", outcome.Err)
			continue
		}
		metrics[i].assign(result, outcome.Value)
	}

	return result, nil
}

func decodeCount(rows [][]any) (any, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("count query returned no rows")
	}
	return toInt64(rows[0][0])
}

func decodeBreakdown(rows [][]any) (any, error) {
	items := make([]models.BreakdownItem, 0, len(rows))
	for _, row := range rows {
		if len(row) < 2 {
			return nil, fmt.Errorf("breakdown row has %d columns", len(row))
		}
		count, err := toInt64(row[1])
		if err != nil {
			return nil, err
		}
		label := "Unknown"
		if s, ok := row[0].(string); ok && s != "" {
			label = s
		}
		items = append(items, models.BreakdownItem{Label: label, Count: count})
	}
	return items, nil
}

func toInt64(v any) (int64, error) {
	switch n := v.(type) {
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return i, nil
		}
		f, err := n.Float64()
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", n)
		}
		return int64(f), nil
	case float64:
		return int64(n), nil
	case int64:
		return n, nil
	case int:
		return int64(n), nil
	case string:
		i, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("not a number: %q", n)
		}
		return i, nil
	default:
		return 0, fmt.Errorf("unexpected value type %T", v)
	}
}
