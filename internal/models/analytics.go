package models

// AnalyticsResult is the dashboard payload. Every slot is independently nil
// when its query failed.
type AnalyticsResult struct {
	Configured bool            `json:"configured"`
	PageViews  *int64          `json:"pageViews"`
	Visitors   *int64          `json:"visitors"`
	TopPages   []BreakdownItem `json:"topPages"`
	Devices    []BreakdownItem `json:"devices"`
	Geography  []BreakdownItem `json:"geography"`
	Browsers   []BreakdownItem `json:"browsers"`
}

type BreakdownItem struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}
