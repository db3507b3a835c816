package models

// TargetingCriteria selects Active campaigns by candidate ids per dimension
// plus optional free-form filter pairs that must all be present on the
// campaign.
type TargetingCriteria struct {
	StateIDs      []uint            `json:"state_ids"`
	DpdIDs        []uint            `json:"dpd_ids"`
	ChannelIDs    []uint            `json:"channel_ids"`
	TemplateIDs   []uint            `json:"template_ids"`
	LanguageIDs   []uint            `json:"language_ids"`
	CustomFilters map[string]string `json:"custom_filters"`
}

// TargetingMetrics are estimated coverage ratios, not measured facts. Each
// coverage value is selected-dimension-count over total-dimension-count as a
// percentage; estimated reach is their mean.
type TargetingMetrics struct {
	StateCoverage   float64 `json:"state_coverage"`
	DpdCoverage     float64 `json:"dpd_coverage"`
	ChannelCoverage float64 `json:"channel_coverage"`
	EstimatedReach  int     `json:"estimated_reach"`
}

// TargetingResult is one Active campaign matching the criteria, with its
// estimated metrics
type TargetingResult struct {
	CampaignID   uint              `json:"campaign_id"`
	CampaignName string            `json:"campaign_name"`
	TargetCount  int               `json:"target_count"`
	Criteria     TargetingCriteria `json:"criteria"`
	Metrics      TargetingMetrics  `json:"metrics"`
}

// DimensionCount is one reference-data row with the number of campaigns
// currently using it
type DimensionCount struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// TargetingSuggestions groups per-dimension campaign counts for criteria
// building
type TargetingSuggestions struct {
	States     []DimensionCount `json:"states"`
	DpdBuckets []DimensionCount `json:"dpd_buckets"`
	Channels   []DimensionCount `json:"channels"`
	Templates  []DimensionCount `json:"templates"`
	Languages  []DimensionCount `json:"languages"`
}

// DimensionPerformance is placeholder per-dimension analytics for one
// campaign
type DimensionPerformance struct {
	ID      uint                   `json:"id"`
	Name    string                 `json:"name"`
	Metrics map[string]interface{} `json:"metrics"`
}

// CampaignPerformance carries placeholder performance analytics. Real numbers
// come from the out-of-scope analytics system.
type CampaignPerformance struct {
	StatePerformance   []DimensionPerformance `json:"state_performance"`
	DpdPerformance     []DimensionPerformance `json:"dpd_performance"`
	ChannelPerformance []DimensionPerformance `json:"channel_performance"`
	Recommendations    []string               `json:"recommendations"`
}
