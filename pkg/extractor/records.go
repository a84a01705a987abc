package extractor

import "time"

// Metrics is the block of performance counters shared by every record.
// Cost is in currency units (converted from micros).
type Metrics struct {
	Impressions int64   `json:"impressions"`
	Clicks      int64   `json:"clicks"`
	Cost        float64 `json:"cost"`
	Conversions float64 `json:"conversions"`
}

// CampaignMetrics adds value, average cost and CTR to Metrics.
// CTR is a percentage rounded to two decimals.
type CampaignMetrics struct {
	Metrics
	ConversionValue float64 `json:"conversion_value"`
	AvgCPC          float64 `json:"avg_cpc"`
	AvgCPM          float64 `json:"avg_cpm"`
	CTR             float64 `json:"ctr"`
}

// AdGroupMetrics adds CTR to Metrics.
type AdGroupMetrics struct {
	Metrics
	CTR float64 `json:"ctr"`
}

// KeywordMetrics adds CTR and average cost per click to Metrics.
type KeywordMetrics struct {
	Metrics
	CTR    float64 `json:"ctr"`
	AvgCPC float64 `json:"avg_cpc"`
}

// Campaign is a normalized campaign.
type Campaign struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	Status          string          `json:"status"`
	Type            string          `json:"type"`
	SubType         string          `json:"sub_type"`
	StartDate       string          `json:"start_date"`
	EndDate         string          `json:"end_date"`
	BiddingStrategy string          `json:"bidding_strategy"`
	Budget          string          `json:"budget"` // campaign budget resource name
	Metrics         CampaignMetrics `json:"metrics"`
}

// AdGroup is a normalized ad group.
type AdGroup struct {
	ID           int64          `json:"id"`
	Name         string         `json:"name"`
	Status       string         `json:"status"`
	Type         string         `json:"type"`
	CampaignID   int64          `json:"campaign_id"`
	CampaignName string         `json:"campaign_name"`
	Metrics      AdGroupMetrics `json:"metrics"`
}

// Ad is a normalized ad.
type Ad struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	FinalURLs    []string `json:"final_urls"`
	Status       string   `json:"status"`
	AdGroupID    int64    `json:"ad_group_id"`
	AdGroupName  string   `json:"ad_group_name"`
	CampaignID   int64    `json:"campaign_id"`
	CampaignName string   `json:"campaign_name"`
	Metrics      Metrics  `json:"metrics"`
}

// Keyword is a normalized keyword criterion.
type Keyword struct {
	ID           int64          `json:"id"`
	Text         string         `json:"text"`
	MatchType    string         `json:"match_type"`
	Status       string         `json:"status"`
	Negative     bool           `json:"negative"`
	FinalURLs    []string       `json:"final_urls"`
	AdGroupID    int64          `json:"ad_group_id"`
	AdGroupName  string         `json:"ad_group_name"`
	CampaignID   int64          `json:"campaign_id"`
	CampaignName string         `json:"campaign_name"`
	Metrics      KeywordMetrics `json:"metrics"`
}

// Summary counts the records of each kind in a Snapshot.
type Summary struct {
	TotalCampaigns int `json:"total_campaigns"`
	TotalAdGroups  int `json:"total_ad_groups"`
	TotalAds       int `json:"total_ads"`
	TotalKeywords  int `json:"total_keywords"`
}

// Snapshot is the complete extraction of one customer account.
// The record slices are never nil and keep the order the API returned them in.
type Snapshot struct {
	RetrievedAt time.Time  `json:"retrieved_at"`
	CustomerID  CustomerID `json:"customer_id"`
	Summary     Summary    `json:"summary"`
	Campaigns   []Campaign `json:"campaigns"`
	AdGroups    []AdGroup  `json:"ad_groups"`
	Ads         []Ad       `json:"ads"`
	Keywords    []Keyword  `json:"keywords"`
}
