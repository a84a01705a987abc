package extractor

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/kataras/gads-extractor/pkg/googleads"
	"github.com/kataras/gads-extractor/pkg/query"
)

const microsPerUnit = 1_000_000

// ErrMalformedRow is matched by every MalformedRowError.
var ErrMalformedRow = errors.New("malformed row")

// MalformedRowError reports a row that lacks one of the identity fields its query selects.
type MalformedRowError struct {
	Kind  query.Kind
	Field string
}

// Error names the kind and the missing field.
func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("malformed %s row: missing %s", e.Kind, e.Field)
}

// Unwrap returns ErrMalformedRow.
func (e *MalformedRowError) Unwrap() error {
	return ErrMalformedRow
}

func missing(kind query.Kind, field string) error {
	return &MalformedRowError{Kind: kind, Field: field}
}

// MicrosToUnits converts micro-units to currency units without rounding.
func MicrosToUnits(micros int64) float64 {
	return float64(micros) / microsPerUnit
}

// AverageFromMicros converts an average cost (CPC or CPM) expressed in micros.
// Zero stays zero.
func AverageFromMicros(micros float64) float64 {
	if micros == 0 {
		return 0
	}
	return micros / microsPerUnit
}

// CTRPercent turns a click-through fraction into a percentage rounded to two decimals.
func CTRPercent(ctr float64) float64 {
	if ctr == 0 {
		return 0
	}
	return round2(ctr * 100)
}

// round2 rounds to two decimals the way a correctly rounded decimal formatter does,
// so 2.675 (stored as 2.67499...) becomes 2.67.
func round2(v float64) float64 {
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	if err != nil {
		return v
	}
	return r
}

func stringsOf(src []string) []string {
	out := make([]string, 0, len(src))
	return append(out, src...)
}

func metricsOf(row googleads.Row) googleads.Metrics {
	if row.Metrics == nil {
		return googleads.Metrics{}
	}
	return *row.Metrics
}

func baseMetrics(m googleads.Metrics) Metrics {
	return Metrics{
		Impressions: int64(m.Impressions),
		Clicks:      int64(m.Clicks),
		Cost:        MicrosToUnits(int64(m.CostMicros)),
		Conversions: m.Conversions,
	}
}

// NormalizeCampaign converts a campaign query row.
func NormalizeCampaign(row googleads.Row) (Campaign, error) {
	c := row.Campaign
	if c == nil || c.ID == nil {
		return Campaign{}, missing(query.Campaign, "campaign.id")
	}

	m := metricsOf(row)
	return Campaign{
		ID:              int64(*c.ID),
		Name:            c.Name,
		Status:          campaignStatus.Name(c.Status),
		Type:            advertisingChannelType.Name(c.AdvertisingChannelType),
		SubType:         advertisingChannelSubType.Name(c.AdvertisingChannelSubType),
		StartDate:       c.StartDate,
		EndDate:         c.EndDate,
		BiddingStrategy: biddingStrategyType.Name(c.BiddingStrategyType),
		Budget:          c.CampaignBudget,
		Metrics: CampaignMetrics{
			Metrics:         baseMetrics(m),
			ConversionValue: m.ConversionsValue,
			AvgCPC:          AverageFromMicros(m.AverageCpc),
			AvgCPM:          AverageFromMicros(m.AverageCpm),
			CTR:             CTRPercent(m.Ctr),
		},
	}, nil
}

// NormalizeAdGroup converts an ad group query row.
func NormalizeAdGroup(row googleads.Row) (AdGroup, error) {
	g := row.AdGroup
	if g == nil || g.ID == nil {
		return AdGroup{}, missing(query.AdGroup, "ad_group.id")
	}
	if row.Campaign == nil || row.Campaign.ID == nil {
		return AdGroup{}, missing(query.AdGroup, "campaign.id")
	}

	m := metricsOf(row)
	return AdGroup{
		ID:           int64(*g.ID),
		Name:         g.Name,
		Status:       adGroupStatus.Name(g.Status),
		Type:         adGroupType.Name(g.Type),
		CampaignID:   int64(*row.Campaign.ID),
		CampaignName: row.Campaign.Name,
		Metrics: AdGroupMetrics{
			Metrics: baseMetrics(m),
			CTR:     CTRPercent(m.Ctr),
		},
	}, nil
}

// NormalizeAd converts an ad_group_ad query row.
func NormalizeAd(row googleads.Row) (Ad, error) {
	if row.AdGroupAd == nil || row.AdGroupAd.Ad == nil || row.AdGroupAd.Ad.ID == nil {
		return Ad{}, missing(query.Ad, "ad_group_ad.ad.id")
	}
	if row.AdGroup == nil || row.AdGroup.ID == nil {
		return Ad{}, missing(query.Ad, "ad_group.id")
	}
	if row.Campaign == nil || row.Campaign.ID == nil {
		return Ad{}, missing(query.Ad, "campaign.id")
	}

	ad := row.AdGroupAd.Ad
	return Ad{
		ID:           int64(*ad.ID),
		Name:         ad.Name,
		Type:         adType.Name(ad.Type),
		FinalURLs:    stringsOf(ad.FinalURLs),
		Status:       adGroupAdStatus.Name(row.AdGroupAd.Status),
		AdGroupID:    int64(*row.AdGroup.ID),
		AdGroupName:  row.AdGroup.Name,
		CampaignID:   int64(*row.Campaign.ID),
		CampaignName: row.Campaign.Name,
		Metrics:      baseMetrics(metricsOf(row)),
	}, nil
}

// NormalizeKeyword converts a keyword_view query row.
func NormalizeKeyword(row googleads.Row) (Keyword, error) {
	c := row.AdGroupCriterion
	if c == nil || c.CriterionID == nil {
		return Keyword{}, missing(query.Keyword, "ad_group_criterion.criterion_id")
	}
	if row.AdGroup == nil || row.AdGroup.ID == nil {
		return Keyword{}, missing(query.Keyword, "ad_group.id")
	}
	if row.Campaign == nil || row.Campaign.ID == nil {
		return Keyword{}, missing(query.Keyword, "campaign.id")
	}

	var text string
	var matchType *googleads.Enum
	if c.Keyword != nil {
		text = c.Keyword.Text
		matchType = c.Keyword.MatchType
	}

	m := metricsOf(row)
	return Keyword{
		ID:           int64(*c.CriterionID),
		Text:         text,
		MatchType:    keywordMatchType.Name(matchType),
		Status:       adGroupCriterionStatus.Name(c.Status),
		Negative:     c.Negative,
		FinalURLs:    stringsOf(c.FinalURLs),
		AdGroupID:    int64(*row.AdGroup.ID),
		AdGroupName:  row.AdGroup.Name,
		CampaignID:   int64(*row.Campaign.ID),
		CampaignName: row.Campaign.Name,
		Metrics: KeywordMetrics{
			Metrics: baseMetrics(m),
			CTR:     CTRPercent(m.Ctr),
			AvgCPC:  AverageFromMicros(m.AverageCpc),
		},
	}, nil
}
