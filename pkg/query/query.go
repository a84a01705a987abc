// Package query builds the Google Ads Query Language (GAQL) statements used to extract
// campaigns, ad groups, ads and keywords.
//
// Every statement selects a fixed field set, excludes REMOVED entities in its WHERE
// clause and sorts by parent campaign, then parent ad group, then entity id.
package query

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Kind is one of the four extracted entity kinds.
type Kind int

const (
	// Campaign selects from the campaign resource.
	Campaign Kind = iota
	// AdGroup selects from ad_group.
	AdGroup
	// Ad selects from ad_group_ad.
	Ad
	// Keyword selects from keyword_view.
	Keyword
)

// ErrUnknownKind is returned for a Kind outside the four known kinds.
var ErrUnknownKind = errors.New("unknown entity kind")

// Kinds returns every kind in extraction order.
func Kinds() []Kind {
	return []Kind{Campaign, AdGroup, Ad, Keyword}
}

// String returns the snake_case name of k, as used in the output document.
func (k Kind) String() string {
	switch k {
	case Campaign:
		return "campaign"
	case AdGroup:
		return "ad_group"
	case Ad:
		return "ad"
	case Keyword:
		return "keyword"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Plural returns the human readable plural, e.g. "ad groups".
func (k Kind) Plural() string {
	switch k {
	case Campaign:
		return "campaigns"
	case AdGroup:
		return "ad groups"
	case Ad:
		return "ads"
	case Keyword:
		return "keywords"
	default:
		return k.String()
	}
}

type statement struct {
	resource string
	fields   []string
	status   string // field compared against 'REMOVED'
	orderBy  []string
}

var statements = map[Kind]statement{
	Campaign: {
		resource: "campaign",
		fields: []string{
			"campaign.id",
			"campaign.name",
			"campaign.status",
			"campaign.advertising_channel_type",
			"campaign.advertising_channel_sub_type",
			"campaign.start_date",
			"campaign.end_date",
			"campaign.bidding_strategy_type",
			"campaign.campaign_budget",
			"metrics.impressions",
			"metrics.clicks",
			"metrics.cost_micros",
			"metrics.conversions",
			"metrics.conversions_value",
			"metrics.average_cpc",
			"metrics.average_cpm",
			"metrics.ctr",
		},
		status:  "campaign.status",
		orderBy: []string{"campaign.id"},
	},
	AdGroup: {
		resource: "ad_group",
		fields: []string{
			"ad_group.id",
			"ad_group.name",
			"ad_group.status",
			"ad_group.type",
			"campaign.id",
			"campaign.name",
			"metrics.impressions",
			"metrics.clicks",
			"metrics.cost_micros",
			"metrics.conversions",
			"metrics.ctr",
		},
		status:  "ad_group.status",
		orderBy: []string{"campaign.id", "ad_group.id"},
	},
	Ad: {
		resource: "ad_group_ad",
		fields: []string{
			"ad_group_ad.ad.id",
			"ad_group_ad.ad.name",
			"ad_group_ad.ad.type",
			"ad_group_ad.ad.final_urls",
			"ad_group_ad.status",
			"ad_group.id",
			"ad_group.name",
			"campaign.id",
			"campaign.name",
			"metrics.impressions",
			"metrics.clicks",
			"metrics.cost_micros",
			"metrics.conversions",
		},
		status:  "ad_group_ad.status",
		orderBy: []string{"campaign.id", "ad_group.id", "ad_group_ad.ad.id"},
	},
	Keyword: {
		resource: "keyword_view",
		fields: []string{
			"ad_group_criterion.criterion_id",
			"ad_group_criterion.keyword.text",
			"ad_group_criterion.keyword.match_type",
			"ad_group_criterion.status",
			"ad_group_criterion.negative",
			"ad_group_criterion.final_urls",
			"ad_group.id",
			"ad_group.name",
			"campaign.id",
			"campaign.name",
			"metrics.impressions",
			"metrics.clicks",
			"metrics.cost_micros",
			"metrics.conversions",
			"metrics.ctr",
			"metrics.average_cpc",
		},
		status:  "ad_group_criterion.status",
		orderBy: []string{"campaign.id", "ad_group.id", "ad_group_criterion.criterion_id"},
	},
}

// Fields returns a copy of the fields selected for kind.
func Fields(kind Kind) ([]string, error) {
	st, ok := statements[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	return append([]string(nil), st.fields...), nil
}

// Resource returns the GAQL resource kind is selected FROM.
func Resource(kind Kind) (string, error) {
	st, ok := statements[kind]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}
	return st.resource, nil
}

// Build returns the GAQL statement for kind. A positive campaignID restricts the
// result to that campaign; zero or negative means no parent filter.
func Build(kind Kind, campaignID int64) (string, error) {
	st, ok := statements[kind]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownKind, kind)
	}

	var sb strings.Builder
	sb.WriteString("SELECT\n")
	for i, f := range st.fields {
		sb.WriteString("  ")
		sb.WriteString(f)
		if i < len(st.fields)-1 {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("FROM ")
	sb.WriteString(st.resource)
	sb.WriteString("\nWHERE ")
	sb.WriteString(st.status)
	sb.WriteString(" != 'REMOVED'")
	if campaignID > 0 {
		sb.WriteString("\n  AND campaign.id = ")
		sb.WriteString(strconv.FormatInt(campaignID, 10))
	}
	sb.WriteString("\nORDER BY ")
	sb.WriteString(strings.Join(st.orderBy, ", "))

	return sb.String(), nil
}
