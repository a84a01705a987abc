package extractor

import "github.com/kataras/gads-extractor/pkg/googleads"

const (
	enumUnspecified = "UNSPECIFIED"
	enumUnknown     = "UNKNOWN"
)

// enumTable maps the wire values of one enumerated field to their symbolic names.
type enumTable struct {
	byCode map[int32]string
	byName map[string]struct{}
}

func newEnumTable(values map[int32]string) *enumTable {
	t := &enumTable{
		byCode: values,
		byName: make(map[string]struct{}, len(values)),
	}
	for _, name := range values {
		t.byName[name] = struct{}{}
	}
	return t
}

// Name returns the symbolic name of e. An absent value is UNSPECIFIED and
// a value outside the table is UNKNOWN.
func (t *enumTable) Name(e *googleads.Enum) string {
	if e == nil {
		return enumUnspecified
	}
	if e.IsCode {
		if name, ok := t.byCode[e.Code]; ok {
			return name
		}
		return enumUnknown
	}
	if e.Name == "" {
		return enumUnspecified
	}
	if _, ok := t.byName[e.Name]; ok {
		return e.Name
	}
	return enumUnknown
}

func entityStatusValues() map[int32]string {
	return map[int32]string{
		0: "UNSPECIFIED",
		1: "UNKNOWN",
		2: "ENABLED",
		3: "PAUSED",
		4: "REMOVED",
	}
}

var (
	campaignStatus         = newEnumTable(entityStatusValues())
	adGroupStatus          = newEnumTable(entityStatusValues())
	adGroupAdStatus        = newEnumTable(entityStatusValues())
	adGroupCriterionStatus = newEnumTable(entityStatusValues())

	advertisingChannelType = newEnumTable(map[int32]string{
		0:  "UNSPECIFIED",
		1:  "UNKNOWN",
		2:  "SEARCH",
		3:  "DISPLAY",
		4:  "SHOPPING",
		5:  "HOTEL",
		6:  "VIDEO",
		7:  "MULTI_CHANNEL",
		8:  "LOCAL",
		9:  "SMART",
		10: "PERFORMANCE_MAX",
		11: "LOCAL_SERVICES",
		13: "TRAVEL",
		14: "DEMAND_GEN",
	})

	advertisingChannelSubType = newEnumTable(map[int32]string{
		0:  "UNSPECIFIED",
		1:  "UNKNOWN",
		2:  "SEARCH_MOBILE_APP",
		3:  "DISPLAY_MOBILE_APP",
		4:  "SEARCH_EXPRESS",
		5:  "DISPLAY_EXPRESS",
		6:  "SHOPPING_SMART_ADS",
		7:  "DISPLAY_GMAIL_AD",
		8:  "DISPLAY_SMART_CAMPAIGN",
		9:  "VIDEO_OUTSTREAM",
		10: "VIDEO_ACTION",
		11: "VIDEO_NON_SKIPPABLE",
		12: "APP_CAMPAIGN",
		13: "APP_CAMPAIGN_FOR_ENGAGEMENT",
		14: "LOCAL_CAMPAIGN",
		15: "SHOPPING_COMPARISON_LISTING_ADS",
		16: "SMART_CAMPAIGN",
		17: "VIDEO_SEQUENCE",
		18: "APP_CAMPAIGN_FOR_PRE_REGISTRATION",
		19: "VIDEO_REACH_TARGET_FREQUENCY",
		20: "TRAVEL_ACTIVITIES",
	})

	biddingStrategyType = newEnumTable(map[int32]string{
		0:  "UNSPECIFIED",
		1:  "UNKNOWN",
		2:  "ENHANCED_CPC",
		3:  "MANUAL_CPC",
		4:  "MANUAL_CPM",
		5:  "PAGE_ONE_PROMOTED",
		6:  "TARGET_CPA",
		7:  "TARGET_OUTRANK_SHARE",
		8:  "TARGET_ROAS",
		9:  "TARGET_SPEND",
		10: "MAXIMIZE_CONVERSIONS",
		11: "MAXIMIZE_CONVERSION_VALUE",
		12: "PERCENT_CPC",
		13: "MANUAL_CPV",
		14: "TARGET_CPM",
		15: "TARGET_IMPRESSION_SHARE",
		16: "COMMISSION",
		17: "INVALID",
		18: "MANUAL_CPA",
		19: "FIXED_CPM",
		20: "TARGET_CPV",
	})

	adGroupType = newEnumTable(map[int32]string{
		0:  "UNSPECIFIED",
		1:  "UNKNOWN",
		2:  "SEARCH_STANDARD",
		3:  "DISPLAY_STANDARD",
		4:  "SHOPPING_PRODUCT_ADS",
		6:  "HOTEL_ADS",
		7:  "SHOPPING_SMART_ADS",
		8:  "VIDEO_BUMPER",
		9:  "VIDEO_TRUE_VIEW_IN_STREAM",
		10: "VIDEO_TRUE_VIEW_IN_DISPLAY",
		11: "VIDEO_NON_SKIPPABLE_IN_STREAM",
		12: "VIDEO_OUTSTREAM",
		13: "SEARCH_DYNAMIC_ADS",
		14: "SHOPPING_COMPARISON_LISTING_ADS",
		15: "PROMOTED_HOTEL_ADS",
		16: "VIDEO_RESPONSIVE",
		17: "VIDEO_EFFICIENT_REACH",
		18: "SMART_CAMPAIGN_ADS",
		19: "TRAVEL_ADS",
	})

	adType = newEnumTable(map[int32]string{
		0:  "UNSPECIFIED",
		1:  "UNKNOWN",
		2:  "TEXT_AD",
		3:  "EXPANDED_TEXT_AD",
		7:  "EXPANDED_DYNAMIC_SEARCH_AD",
		8:  "HOTEL_AD",
		9:  "SHOPPING_SMART_AD",
		10: "SHOPPING_PRODUCT_AD",
		12: "VIDEO_AD",
		14: "IMAGE_AD",
		15: "RESPONSIVE_SEARCH_AD",
		16: "LEGACY_RESPONSIVE_DISPLAY_AD",
		17: "APP_AD",
		18: "LEGACY_APP_INSTALL_AD",
		19: "RESPONSIVE_DISPLAY_AD",
		20: "LOCAL_AD",
		21: "HTML5_UPLOAD_AD",
		22: "DYNAMIC_HTML5_AD",
		23: "APP_ENGAGEMENT_AD",
		24: "SHOPPING_COMPARISON_LISTING_AD",
		25: "VIDEO_BUMPER_AD",
		26: "VIDEO_NON_SKIPPABLE_IN_STREAM_AD",
		28: "VIDEO_TRUEVIEW_IN_STREAM_AD",
		29: "VIDEO_RESPONSIVE_AD",
		30: "SMART_CAMPAIGN_AD",
		31: "CALL_AD",
		32: "APP_PRE_REGISTRATION_AD",
		33: "IN_FEED_VIDEO_AD",
		34: "DEMAND_GEN_MULTI_ASSET_AD",
		35: "DEMAND_GEN_CAROUSEL_AD",
		36: "TRAVEL_AD",
		37: "DEMAND_GEN_VIDEO_RESPONSIVE_AD",
		38: "DEMAND_GEN_PRODUCT_AD",
	})

	keywordMatchType = newEnumTable(map[int32]string{
		0: "UNSPECIFIED",
		1: "UNKNOWN",
		2: "EXACT",
		3: "PHRASE",
		4: "BROAD",
	})
)
