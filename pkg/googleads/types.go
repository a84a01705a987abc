package googleads

import (
	"bytes"
	"fmt"
	"strconv"

	jsoniter "github.com/json-iterator/go"
)

// Batch is one element of a googleAds:searchStream response array.
// A stream that fails after it started carries an Error instead of results.
type Batch struct {
	Results   []Row   `json:"results"`
	FieldMask string  `json:"fieldMask,omitempty"`
	RequestID string  `json:"requestId,omitempty"`
	Error     *Status `json:"error,omitempty"`
}

// Row is a single GAQL result row. Only the resources selected by the query are present,
// the rest stay nil.
type Row struct {
	Campaign         *Campaign         `json:"campaign,omitempty"`
	AdGroup          *AdGroup          `json:"adGroup,omitempty"`
	AdGroupAd        *AdGroupAd        `json:"adGroupAd,omitempty"`
	AdGroupCriterion *AdGroupCriterion `json:"adGroupCriterion,omitempty"`
	Metrics          *Metrics          `json:"metrics,omitempty"`
}

// Campaign holds the campaign.* fields of a row.
type Campaign struct {
	ResourceName              string `json:"resourceName,omitempty"`
	ID                        *Int64 `json:"id,omitempty"`
	Name                      string `json:"name,omitempty"`
	Status                    *Enum  `json:"status,omitempty"`
	AdvertisingChannelType    *Enum  `json:"advertisingChannelType,omitempty"`
	AdvertisingChannelSubType *Enum  `json:"advertisingChannelSubType,omitempty"`
	StartDate                 string `json:"startDate,omitempty"`
	EndDate                   string `json:"endDate,omitempty"`
	BiddingStrategyType       *Enum  `json:"biddingStrategyType,omitempty"`
	CampaignBudget            string `json:"campaignBudget,omitempty"` // resource name
}

// AdGroup holds the ad_group.* fields of a row.
type AdGroup struct {
	ResourceName string `json:"resourceName,omitempty"`
	ID           *Int64 `json:"id,omitempty"`
	Name         string `json:"name,omitempty"`
	Status       *Enum  `json:"status,omitempty"`
	Type         *Enum  `json:"type,omitempty"`
	Campaign     string `json:"campaign,omitempty"` // resource name
}

// AdGroupAd holds the ad_group_ad.* fields of a row.
type AdGroupAd struct {
	ResourceName string `json:"resourceName,omitempty"`
	Status       *Enum  `json:"status,omitempty"`
	Ad           *Ad    `json:"ad,omitempty"`
}

// Ad is the ad nested inside an AdGroupAd.
type Ad struct {
	ResourceName string   `json:"resourceName,omitempty"`
	ID           *Int64   `json:"id,omitempty"`
	Name         string   `json:"name,omitempty"`
	Type         *Enum    `json:"type,omitempty"`
	FinalURLs    []string `json:"finalUrls,omitempty"`
}

// AdGroupCriterion holds the ad_group_criterion.* fields of a keyword_view row.
type AdGroupCriterion struct {
	ResourceName string   `json:"resourceName,omitempty"`
	CriterionID  *Int64   `json:"criterionId,omitempty"`
	Status       *Enum    `json:"status,omitempty"`
	Negative     bool     `json:"negative,omitempty"`
	FinalURLs    []string `json:"finalUrls,omitempty"`
	Keyword      *Keyword `json:"keyword,omitempty"`
}

// Keyword is the keyword info of an AdGroupCriterion.
type Keyword struct {
	Text      string `json:"text,omitempty"`
	MatchType *Enum  `json:"matchType,omitempty"`
}

// Metrics holds the metrics.* fields of a row.
// Integer metrics are sent as JSON strings, doubles as numbers; unset metrics are omitted by the API.
type Metrics struct {
	Impressions      Int64   `json:"impressions,omitempty"`
	Clicks           Int64   `json:"clicks,omitempty"`
	CostMicros       Int64   `json:"costMicros,omitempty"`
	Conversions      float64 `json:"conversions,omitempty"`
	ConversionsValue float64 `json:"conversionsValue,omitempty"`
	AverageCpc       float64 `json:"averageCpc,omitempty"`
	AverageCpm       float64 `json:"averageCpm,omitempty"`
	Ctr              float64 `json:"ctr,omitempty"`
}

// Int64 is an int64 that decodes from both a JSON number and a JSON string,
// which is how the REST transport encodes 64-bit integers.
type Int64 int64

// NewInt64 returns a pointer to v, handy for building rows.
func NewInt64(v int64) *Int64 {
	i := Int64(v)
	return &i
}

// UnmarshalJSON implements json.Unmarshaler.
func (i *Int64) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	s := string(bytes.Trim(data, `"`))
	if s == "" {
		*i = 0
		return nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid int64 value %s: %w", data, err)
	}
	*i = Int64(v)
	return nil
}

// MarshalJSON encodes the value as a JSON string, mirroring the API.
func (i Int64) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(strconv.FormatInt(int64(i), 10))), nil
}

// Enum is an enumerated wire value. The REST transport sends the symbolic name,
// the gRPC JSON mapping may send the numeric code instead.
type Enum struct {
	Name   string
	Code   int32
	IsCode bool
}

// EnumName returns an Enum carrying a symbolic name.
func EnumName(name string) *Enum {
	return &Enum{Name: name}
}

// EnumCode returns an Enum carrying a numeric code.
func EnumCode(code int32) *Enum {
	return &Enum{Code: code, IsCode: true}
}

// UnmarshalJSON implements json.Unmarshaler.
func (e *Enum) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}
	if data[0] == '"' {
		name, err := strconv.Unquote(string(data))
		if err != nil {
			return fmt.Errorf("invalid enum value %s: %w", data, err)
		}
		*e = Enum{Name: name}
		return nil
	}
	code, err := strconv.ParseInt(string(data), 10, 32)
	if err != nil {
		return fmt.Errorf("invalid enum value %s: %w", data, err)
	}
	*e = Enum{Code: int32(code), IsCode: true}
	return nil
}

// MarshalJSON encodes the name, or the code when only the code is known.
func (e Enum) MarshalJSON() ([]byte, error) {
	if e.IsCode {
		return []byte(strconv.FormatInt(int64(e.Code), 10)), nil
	}
	return []byte(strconv.Quote(e.Name)), nil
}

// Status is the google.rpc.Status payload of an API error.
type Status struct {
	Code    int                   `json:"code"`
	Message string                `json:"message"`
	Status  string                `json:"status"`
	Details []jsoniter.RawMessage `json:"details,omitempty"`
}

// APIError is returned for any request the Google Ads API rejects or faults.
type APIError struct {
	HTTPStatus int
	Code       int    // google.rpc.Code
	Status     string // e.g. INVALID_ARGUMENT
	Message    string
	Body       string // raw body when it could not be parsed
}

// Error prefers the decoded status and message over the raw body.
func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("API request failed with status %d: %s", e.HTTPStatus, e.Body)
	}
	if e.Status != "" {
		return fmt.Sprintf("API request failed with status %d (%s): %s", e.HTTPStatus, e.Status, e.Message)
	}
	return fmt.Sprintf("API request failed with status %d: %s", e.HTTPStatus, e.Message)
}

// Temporary reports whether a retry of the same request could succeed.
func (e *APIError) Temporary() bool {
	return e.HTTPStatus == 429 || e.HTTPStatus >= 500
}

type errorEnvelope struct {
	Error *Status `json:"error"`
}

// parseAPIError builds an APIError out of an error response body. The body is either
// a single error envelope or, for searchStream, an array of them.
func parseAPIError(httpStatus int, body []byte) *APIError {
	apiErr := &APIError{HTTPStatus: httpStatus, Body: string(body)}

	var envelope errorEnvelope
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var envelopes []errorEnvelope
		if err := json.Unmarshal(trimmed, &envelopes); err == nil && len(envelopes) > 0 {
			envelope = envelopes[0]
		}
	} else {
		_ = json.Unmarshal(trimmed, &envelope)
	}

	if envelope.Error != nil {
		apiErr.Code = envelope.Error.Code
		apiErr.Status = envelope.Error.Status
		apiErr.Message = envelope.Error.Message
	}
	return apiErr
}

func (s *Status) apiError(httpStatus int) *APIError {
	return &APIError{
		HTTPStatus: httpStatus,
		Code:       s.Code,
		Status:     s.Status,
		Message:    s.Message,
	}
}

// AccessibleCustomersResponse is returned by customers:listAccessibleCustomers.
type AccessibleCustomersResponse struct {
	ResourceNames []string `json:"resourceNames"`
}

// searchStreamRequest is the body of googleAds:searchStream.
type searchStreamRequest struct {
	Query string `json:"query"`
}
