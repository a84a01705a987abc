package extractor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kataras/gads-extractor/pkg/googleads"
	"github.com/kataras/gads-extractor/pkg/query"
)

func TestCollectPreservesArrivalOrder(t *testing.T) {
	svc := newFakeService().serve(query.Campaign,
		batch(campaignRow(3, "c"), campaignRow(1, "a")),
		batch(),
		batch(campaignRow(2, "b")),
	)

	got, err := Collect(context.Background(), svc, "1234567890", mustBuild(query.Campaign, 0), NormalizeCampaign)
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.Equal(t, int64(3), got[0].ID)
	assert.Equal(t, int64(1), got[1].ID)
	assert.Equal(t, int64(2), got[2].ID)

	assert.Equal(t, []string{"1234567890"}, svc.customers)
	require.Len(t, svc.streams, 1)
	assert.True(t, svc.streams[0].Closed())
}

func TestCollectEmptyStream(t *testing.T) {
	svc := newFakeService().serve(query.Ad)

	got, err := Collect(context.Background(), svc, "1", mustBuild(query.Ad, 0), NormalizeAd)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCollectOpenError(t *testing.T) {
	boom := &googleads.APIError{HTTPStatus: 403, Status: "PERMISSION_DENIED", Message: "denied"}
	svc := newFakeService().fail(query.AdGroup, boom)

	got, err := Collect(context.Background(), svc, "1", mustBuild(query.AdGroup, 0), NormalizeAdGroup)
	assert.ErrorIs(t, err, boom)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCollectMidStreamError(t *testing.T) {
	boom := errors.New("connection reset")
	svc := newFakeService()
	stream := googleads.NewSliceStream(batch(adGroupRow(1, 1))).FailAfter(boom)
	svc.responses[query.AdGroup] = func() (googleads.ResultStream, error) { return stream, nil }

	got, err := Collect(context.Background(), svc, "1", mustBuild(query.AdGroup, 0), NormalizeAdGroup)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, got, "records of a failed stream are discarded")
	assert.True(t, stream.Closed())
}

func TestCollectMalformedRow(t *testing.T) {
	bad := keywordRow(1, 1, 1, "x")
	bad.AdGroupCriterion.CriterionID = nil
	svc := newFakeService().serve(query.Keyword, batch(keywordRow(1, 1, 2, "ok"), bad))

	got, err := Collect(context.Background(), svc, "1", mustBuild(query.Keyword, 0), NormalizeKeyword)
	assert.ErrorIs(t, err, ErrMalformedRow)
	assert.Empty(t, got)
	assert.True(t, svc.streams[0].Closed())
}

func TestCollectKindWrapsPlatformErrors(t *testing.T) {
	boom := &googleads.APIError{HTTPStatus: 400, Status: "INVALID_ARGUMENT", Message: "bad query"}
	svc := newFakeService().fail(query.Ad, boom)
	logger := &recordingLogger{}
	cfg := &Config{CustomerID: "1", Logger: logger}

	got, outcome := collectKind(context.Background(), svc, cfg, query.Ad, NormalizeAd)
	assert.Empty(t, got)
	assert.True(t, outcome.Failed())
	assert.Equal(t, query.Ad, outcome.Kind)
	assert.Zero(t, outcome.Count)

	var qErr *QueryError
	require.ErrorAs(t, outcome.Err, &qErr)
	assert.Equal(t, query.Ad, qErr.Kind)
	assert.Contains(t, qErr.Query, "FROM ad_group_ad")
	assert.ErrorIs(t, outcome.Err, boom)
	assert.EqualError(t, outcome.Err, "ad query failed: API request failed with status 400 (INVALID_ARGUMENT): bad query")

	var apiErr *googleads.APIError
	require.ErrorAs(t, outcome.Err, &apiErr)
	assert.Equal(t, "INVALID_ARGUMENT", apiErr.Status)

	require.Len(t, logger.errors, 1)
	assert.Contains(t, logger.errors[0], "Error retrieving ads")
}

func TestCollectKindKeepsMalformedRowError(t *testing.T) {
	bad := adGroupRow(1, 1)
	bad.Campaign = nil
	svc := newFakeService().serve(query.AdGroup, batch(bad))
	cfg := &Config{CustomerID: "1"}

	_, outcome := collectKind(context.Background(), svc, cfg, query.AdGroup, NormalizeAdGroup)

	var qErr *QueryError
	assert.False(t, errors.As(outcome.Err, &qErr))
	assert.ErrorIs(t, outcome.Err, ErrMalformedRow)
	assert.EqualError(t, outcome.Err, "malformed ad_group row: missing campaign.id")
}

func TestCollectKindLogsSuccess(t *testing.T) {
	svc := newFakeService().serve(query.Keyword, batch(keywordRow(1, 1, 1, "a"), keywordRow(1, 1, 2, "b")))
	logger := &recordingLogger{}
	cfg := &Config{CustomerID: "1", Logger: logger}

	got, outcome := collectKind(context.Background(), svc, cfg, query.Keyword, NormalizeKeyword)
	assert.Len(t, got, 2)
	assert.False(t, outcome.Failed())
	assert.Equal(t, 2, outcome.Count)
	assert.Equal(t, []string{"Retrieving keywords...", "Retrieved 2 keywords"}, logger.infos)
	assert.Empty(t, logger.errors)
}
