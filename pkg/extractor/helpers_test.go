package extractor

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/kataras/gads-extractor/pkg/googleads"
	"github.com/kataras/gads-extractor/pkg/query"
)

// fakeService answers each query with the stream registered for its resource.
type fakeService struct {
	mu        sync.Mutex
	responses map[query.Kind]func() (googleads.ResultStream, error)
	queries   []string
	customers []string
	streams   []*googleads.SliceStream
}

func newFakeService() *fakeService {
	return &fakeService{responses: make(map[query.Kind]func() (googleads.ResultStream, error))}
}

func (f *fakeService) serve(kind query.Kind, batches ...googleads.Batch) *fakeService {
	f.responses[kind] = func() (googleads.ResultStream, error) {
		s := googleads.NewSliceStream(batches...)
		f.streams = append(f.streams, s)
		return s, nil
	}
	return f
}

func (f *fakeService) fail(kind query.Kind, err error) *fakeService {
	f.responses[kind] = func() (googleads.ResultStream, error) {
		return nil, err
	}
	return f
}

func (f *fakeService) SearchStream(_ context.Context, customerID, q string) (googleads.ResultStream, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.queries = append(f.queries, q)
	f.customers = append(f.customers, customerID)

	for _, kind := range query.Kinds() {
		resource, _ := query.Resource(kind)
		if !strings.Contains(q, "FROM "+resource+"\n") {
			continue
		}
		if respond, ok := f.responses[kind]; ok {
			return respond()
		}
		return googleads.NewSliceStream(), nil
	}
	return nil, fmt.Errorf("unexpected query %q", q)
}

func (f *fakeService) ListAccessibleCustomers(context.Context) ([]string, error) {
	return nil, nil
}

type recordingLogger struct {
	infos, warns, errors []string
}

func (l *recordingLogger) Infof(format string, args ...any) {
	l.infos = append(l.infos, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Warnf(format string, args ...any) {
	l.warns = append(l.warns, fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Errorf(format string, args ...any) {
	l.errors = append(l.errors, fmt.Sprintf(format, args...))
}

func campaignRow(id int64, name string) googleads.Row {
	return googleads.Row{
		Campaign: &googleads.Campaign{
			ID:                     googleads.NewInt64(id),
			Name:                   name,
			Status:                 googleads.EnumName("ENABLED"),
			AdvertisingChannelType: googleads.EnumName("SEARCH"),
		},
		Metrics: &googleads.Metrics{Impressions: 100, Clicks: 10, CostMicros: 1_000_000, Ctr: 0.1},
	}
}

func adGroupRow(campaignID, id int64) googleads.Row {
	return googleads.Row{
		Campaign: &googleads.Campaign{ID: googleads.NewInt64(campaignID), Name: fmt.Sprintf("Campaign %d", campaignID)},
		AdGroup: &googleads.AdGroup{
			ID:     googleads.NewInt64(id),
			Name:   fmt.Sprintf("Ad group %d", id),
			Status: googleads.EnumName("ENABLED"),
			Type:   googleads.EnumName("SEARCH_STANDARD"),
		},
	}
}

func adRow(campaignID, adGroupID, id int64) googleads.Row {
	return googleads.Row{
		Campaign: &googleads.Campaign{ID: googleads.NewInt64(campaignID), Name: "Campaign"},
		AdGroup:  &googleads.AdGroup{ID: googleads.NewInt64(adGroupID), Name: "Ad group"},
		AdGroupAd: &googleads.AdGroupAd{
			Status: googleads.EnumName("ENABLED"),
			Ad: &googleads.Ad{
				ID:        googleads.NewInt64(id),
				Type:      googleads.EnumName("RESPONSIVE_SEARCH_AD"),
				FinalURLs: []string{"https://example.com"},
			},
		},
	}
}

func keywordRow(campaignID, adGroupID, id int64, text string) googleads.Row {
	return googleads.Row{
		Campaign: &googleads.Campaign{ID: googleads.NewInt64(campaignID), Name: "Campaign"},
		AdGroup:  &googleads.AdGroup{ID: googleads.NewInt64(adGroupID), Name: "Ad group"},
		AdGroupCriterion: &googleads.AdGroupCriterion{
			CriterionID: googleads.NewInt64(id),
			Status:      googleads.EnumName("ENABLED"),
			Keyword:     &googleads.Keyword{Text: text, MatchType: googleads.EnumName("PHRASE")},
		},
	}
}

func mustBuild(kind query.Kind, campaignID int64) string {
	q, err := query.Build(kind, campaignID)
	if err != nil {
		panic(err)
	}
	return q
}

func batch(rows ...googleads.Row) googleads.Batch {
	return googleads.Batch{Results: rows}
}
