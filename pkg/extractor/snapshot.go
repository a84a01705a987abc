package extractor

import (
	"context"
	"time"

	"github.com/kataras/gads-extractor/pkg/query"
)

// Logger receives progress messages. A nil Logger means silent operation.
type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Config is everything Assemble needs besides the API handle.
type Config struct {
	CustomerID CustomerID
	// CampaignID restricts every query to one campaign when positive.
	CampaignID int64
	Logger     Logger
	// Now stamps the snapshot; defaults to time.Now.
	Now func() time.Time
}

func (c *Config) logInfo(f string, a ...any) {
	if c.Logger != nil {
		c.Logger.Infof(f, a...)
	}
}

func (c *Config) logError(f string, a ...any) {
	if c.Logger != nil {
		c.Logger.Errorf(f, a...)
	}
}

// Assemble extracts campaigns, ad groups, ads and keywords one after the other and
// returns them as a Snapshot, together with one Outcome per kind in the same order.
//
// A kind whose query fails contributes an empty sequence; the other kinds are still
// extracted. The Snapshot is always fully populated.
func Assemble(ctx context.Context, svc Service, cfg Config) (*Snapshot, []Outcome) {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	campaigns, campaignsOutcome := collectKind(ctx, svc, &cfg, query.Campaign, NormalizeCampaign)
	adGroups, adGroupsOutcome := collectKind(ctx, svc, &cfg, query.AdGroup, NormalizeAdGroup)
	ads, adsOutcome := collectKind(ctx, svc, &cfg, query.Ad, NormalizeAd)
	keywords, keywordsOutcome := collectKind(ctx, svc, &cfg, query.Keyword, NormalizeKeyword)

	snap := &Snapshot{
		RetrievedAt: cfg.Now(),
		CustomerID:  cfg.CustomerID,
		Summary: Summary{
			TotalCampaigns: len(campaigns),
			TotalAdGroups:  len(adGroups),
			TotalAds:       len(ads),
			TotalKeywords:  len(keywords),
		},
		Campaigns: campaigns,
		AdGroups:  adGroups,
		Ads:       ads,
		Keywords:  keywords,
	}

	return snap, []Outcome{campaignsOutcome, adGroupsOutcome, adsOutcome, keywordsOutcome}
}
