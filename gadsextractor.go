package gadsextractor

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"

	"github.com/kataras/gads-extractor/pkg/config"
	"github.com/kataras/gads-extractor/pkg/extractor"
	"github.com/kataras/gads-extractor/pkg/googleads"
	"github.com/kataras/gads-extractor/pkg/oauth"
	"github.com/kataras/gads-extractor/pkg/query"
)

// DefaultConfigPath is the credentials file read when Options.ConfigPath is empty.
const DefaultConfigPath = "google-ads.yaml"

// ErrNoCustomerID is returned when no account to extract could be determined.
var ErrNoCustomerID = errors.New("could not determine customer id")

// Options configures the extraction.
type Options struct {
	ConfigPath string // google-ads.yaml by default
	CustomerID string // hyphens allowed; empty = login_customer_id or the only accessible account
	CampaignID int64  // restrict every query to this campaign when positive
	Logger     Logger // nil = no logging

	// ClientOptions are applied after the ones derived from the configuration.
	ClientOptions []googleads.Option
}

// Logger receives progress messages. A nil Logger means silent operation.
type Logger = extractor.Logger

// Result contains the extraction output.
type Result struct {
	Snapshot *extractor.Snapshot
	Outcomes []extractor.Outcome // one per kind, in snapshot order
}

// Failed returns the outcomes of the kinds that could not be extracted.
func (r *Result) Failed() []extractor.Outcome {
	var failed []extractor.Outcome
	for _, o := range r.Outcomes {
		if o.Failed() {
			failed = append(failed, o)
		}
	}
	return failed
}

func (o *Options) logInfo(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Infof(f, a...)
	}
}

func (o *Options) logWarn(f string, a ...any) {
	if o.Logger != nil {
		o.Logger.Warnf(f, a...)
	}
}

// Run executes the Google Ads extraction pipeline and returns the result.
//
// Configuration and authentication problems abort the run before any query is made.
// A kind whose query fails is reported in Result.Outcomes and left empty in the snapshot.
func Run(ctx context.Context, opts Options) (*Result, error) {
	opts.logInfo("Loading configuration...")
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	client, err := newClient(ctx, cfg, opts.ClientOptions)
	if err != nil {
		return nil, err
	}

	opts.logInfo("Authenticating with Google Ads API...")
	if err := client.Authenticate(); err != nil {
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	customerID, err := ResolveCustomerID(ctx, opts.CustomerID, cfg, client)
	if err != nil {
		return nil, err
	}
	opts.logInfo("Using customer ID: %s", customerID.Display())
	if opts.CampaignID > 0 {
		opts.logInfo("Restricting extraction to campaign %d", opts.CampaignID)
	}

	snap, outcomes := extractor.Assemble(ctx, client, extractor.Config{
		CustomerID: customerID,
		CampaignID: opts.CampaignID,
		Logger:     opts.Logger,
	})
	// A cancelled run fails every kind; that is not a partial extraction.
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("extraction interrupted: %w", err)
	}

	result := &Result{Snapshot: snap, Outcomes: outcomes}
	if failed := result.Failed(); len(failed) > 0 {
		opts.logWarn("%d of %d kinds could not be extracted", len(failed), len(outcomes))
	}

	return result, nil
}

// ResolveCustomerID picks the account to extract: the explicit id if given, then the
// configured login_customer_id, then the only account the credentials can access.
func ResolveCustomerID(ctx context.Context, explicit string, cfg *config.Config, svc extractor.Service) (extractor.CustomerID, error) {
	if explicit != "" {
		return extractor.ParseCustomerID(explicit)
	}
	if cfg.HasLoginCustomerID() {
		return extractor.ParseCustomerID(cfg.LoginCustomerID)
	}

	ids, err := svc.ListAccessibleCustomers(ctx)
	if err != nil {
		return "", fmt.Errorf("%w: list accessible customers: %w", ErrNoCustomerID, err)
	}
	if len(ids) != 1 {
		return "", fmt.Errorf("%w: %d accessible accounts, select one explicitly", ErrNoCustomerID, len(ids))
	}
	return extractor.ParseCustomerID(ids[0])
}

// ListAccounts returns every account the configured credentials can access.
func ListAccounts(ctx context.Context, opts Options) ([]extractor.CustomerID, error) {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	client, err := newClient(ctx, cfg, opts.ClientOptions)
	if err != nil {
		return nil, err
	}

	opts.logInfo("Retrieving accessible customers...")
	ids, err := client.ListAccessibleCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list accessible customers: %w", err)
	}

	accounts := make([]extractor.CustomerID, 0, len(ids))
	for _, id := range ids {
		cid, err := extractor.ParseCustomerID(id)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, cid)
	}
	return accounts, nil
}

// TokenOptions configures GenerateToken.
type TokenOptions struct {
	ConfigPath string
	Port       int // callback port, 8080 by default
	Logger     Logger
	OpenURL    func(url string) error
}

// GenerateToken runs the interactive OAuth2 flow with the client credentials of the
// configuration file and returns the token holding the new refresh token.
func GenerateToken(ctx context.Context, opts TokenOptions) (*oauth2.Token, error) {
	cfg, err := loadConfig(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.ValidateClient(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	flow := &oauth.Flow{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Port:         opts.Port,
		OpenURL:      opts.OpenURL,
	}
	if opts.Logger != nil {
		flow.Logger = opts.Logger
		opts.Logger.Infof("Using client ID: %s", cfg.ClientID)
	}

	return flow.Run(ctx)
}

// Query is the statement one kind is extracted with.
type Query struct {
	Kind     query.Kind
	Resource string // GAQL resource selected FROM
	Text     string
}

// Queries returns the statement of every kind, in extraction order.
func Queries(campaignID int64) ([]Query, error) {
	kinds := query.Kinds()
	queries := make([]Query, 0, len(kinds))
	for _, kind := range kinds {
		resource, err := query.Resource(kind)
		if err != nil {
			return nil, err
		}
		text, err := query.Build(kind, campaignID)
		if err != nil {
			return nil, err
		}
		queries = append(queries, Query{Kind: kind, Resource: resource, Text: text})
	}
	return queries, nil
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		path = DefaultConfigPath
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func newClient(ctx context.Context, cfg *config.Config, extra []googleads.Option) (*googleads.Client, error) {
	creds := googleads.Credentials{
		DeveloperToken: cfg.DeveloperToken,
		ClientID:       cfg.ClientID,
		ClientSecret:   cfg.ClientSecret,
		RefreshToken:   cfg.RefreshToken,
	}
	if cfg.HasLoginCustomerID() {
		login, err := extractor.ParseCustomerID(cfg.LoginCustomerID)
		if err != nil {
			return nil, fmt.Errorf("invalid login_customer_id: %w", err)
		}
		creds.LoginCustomerID = login.String()
	}

	opts := []googleads.Option{
		googleads.WithAPIVersion(cfg.APIVersion),
		googleads.WithBaseURL(cfg.Endpoint),
	}
	opts = append(opts, extra...)

	return googleads.NewClient(ctx, creds, opts...), nil
}
