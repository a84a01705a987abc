// Package gadsextractor extracts campaigns, ad groups, ads and keywords from a
// Google Ads account via the Google Ads API and produces a single JSON snapshot
// with normalized records and their performance metrics.
//
// The CLI lives in cmd/gads-extractor; this root package exposes the same
// pipeline as a Go API so that callers can embed extraction in their own
// tools without shelling out.
//
// # Import
//
// The module path contains a hyphen but Go package names cannot, so the
// package is named gadsextractor:
//
//	import "github.com/kataras/gads-extractor" // package gadsextractor
//
// # Quick start
//
//	result, err := gadsextractor.Run(ctx, gadsextractor.Options{
//	    ConfigPath: "google-ads.yaml",
//	    CustomerID: "123-456-7890",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	formatter.WriteFile("google-ads-data.json", result.Snapshot)
//
// # Configuration
//
// Credentials are read from a google-ads.yaml file holding developer_token,
// client_id, client_secret, refresh_token and optionally login_customer_id.
// GOOGLE_ADS_* environment variables override the file values. A missing
// refresh token can be obtained once with [GenerateToken].
//
// # Logging
//
// Pass a [Logger] implementation in [Options.Logger] to receive progress
// messages. A nil Logger silences all output.
//
//	type myLogger struct{}
//	func (l *myLogger) Infof(f string, a ...any)  { log.Printf("[INFO]  "+f, a...) }
//	func (l *myLogger) Warnf(f string, a ...any)  { log.Printf("[WARN]  "+f, a...) }
//	func (l *myLogger) Errorf(f string, a ...any) { log.Printf("[ERROR] "+f, a...) }
//
// # Partial failures
//
// Each kind is queried independently. When one query fails the kind is left
// empty in the snapshot, its error is recorded in [Result.Outcomes] and the
// remaining kinds are still extracted.
package gadsextractor
