package extractor

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/kataras/gads-extractor/pkg/googleads"
	"github.com/kataras/gads-extractor/pkg/query"
)

// Service is the authenticated API handle the extractor queries.
// *googleads.Client implements it.
type Service interface {
	SearchStream(ctx context.Context, customerID, query string) (googleads.ResultStream, error)
	ListAccessibleCustomers(ctx context.Context) ([]string, error)
}

// QueryError wraps a failure the platform reported for one kind's query.
type QueryError struct {
	Kind  query.Kind
	Query string
	Err   error
}

// Error names the kind and the cause.
func (e *QueryError) Error() string {
	return fmt.Sprintf("%s query failed: %v", e.Kind, e.Err)
}

// Unwrap returns the underlying platform or transport error.
func (e *QueryError) Unwrap() error {
	return e.Err
}

// Outcome records how the extraction of one kind went.
type Outcome struct {
	Kind  query.Kind
	Count int
	Err   error // nil on success
}

// Failed reports whether the kind yielded an empty sequence because of an error.
func (o Outcome) Failed() bool {
	return o.Err != nil
}

// Collect runs q and normalizes every row of every batch, in arrival order.
// The stream is drained and closed before Collect returns. On error the returned
// slice is empty; the error is the stream's or the normalizer's, unwrapped.
func Collect[T any](ctx context.Context, svc Service, customerID CustomerID, q string, normalize func(googleads.Row) (T, error)) ([]T, error) {
	stream, err := svc.SearchStream(ctx, customerID.String(), q)
	if err != nil {
		return []T{}, err
	}
	defer stream.Close()

	records := []T{}
	for {
		batch, err := stream.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return []T{}, err
		}

		for _, row := range batch.Results {
			rec, err := normalize(row)
			if err != nil {
				return []T{}, err
			}
			records = append(records, rec)
		}
	}

	return records, nil
}

// collectKind extracts one kind and never fails: errors are logged, recorded
// in the Outcome and turned into an empty sequence.
func collectKind[T any](ctx context.Context, svc Service, cfg *Config, kind query.Kind, normalize func(googleads.Row) (T, error)) ([]T, Outcome) {
	q, err := query.Build(kind, cfg.CampaignID)
	if err != nil {
		cfg.logError("Error building %s query: %v", kind, err)
		return []T{}, Outcome{Kind: kind, Err: err}
	}

	cfg.logInfo("Retrieving %s...", kind.Plural())
	records, err := Collect(ctx, svc, cfg.CustomerID, q, normalize)
	if err != nil {
		if !errors.Is(err, ErrMalformedRow) {
			err = &QueryError{Kind: kind, Query: q, Err: err}
		}
		cfg.logError("Error retrieving %s: %v", kind.Plural(), err)
		return []T{}, Outcome{Kind: kind, Err: err}
	}

	cfg.logInfo("Retrieved %d %s", len(records), kind.Plural())
	return records, Outcome{Kind: kind, Count: len(records)}
}
