// Package oauth obtains a Google Ads refresh token through the installed-app
// authorization code flow, with a short-lived local server receiving the callback.
package oauth

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// Scope grants access to the Google Ads API.
const Scope = "https://www.googleapis.com/auth/adwords"

// DefaultPort is where the callback server listens unless Flow.Port is set.
const DefaultPort = 8080

var (
	ErrStateMismatch  = errors.New("oauth state mismatch")
	ErrMissingCode    = errors.New("authorization code missing from callback")
	ErrNoRefreshToken = errors.New("no refresh token in token response")
)

// Logger receives the authorization URL and progress messages.
type Logger interface {
	Infof(format string, args ...any)
}

// Flow runs the authorization code exchange for one OAuth2 client.
type Flow struct {
	ClientID     string
	ClientSecret string
	Port         int             // callback port, DefaultPort when zero
	Endpoint     oauth2.Endpoint // google.Endpoint when zero
	Logger       Logger

	// OpenURL, if set, is called with the authorization URL, e.g. to launch a browser.
	OpenURL func(url string) error
}

// Config returns the oauth2 configuration for a callback at redirectURL.
func (f *Flow) Config(redirectURL string) *oauth2.Config {
	endpoint := f.Endpoint
	if endpoint.TokenURL == "" {
		endpoint = google.Endpoint
	}
	return &oauth2.Config{
		ClientID:     f.ClientID,
		ClientSecret: f.ClientSecret,
		Endpoint:     endpoint,
		RedirectURL:  redirectURL,
		Scopes:       []string{Scope},
	}
}

// Run listens on localhost:Port and completes the flow.
func (f *Flow) Run(ctx context.Context) (*oauth2.Token, error) {
	port := f.Port
	if port == 0 {
		port = DefaultPort
	}

	ln, err := net.Listen("tcp", fmt.Sprintf("localhost:%d", port))
	if err != nil {
		return nil, fmt.Errorf("failed to start callback server: %w", err)
	}
	return f.Serve(ctx, ln)
}

// Serve completes the flow with the callback server on ln. The listener is closed on return.
func (f *Flow) Serve(ctx context.Context, ln net.Listener) (*oauth2.Token, error) {
	addr := ln.Addr().(*net.TCPAddr)
	conf := f.Config(fmt.Sprintf("http://localhost:%d", addr.Port))
	state := uuid.NewString()

	results := make(chan callbackResult, 1)
	srv := &http.Server{
		Handler:           callbackHandler(state, results),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go srv.Serve(ln)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	authURL := conf.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
	f.logInfo("Open the following URL in your browser and authorize the application:")
	f.logInfo("%s", authURL)
	if f.OpenURL != nil {
		if err := f.OpenURL(authURL); err != nil {
			f.logInfo("Could not open the browser: %v", err)
		}
	}

	f.logInfo("Waiting for authorization on %s...", conf.RedirectURL)

	var res callbackResult
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-results:
	}
	if res.err != nil {
		return nil, res.err
	}

	token, err := conf.Exchange(ctx, res.code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange authorization code: %w", err)
	}
	if token.RefreshToken == "" {
		return nil, ErrNoRefreshToken
	}

	return token, nil
}

func (f *Flow) logInfo(format string, args ...any) {
	if f.Logger != nil {
		f.Logger.Infof(format, args...)
	}
}

type callbackResult struct {
	code string
	err  error
}

// callbackHandler reports the first callback on results and ignores any other request.
func callbackHandler(state string, results chan<- callbackResult) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}

		q := r.URL.Query()
		var res callbackResult
		switch {
		case q.Get("error") != "":
			res.err = fmt.Errorf("authorization denied: %s", q.Get("error"))
		case q.Get("state") != state:
			res.err = ErrStateMismatch
		case q.Get("code") == "":
			res.err = ErrMissingCode
		default:
			res.code = q.Get("code")
		}

		if res.err != nil {
			http.Error(w, res.err.Error(), http.StatusBadRequest)
		} else {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			fmt.Fprintln(w, "Authorization complete. You can close this window.")
		}

		select {
		case results <- res:
		default:
		}
	})
}
