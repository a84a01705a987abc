package oauth

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type infoLogger struct {
	lines []string
}

func (l *infoLogger) Infof(format string, args ...any) {
	l.lines = append(l.lines, fmt.Sprintf(format, args...))
}

func newTokenServer(t *testing.T, refreshToken string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.Form.Get("grant_type"))
		assert.Equal(t, "the-code", r.Form.Get("code"))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"access_token":"access","token_type":"Bearer","expires_in":3600,"refresh_token":%q}`, refreshToken)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newFlow(tokenURL string, open func(string) error) *Flow {
	return &Flow{
		ClientID:     "client",
		ClientSecret: "secret",
		Endpoint: oauth2.Endpoint{
			AuthURL:   "https://accounts.example.com/auth",
			TokenURL:  tokenURL,
			AuthStyle: oauth2.AuthStyleInParams,
		},
		OpenURL: open,
	}
}

// browse plays the user: it follows the redirect the provider would send,
// optionally rewriting the callback query.
func browse(t *testing.T, rewrite func(url.Values)) func(string) error {
	return func(authURL string) error {
		u, err := url.Parse(authURL)
		require.NoError(t, err)
		params := u.Query()

		callback, err := url.Parse(params.Get("redirect_uri"))
		require.NoError(t, err)

		q := url.Values{"code": {"the-code"}, "state": {params.Get("state")}}
		if rewrite != nil {
			rewrite(q)
		}
		callback.Host = strings.Replace(callback.Host, "localhost", "127.0.0.1", 1)
		callback.RawQuery = q.Encode()

		go func() {
			resp, err := http.Get(callback.String())
			if err == nil {
				resp.Body.Close()
			}
		}()
		return nil
	}
}

func listen(t *testing.T) net.Listener {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	return ln
}

func TestFlowServe(t *testing.T) {
	tokens := newTokenServer(t, "1//refresh")

	var authURL string
	open := browse(t, nil)
	flow := newFlow(tokens.URL, func(u string) error {
		authURL = u
		return open(u)
	})
	logger := &infoLogger{}
	flow.Logger = logger

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	token, err := flow.Serve(ctx, listen(t))
	require.NoError(t, err)
	assert.Equal(t, "1//refresh", token.RefreshToken)
	assert.Equal(t, "access", token.AccessToken)

	u, err := url.Parse(authURL)
	require.NoError(t, err)
	q := u.Query()
	assert.Equal(t, "client", q.Get("client_id"))
	assert.Equal(t, Scope, q.Get("scope"))
	assert.Equal(t, "offline", q.Get("access_type"))
	assert.Equal(t, "consent", q.Get("prompt"))
	assert.Len(t, q.Get("state"), 36, "state is a uuid")
	assert.True(t, strings.HasPrefix(q.Get("redirect_uri"), "http://localhost:"))

	assert.Contains(t, logger.lines, authURL)
}

func TestFlowServeErrors(t *testing.T) {
	tests := []struct {
		name    string
		rewrite func(url.Values)
		wantErr error
		msg     string
	}{
		{
			name:    "state mismatch",
			rewrite: func(q url.Values) { q.Set("state", "forged") },
			wantErr: ErrStateMismatch,
		},
		{
			name:    "missing code",
			rewrite: func(q url.Values) { q.Del("code") },
			wantErr: ErrMissingCode,
		},
		{
			name:    "denied",
			rewrite: func(q url.Values) { q.Set("error", "access_denied") },
			msg:     "access_denied",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := newTokenServer(t, "unused")
			flow := newFlow(tokens.URL, browse(t, tt.rewrite))

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			_, err := flow.Serve(ctx, listen(t))
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.msg != "" {
				assert.Contains(t, err.Error(), tt.msg)
			}
		})
	}
}

func TestFlowServeNoRefreshToken(t *testing.T) {
	tokens := newTokenServer(t, "")
	flow := newFlow(tokens.URL, browse(t, nil))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := flow.Serve(ctx, listen(t))
	assert.ErrorIs(t, err, ErrNoRefreshToken)
}

func TestFlowServeContextCanceled(t *testing.T) {
	flow := newFlow("http://127.0.0.1:1/token", nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := flow.Serve(ctx, listen(t))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFlowConfigDefaults(t *testing.T) {
	conf := (&Flow{ClientID: "c", ClientSecret: "s"}).Config("http://localhost:8080")
	assert.Equal(t, "https://oauth2.googleapis.com/token", conf.Endpoint.TokenURL)
	assert.Equal(t, []string{Scope}, conf.Scopes)
	assert.Equal(t, "http://localhost:8080", conf.RedirectURL)
}

func TestCallbackHandler(t *testing.T) {
	results := make(chan callbackResult, 1)
	h := callbackHandler("expected", results)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/favicon.ico", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, results)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?state=expected&code=abc", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Authorization complete")

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/?state=expected&code=second", nil))
	assert.Equal(t, http.StatusOK, rec.Code, "later callbacks do not block")

	res := <-results
	assert.NoError(t, res.err)
	assert.Equal(t, "abc", res.code)
}
