package credentials

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"
)

// Yahoo OAuth2 token endpoint.
const tokenURL = "https://api.login.yahoo.com/oauth2/get_token"

// AuthError indicates that no valid credential was available for the
// request. It is not retryable: the token must be re-provisioned.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("not authenticated: %v", e.Err)
}

func (e *AuthError) Unwrap() error { return e.Err }

// OAuth2Provider attaches OAuth2 bearer tokens to upstream requests,
// refreshing them transparently via the token source.
type OAuth2Provider struct {
	httpClient *http.Client
}

var _ Provider = (*OAuth2Provider)(nil)

// NewOAuth2Provider builds a Provider from client credentials and a
// previously obtained refresh token. Token acquisition and refresh are
// handled by the oauth2 transport; every request carries the given timeout.
func NewOAuth2Provider(ctx context.Context, clientID, clientSecret, refreshToken string, timeout time.Duration) *OAuth2Provider {
	conf := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint:     oauth2.Endpoint{TokenURL: tokenURL},
	}
	src := conf.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	client := oauth2.NewClient(ctx, src)
	client.Timeout = timeout
	return &OAuth2Provider{httpClient: client}
}

func (p *OAuth2Provider) AuthenticatedGet(ctx context.Context, url string) ([]byte, int, error) {
	return doGet(ctx, p.httpClient, url, func(req *http.Request) {})
}

// StaticTokenProvider attaches a fixed bearer token. Used by tests and
// one-off tooling where a token has been obtained out of band.
type StaticTokenProvider struct {
	Token      string
	HTTPClient *http.Client
}

var _ Provider = (*StaticTokenProvider)(nil)

// NewStaticTokenProvider builds a Provider around a pre-issued access token.
func NewStaticTokenProvider(token string, timeout time.Duration) *StaticTokenProvider {
	return &StaticTokenProvider{
		Token:      token,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

func (p *StaticTokenProvider) AuthenticatedGet(ctx context.Context, url string) ([]byte, int, error) {
	if p.Token == "" {
		return nil, 0, &AuthError{Err: errors.New("no access token configured")}
	}
	return doGet(ctx, p.HTTPClient, url, func(req *http.Request) {
		req.Header.Set("Authorization", "Bearer "+p.Token)
	})
}

func doGet(ctx context.Context, client *http.Client, url string, decorate func(*http.Request)) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/xml")
	decorate(req)

	resp, err := client.Do(req)
	if err != nil {
		var retrieve *oauth2.RetrieveError
		if errors.As(err, &retrieve) {
			log.Error("Token refresh rejected by authorization server", "error", retrieve)
			return nil, 0, &AuthError{Err: retrieve}
		}
		return nil, 0, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response body: %w", err)
	}

	// The upstream answers 401 when the token it was handed is expired or
	// revoked. Credentials are a precondition, so surface it as AuthError
	// rather than a per-request failure.
	if resp.StatusCode == http.StatusUnauthorized {
		log.Warn("Upstream rejected credentials", "status", resp.StatusCode, "url", url)
		return body, resp.StatusCode, &AuthError{Err: fmt.Errorf("upstream returned %d", resp.StatusCode)}
	}

	return body, resp.StatusCode, nil
}
