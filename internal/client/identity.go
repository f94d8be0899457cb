package client

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"bytebazaar-storefront/internal/config"
)

// IdentityClient talks to the external identity provider. Login itself is a
// browser redirect; this client only builds the redirect URLs and performs
// the code-for-token exchange on callback.
type IdentityClient interface {
	AuthorizeURL(state string) string
	ExchangeCode(ctx context.Context, code string) (*TokenSet, error)
	LogoutRedirectURL() string
}

type TokenSet struct {
	AccessToken  string `json:"access_token"`
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

type identityClientImpl struct {
	httpClient   *http.Client
	authority    string
	clientID     string
	clientSecret string
	redirectURL  string
	logoutURL    string
	scope        string
}

func NewIdentityClient(cfg *config.Identity) IdentityClient {
	return &identityClientImpl{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		authority:    cfg.Authority,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		redirectURL:  cfg.RedirectURL,
		logoutURL:    cfg.LogoutURL,
		scope:        cfg.Scope,
	}
}

func (c *identityClientImpl) AuthorizeURL(state string) string {
	q := url.Values{}
	q.Set("response_type", "code")
	q.Set("client_id", c.clientID)
	q.Set("redirect_uri", c.redirectURL)
	q.Set("scope", c.scope)
	q.Set("state", state)
	return c.authority + "/oauth2/authorize?" + q.Encode()
}

func (c *identityClientImpl) ExchangeCode(ctx context.Context, code string) (*TokenSet, error) {
	auth := base64.StdEncoding.EncodeToString(
		[]byte(c.clientID + ":" + c.clientSecret),
	)

	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("client_id", c.clientID)
	form.Set("redirect_uri", c.redirectURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.authority+"/oauth2/token",
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("http new request: %w", err)
	}
	req.Header.Set("Authorization", "Basic "+auth)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token exchange failed: %w", netError(err))
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("token exchange: %w", classifyStatus(resp.StatusCode, body))
	}

	var tokens TokenSet
	if err := json.Unmarshal(body, &tokens); err != nil {
		return nil, fmt.Errorf("decode token response: %w", err)
	}
	if tokens.AccessToken == "" {
		return nil, fmt.Errorf("token response missing access_token")
	}
	return &tokens, nil
}

func (c *identityClientImpl) LogoutRedirectURL() string {
	q := url.Values{}
	q.Set("client_id", c.clientID)
	q.Set("logout_uri", c.logoutURL)
	return c.authority + "/logout?" + q.Encode()
}
