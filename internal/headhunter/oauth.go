package headhunter

import (
	"context"
	"errors"
	"fmt"
	"net/url"
)

// TokenResponse is the hh.ru OAuth token endpoint payload.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// AuthorizeURL returns the hh.ru page the frontend redirects the user to.
func (c *Client) AuthorizeURL() string {
	q := url.Values{}
	q.Set("response_type", "code")
	q.Set("client_id", c.clientID)
	q.Set("redirect_uri", c.redirectURI)

	return fmt.Sprintf("https://hh.ru/oauth/authorize?%s", q.Encode())
}

// ExchangeCode trades an authorization code for tokens.
func (c *Client) ExchangeCode(ctx context.Context, code string) (*TokenResponse, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("client_id", c.clientID)
	form.Set("client_secret", c.clientSecret)
	form.Set("code", code)
	form.Set("redirect_uri", c.redirectURI)

	return c.requestToken(ctx, form)
}

// Refresh trades a refresh token for a fresh token pair.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("refresh_token", refreshToken)

	return c.requestToken(ctx, form)
}

func (c *Client) requestToken(ctx context.Context, form url.Values) (*TokenResponse, error) {
	var tokens TokenResponse
	if err := c.postForm(ctx, c.OAuthURL, form, &tokens); err != nil {
		return nil, err
	}

	if tokens.AccessToken == "" {
		return nil, errors.New("oauth response contains no access_token")
	}

	return &tokens, nil
}

// Me returns the authenticated hh.ru user profile.
func (c *Client) Me(ctx context.Context, token string) (map[string]any, error) {
	var user map[string]any
	if err := c.getJSON(ctx, token, c.APIURL+"/me", nil, &user); err != nil {
		return nil, err
	}

	return user, nil
}
