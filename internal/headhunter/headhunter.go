package headhunter

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	apiURL    = "https://api.hh.ru"
	oauthURL  = "https://hh.ru/oauth/token"
	userAgent = "spigell/hh-gateway (spigelly@gmail.com)"
)

// Client is a stateless wrapper over the hh.ru REST API. Tokens belong to
// users, not to the process, so every authenticated method takes the bearer
// token explicitly.
type Client struct {
	logger       *zap.Logger
	clientID     string
	clientSecret string
	redirectURI  string

	HTTPClient *http.Client
	UserAgent  string
	APIURL     string
	OAuthURL   string
}

type Credentials struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
}

func New(logger *zap.Logger, creds Credentials) *Client {
	return &Client{
		logger:       logger,
		clientID:     creds.ClientID,
		clientSecret: creds.ClientSecret,
		redirectURI:  creds.RedirectURI,
		APIURL:       apiURL,
		OAuthURL:     oauthURL,
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		UserAgent: userAgent,
	}
}

func (c *Client) ClientID() string { return c.clientID }
