package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spigell/hh-gateway/internal/domain"
	"github.com/spigell/hh-gateway/internal/headhunter"
	"go.uber.org/zap"
)

var ErrInvalidToken = errors.New("invalid gateway token")

const defaultAccessTokenTTL = 24 * time.Hour

// oauthUpstream is the OAuth-facing part of the headhunter client.
type oauthUpstream interface {
	AuthorizeURL() string
	ExchangeCode(ctx context.Context, code string) (*headhunter.TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*headhunter.TokenResponse, error)
	Me(ctx context.Context, token string) (map[string]any, error)
}

// AuthService exchanges hh.ru OAuth codes for upstream tokens, keeps them in
// the token store and issues the gateway's own JWTs.
type AuthService struct {
	hh     oauthUpstream
	tokens Tokens
	secret []byte
	jwtTTL time.Duration
	logger *zap.Logger
}

func NewAuthService(hh oauthUpstream, tokens Tokens, jwtSecret string, jwtTTL time.Duration, logger *zap.Logger) *AuthService {
	return &AuthService{
		hh:     hh,
		tokens: tokens,
		secret: []byte(jwtSecret),
		jwtTTL: jwtTTL,
		logger: logger,
	}
}

// AuthResult is what the frontend gets back after a successful OAuth round
// trip.
type AuthResult struct {
	Token string         `json:"token"`
	User  map[string]any `json:"user"`
}

// AuthorizeURL returns the hh.ru consent page URL.
func (s *AuthService) AuthorizeURL() string {
	return s.hh.AuthorizeURL()
}

// HandleCallback completes the OAuth flow: exchanges the code, stores the
// upstream tokens under the hh.ru user id and issues a gateway JWT.
func (s *AuthService) HandleCallback(ctx context.Context, code string) (*AuthResult, error) {
	tokens, err := s.hh.ExchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}

	user, err := s.hh.Me(ctx, tokens.AccessToken)
	if err != nil {
		return nil, err
	}

	userID := stringValue(user["id"])
	if userID == "" {
		return nil, errors.New("headhunter user info contains no id")
	}

	if err := s.storeTokens(ctx, userID, tokens); err != nil {
		return nil, err
	}

	jwtToken, err := s.issueJWT(userID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user authenticated", zap.String("user_id", userID))

	return &AuthResult{
		Token: jwtToken,
		User: map[string]any{
			"id":          user["id"],
			"email":       user["email"],
			"first_name":  user["first_name"],
			"last_name":   user["last_name"],
			"middle_name": user["middle_name"],
		},
	}, nil
}

// Refresh rotates the user's upstream tokens using the stored refresh token
// and issues a fresh gateway JWT.
func (s *AuthService) Refresh(ctx context.Context, userID string) (string, error) {
	refreshToken, ok, err := s.tokens.RefreshToken(ctx, userID)
	if err != nil {
		s.logger.Warn("token store unavailable during refresh",
			zap.String("user_id", userID), zap.Error(err))
		return "", domain.ErrUnauthenticated
	}
	if !ok {
		return "", domain.ErrUnauthenticated
	}

	tokens, err := s.hh.Refresh(ctx, refreshToken)
	if err != nil {
		return "", err
	}

	if err := s.storeTokens(ctx, userID, tokens); err != nil {
		return "", err
	}

	return s.issueJWT(userID)
}

func (s *AuthService) storeTokens(ctx context.Context, userID string, tokens *headhunter.TokenResponse) error {
	ttl := defaultAccessTokenTTL
	if tokens.ExpiresIn > 0 {
		ttl = time.Duration(tokens.ExpiresIn) * time.Second
	}

	if err := s.tokens.SetAccessToken(ctx, userID, tokens.AccessToken, ttl); err != nil {
		return fmt.Errorf("storing access token: %w", err)
	}

	if tokens.RefreshToken != "" {
		if err := s.tokens.SetRefreshToken(ctx, userID, tokens.RefreshToken); err != nil {
			return fmt.Errorf("storing refresh token: %w", err)
		}
	}

	return nil
}

func (s *AuthService) issueJWT(userID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(s.jwtTTL).Unix(),
	})

	return token.SignedString(s.secret)
}

// ValidateToken verifies a gateway JWT and returns the user id it carries.
func (s *AuthService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidToken
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", ErrInvalidToken
	}

	return sub, nil
}

func stringValue(v any) string {
	switch typed := v.(type) {
	case nil:
		return ""
	case string:
		return typed
	case fmt.Stringer:
		return typed.String()
	case float64:
		return fmt.Sprintf("%.0f", typed)
	default:
		return fmt.Sprintf("%v", typed)
	}
}
