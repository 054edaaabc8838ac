package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"flight-history-service/pkg/logger"
	"flight-history-service/pkg/utils"

	"golang.org/x/oauth2"
)

// ErrEmptySubscriptionKey is returned when login succeeds but carries no key
var ErrEmptySubscriptionKey = errors.New("login response has no subscription key")

// FR24OAuth handles the web login that yields the API subscription key
type FR24OAuth struct {
	loginURL   string
	siteURL    string
	mail       string
	password   string
	httpClient *http.Client
	logger     logger.Logger
}

// NewFR24OAuth creates a new login handler. siteURL is sent as Origin and Referer.
func NewFR24OAuth(loginURL, siteURL, mail, password string, httpClient *http.Client, logger logger.Logger) *FR24OAuth {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &FR24OAuth{
		loginURL:   loginURL,
		siteURL:    siteURL,
		mail:       mail,
		password:   password,
		httpClient: httpClient,
		logger:     logger,
	}
}

type loginResponse struct {
	UserData struct {
		SubscriptionKey string `json:"subscriptionKey"`
	} `json:"userData"`
}

// Login posts the credentials and returns the subscription key as an access token.
// The token carries no expiry; it is valid for the life of the process.
func (o *FR24OAuth) Login(ctx context.Context) (*oauth2.Token, error) {
	form := url.Values{
		"remember": {"true"},
		"type":     {"web"},
		"email":    {o.mail},
		"password": {o.password},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.loginURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	utils.SetBrowserHeaders(req, o.siteURL)

	o.logger.Debug("Logging in", "url", o.loginURL)
	resp, err := o.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send login request: %w", err)
	}
	if err := utils.CheckResponse(resp); err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var body loginResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode login response: %w", err)
	}
	if body.UserData.SubscriptionKey == "" {
		return nil, ErrEmptySubscriptionKey
	}

	o.logger.Info("Login successful")
	return &oauth2.Token{
		AccessToken: body.UserData.SubscriptionKey,
		TokenType:   "subscription",
	}, nil
}

// GetTokenSource returns a token source that logs in on first use and then reuses the key
func (o *FR24OAuth) GetTokenSource(ctx context.Context) oauth2.TokenSource {
	return oauth2.ReuseTokenSource(nil, &loginTokenSource{ctx: ctx, oauth: o})
}

type loginTokenSource struct {
	ctx   context.Context
	oauth *FR24OAuth
}

func (s *loginTokenSource) Token() (*oauth2.Token, error) {
	return s.oauth.Login(s.ctx)
}
