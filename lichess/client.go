package lichess

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/lbarasti/chess-social/models"
)

var (
	// ErrInvalidToken means Lichess rejected the bearer token.
	ErrInvalidToken = errors.New("lichess: invalid or expired token")
	// ErrUnavailable wraps transport failures and unexpected upstream errors.
	ErrUnavailable = errors.New("lichess: api unavailable")
)

// Account is the subset of the Lichess account payload the server consumes.
// ID is the lower-cased canonical form of the username.
type Account struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

// Challenge is the relevant part of a challenge-creation response.
type Challenge struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type challengeResponse struct {
	ID    string `json:"id"`
	URL   string `json:"url"`
	Error string `json:"error"`
}

// Client talks to the Lichess HTTP API on behalf of token-holding users.
type Client struct {
	host       string
	httpClient *http.Client
}

func NewClient(host string) *Client {
	if host == "" {
		host = DefaultHost
	}
	return &Client{
		host:       strings.TrimRight(host, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// VerifyToken resolves a bearer token to the account it belongs to.
func (c *Client) VerifyToken(ctx context.Context, token string) (*Account, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.host+"/api/account", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return nil, ErrInvalidToken
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: account endpoint returned %d", ErrUnavailable, resp.StatusCode)
	}

	var account Account
	if err := json.NewDecoder(resp.Body).Decode(&account); err != nil {
		return nil, fmt.Errorf("%w: decoding account: %v", ErrUnavailable, err)
	}
	if account.ID == "" {
		return nil, ErrInvalidToken
	}
	return &account, nil
}

// CreateChallenge asks Lichess to open a challenge against opponent, playing
// the given color, with the tournament's settings applied verbatim. The
// returned URL identifies the game page of the new challenge.
func (c *Client) CreateChallenge(ctx context.Context, token, opponent, color string, settings *models.ChallengeSettings) (*Challenge, error) {
	form := url.Values{}
	if color != "" {
		form.Set("color", color)
	}

	rated := false
	if settings != nil {
		rated = settings.Rated
		switch settings.TimeControl.Type {
		case models.TimeControlClock:
			form.Set("clock.limit", strconv.Itoa(settings.TimeControl.Limit))
			form.Set("clock.increment", strconv.Itoa(settings.TimeControl.Increment))
		case models.TimeControlCorrespondence:
			form.Set("days", strconv.Itoa(settings.TimeControl.Days))
		}
		// unlimited: no time parameters at all
		if settings.Variant != "" {
			form.Set("variant", settings.Variant)
		}
		if len(settings.Rules) > 0 {
			form.Set("rules", strings.Join(settings.Rules, ","))
		}
	}
	form.Set("rated", strconv.FormatBool(rated))

	endpoint := fmt.Sprintf("%s/api/challenge/%s", c.host, url.PathEscape(opponent))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrInvalidToken
	}

	var payload challengeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("%w: decoding challenge response: %v", ErrUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		if payload.Error != "" {
			return nil, fmt.Errorf("%w: %s", ErrUnavailable, payload.Error)
		}
		return nil, fmt.Errorf("%w: challenge endpoint returned %d", ErrUnavailable, resp.StatusCode)
	}

	challenge := &Challenge{ID: payload.ID, URL: payload.URL}
	if challenge.URL == "" && challenge.ID != "" {
		challenge.URL = fmt.Sprintf("%s/%s", c.host, challenge.ID)
	}
	return challenge, nil
}

// AutocompleteUsernames proxies the Lichess player autocomplete, returning
// matching usernames for a partial term.
func (c *Client) AutocompleteUsernames(ctx context.Context, term string) ([]string, error) {
	endpoint := fmt.Sprintf("%s/api/player/autocomplete?term=%s", c.host, url.QueryEscape(term))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: autocomplete endpoint returned %d", ErrUnavailable, resp.StatusCode)
	}

	var usernames []string
	if err := json.NewDecoder(resp.Body).Decode(&usernames); err != nil {
		return nil, fmt.Errorf("%w: decoding autocomplete response: %v", ErrUnavailable, err)
	}
	return usernames, nil
}
