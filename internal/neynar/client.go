// Package neynar wraps the Neynar Farcaster API: user profile lookup by fid or
// username, user search, and the score level helpers the UI surfaces.
package neynar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"score-server/internal/models"

	"go.uber.org/zap"
)

// HTTPClient is the *http.Client subset used by the client, for test stubbing.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// apiUser mirrors the relevant slice of Neynar's user object.
type apiUser struct {
	FID            int64  `json:"fid"`
	Username       string `json:"username"`
	DisplayName    string `json:"display_name"`
	PfpURL         string `json:"pfp_url"`
	CustodyAddress string `json:"custody_address"`
	Profile        struct {
		Bio struct {
			Text string `json:"text"`
		} `json:"bio"`
	} `json:"profile"`
	FollowerCount     int  `json:"follower_count"`
	FollowingCount    int  `json:"following_count"`
	PowerBadge        bool `json:"power_badge"`
	VerifiedAddresses struct {
		EthAddresses []string `json:"eth_addresses"`
	} `json:"verified_addresses"`
	Score        *float64 `json:"score"`
	Experimental *struct {
		NeynarUserScore *float64 `json:"neynar_user_score"`
	} `json:"experimental"`
}

// Client calls the Neynar API with the configured key.
type Client struct {
	httpClient HTTPClient
	baseURL    string
	apiKey     string
	logger     *zap.Logger
}

// NewClient creates a Neynar API client. baseURL has no trailing slash,
// e.g. https://api.neynar.com/v2/farcaster.
func NewClient(httpClient HTTPClient, baseURL, apiKey string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		apiKey:     apiKey,
		logger:     logger.Named("NeynarClient"),
	}
}

// Configured reports whether an API key is set.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// GetUserByFID fetches one user via the bulk endpoint.
// Returns models.ErrUserNotFound when the response carries no user.
func (c *Client) GetUserByFID(ctx context.Context, fid int64) (*models.UserProfile, error) {
	var result struct {
		Users []apiUser `json:"users"`
	}
	if err := c.get(ctx, "/user/bulk?fids="+strconv.FormatInt(fid, 10), &result); err != nil {
		return nil, err
	}
	if len(result.Users) == 0 {
		return nil, models.ErrUserNotFound
	}
	profile := flattenUser(result.Users[0])
	return &profile, nil
}

// GetUserByUsername fetches one user by their Farcaster username.
func (c *Client) GetUserByUsername(ctx context.Context, username string) (*models.UserProfile, error) {
	var result struct {
		User *apiUser `json:"user"`
	}
	if err := c.get(ctx, "/user/by_username?username="+url.QueryEscape(username), &result); err != nil {
		return nil, err
	}
	if result.User == nil {
		return nil, models.ErrUserNotFound
	}
	profile := flattenUser(*result.User)
	return &profile, nil
}

// SearchUsers returns up to limit users matching the query.
func (c *Client) SearchUsers(ctx context.Context, query string, limit int) ([]models.UserProfile, error) {
	var result struct {
		Result struct {
			Users []apiUser `json:"users"`
		} `json:"result"`
	}
	path := fmt.Sprintf("/user/search?q=%s&limit=%d", url.QueryEscape(query), limit)
	if err := c.get(ctx, path, &result); err != nil {
		return nil, err
	}
	profiles := make([]models.UserProfile, 0, len(result.Result.Users))
	for _, u := range result.Result.Users {
		profiles = append(profiles, flattenUser(u))
	}
	return profiles, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	if !c.Configured() {
		return models.ErrAPIKeyMissing
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create neynar request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Neynar request failed", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("neynar request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Neynar API returned unexpected status",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return fmt.Errorf("neynar API error: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode neynar response: %w", err)
	}
	return nil
}

// flattenUser converts the raw API user into the client-facing profile.
// The score lives in experimental.neynar_user_score on newer responses and in
// the top-level score field on older ones; absent both, it is 0.
func flattenUser(u apiUser) models.UserProfile {
	score := 0.0
	switch {
	case u.Experimental != nil && u.Experimental.NeynarUserScore != nil:
		score = *u.Experimental.NeynarUserScore
	case u.Score != nil:
		score = *u.Score
	}

	verified := u.VerifiedAddresses.EthAddresses
	if verified == nil {
		verified = []string{}
	}

	return models.UserProfile{
		FID:               u.FID,
		Username:          u.Username,
		DisplayName:       u.DisplayName,
		PfpURL:            u.PfpURL,
		Bio:               u.Profile.Bio.Text,
		FollowerCount:     u.FollowerCount,
		FollowingCount:    u.FollowingCount,
		PowerBadge:        u.PowerBadge,
		CustodyAddress:    u.CustodyAddress,
		VerifiedAddresses: verified,
		NeynarScore:       score,
	}
}
