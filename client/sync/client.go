package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
	"time"

	"vita-server/entities"
	"vita-server/logger"
	"vita-server/usecases"
)

// Envelope is the wire response schema, validated at the boundary instead
// of optimistic field access.
type Envelope struct {
	Status  string          `json:"status"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
}

// AllData mirrors the server's bulk-fetch payload.
type AllData = usecases.AllData

// Client is the best-effort remote sync client. Network errors, non-2xx
// responses and invalid JSON all degrade identically: fetches return nil,
// saves return false. Failures are logged and never retried here; the
// coordinator decides what, if anything, to do about them.
type Client struct {
	baseURL string
	http    *http.Client
	log     *logger.Logger
}

func New(baseURL string, log *logger.Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		log:     log,
	}
}

// post sends one action and returns the envelope data, or nil on any
// kind of failure.
func (c *Client) post(ctx context.Context, body map[string]interface{}) json.RawMessage {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/sync", bytes.NewReader(raw))
	if err != nil {
		return nil
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("remote call failed", "action", body["action"], "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn("remote call rejected", "action", body["action"], "status", resp.StatusCode)
		return nil
	}
	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		c.log.Warn("remote response not valid JSON", "action", body["action"], "error", err)
		return nil
	}
	if env.Status != "success" {
		c.log.Warn("remote action failed", "action", body["action"], "message", env.Message)
		return nil
	}
	return env.Data
}

// FetchAll loads everything the server holds for a user. nil means "no
// data": offline, rejected and malformed all look the same to callers.
func (c *Client) FetchAll(ctx context.Context, username string) *AllData {
	u := c.baseURL + "/api/v1/sync?username=" + url.QueryEscape(username)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil
	}
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn("fetch-all failed", "username", username, "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn("fetch-all rejected", "username", username, "status", resp.StatusCode)
		return nil
	}
	var env Envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		c.log.Warn("fetch-all response not valid JSON", "error", err)
		return nil
	}
	if env.Status != "success" {
		return nil
	}
	var all AllData
	if err := json.Unmarshal(env.Data, &all); err != nil {
		c.log.Warn("fetch-all payload did not match schema", "error", err)
		return nil
	}
	return &all
}

// SaveProfile upserts the profile. Fire-and-forget from the caller's
// point of view; the bool only feeds the failure callback.
func (c *Client) SaveProfile(ctx context.Context, profile *entities.UserProfile) bool {
	return c.post(ctx, map[string]interface{}{
		"action":   "saveProfile",
		"username": profile.Username,
		"profile":  profile,
	}) != nil
}

// SaveHistory appends one category entry.
func (c *Client) SaveHistory(ctx context.Context, username, category string, payload json.RawMessage, timestamp, imageHash string) bool {
	return c.post(ctx, map[string]interface{}{
		"action":     "saveHistory",
		"username":   username,
		"category":   category,
		"payload":    payload,
		"timestamp":  timestamp,
		"image_hash": imageHash,
	}) != nil
}

// Clear wipes one category server-side.
func (c *Client) Clear(ctx context.Context, category, username string) bool {
	return c.post(ctx, map[string]interface{}{
		"action":   "clearHistory",
		"username": username,
		"category": category,
	}) != nil
}

// SaveGoal upserts one goal by id.
func (c *Client) SaveGoal(ctx context.Context, goal *entities.Goal) bool {
	return c.post(ctx, map[string]interface{}{
		"action":   "saveGoals",
		"username": goal.Username,
		"goal":     goal,
	}) != nil
}

// Login authenticates a password account.
func (c *Client) Login(ctx context.Context, username, password string) *entities.User {
	data := c.post(ctx, map[string]interface{}{
		"action":   "login",
		"username": username,
		"password": password,
	})
	if data == nil {
		return nil
	}
	var user entities.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil
	}
	return &user
}

// AdminLogin returns a session token, or "" on failure.
func (c *Client) AdminLogin(ctx context.Context, username, password string) string {
	data := c.post(ctx, map[string]interface{}{
		"action":   "adminLogin",
		"username": username,
		"password": password,
	})
	if data == nil {
		return ""
	}
	var payload struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	return payload.Token
}

// AdminDashboard bulk-fetches every user summary.
func (c *Client) AdminDashboard(ctx context.Context, token string) []usecases.DashboardRow {
	data := c.post(ctx, map[string]interface{}{
		"action": "adminDashboard",
		"token":  token,
	})
	if data == nil {
		return nil
	}
	var rows []usecases.DashboardRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil
	}
	return rows
}

// Leaderboard fetches the global top list.
func (c *Client) Leaderboard(ctx context.Context, limit int) []usecases.LeaderboardRow {
	data := c.post(ctx, map[string]interface{}{
		"action": "leaderboard",
		"limit":  limit,
	})
	if data == nil {
		return nil
	}
	var rows []usecases.LeaderboardRow
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil
	}
	return rows
}

// SocialLogin exchanges a provider identity for a local user and token.
func (c *Client) SocialLogin(ctx context.Context, provider, externalID, displayName, avatarURL string) (*entities.User, string) {
	data := c.post(ctx, map[string]interface{}{
		"action":       "socialLogin",
		"provider":     provider,
		"external_id":  externalID,
		"display_name": displayName,
		"avatar_url":   avatarURL,
	})
	if data == nil {
		return nil, ""
	}
	var payload struct {
		User  *entities.User `json:"user"`
		Token string         `json:"token"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, ""
	}
	return payload.User, payload.Token
}

// CreateGroup makes a cohort and returns it with its join code.
func (c *Client) CreateGroup(ctx context.Context, name, username string) *entities.HealthGroup {
	return c.groupCall(ctx, map[string]interface{}{
		"action":     "createGroup",
		"group_name": name,
		"username":   username,
	})
}

// JoinGroup joins by code.
func (c *Client) JoinGroup(ctx context.Context, joinCode, username string) *entities.HealthGroup {
	return c.groupCall(ctx, map[string]interface{}{
		"action":    "joinGroup",
		"join_code": joinCode,
		"username":  username,
	})
}

// LeaveGroup leaves a cohort.
func (c *Client) LeaveGroup(ctx context.Context, groupID, username string) bool {
	return c.post(ctx, map[string]interface{}{
		"action":   "leaveGroup",
		"group_id": groupID,
		"username": username,
	}) != nil
}

// MyGroups lists the cohorts a user belongs to.
func (c *Client) MyGroups(ctx context.Context, username string) []entities.HealthGroup {
	data := c.post(ctx, map[string]interface{}{
		"action":   "myGroups",
		"username": username,
	})
	if data == nil {
		return nil
	}
	var groups []entities.HealthGroup
	if err := json.Unmarshal(data, &groups); err != nil {
		return nil
	}
	return groups
}

func (c *Client) groupCall(ctx context.Context, body map[string]interface{}) *entities.HealthGroup {
	data := c.post(ctx, body)
	if data == nil {
		return nil
	}
	var group entities.HealthGroup
	if err := json.Unmarshal(data, &group); err != nil {
		return nil
	}
	return &group
}
