package lastfm

import (
	"context"
	"fmt"
	"time"
)

const (
	// sessionPollInterval is how often GetSession is retried while
	// waiting for the listener to authorize the token in their browser.
	sessionPollInterval = time.Second
	// sessionPollAttempts bounds the wait; past this the token is
	// considered abandoned.
	sessionPollAttempts = 10
)

// GetToken requests an authentication token from Last.fm. The listener
// must authorize it in a browser before it can be exchanged for a session.
func (c *Client) GetToken() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	token, err := c.api.GetToken()
	if err != nil {
		return "", fmt.Errorf("get token: %w", err)
	}
	return token, nil
}

// AuthURL returns the URL the listener opens to authorize a token.
func (c *Client) AuthURL(token string) string {
	return fmt.Sprintf("https://www.last.fm/api/auth/?api_key=%s&token=%s", c.apiKey, token)
}

// GetSession exchanges an authorized token for a session key and the
// account's username. Fails until the listener has authorized the token.
func (c *Client) GetSession(token string) (username, sessionKey string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.api.LoginWithToken(token); err != nil {
		return "", "", fmt.Errorf("get session: %w", err)
	}
	sessionKey = c.api.GetSessionKey()

	userInfo, err := c.api.User.GetInfo(nil)
	if err != nil {
		// Session is valid but the username lookup failed; the key is
		// still usable for scrobbling.
		return "unknown", sessionKey, nil //nolint:nilerr // username is optional
	}
	return userInfo.Name, sessionKey, nil
}

// WaitForSession polls GetSession until the listener authorizes the token,
// the context is cancelled, or the attempts run out.
func (c *Client) WaitForSession(ctx context.Context, token string) (username, sessionKey string, err error) {
	for range sessionPollAttempts {
		username, sessionKey, err = c.GetSession(token)
		if err == nil {
			return username, sessionKey, nil
		}

		select {
		case <-ctx.Done():
			return "", "", ctx.Err()
		case <-time.After(sessionPollInterval):
		}
	}
	return "", "", fmt.Errorf("token was not authorized: %w", err)
}
