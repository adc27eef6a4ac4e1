package simplenote

import (
	"context"
	"encoding/base64"
	"net/url"

	"github.com/henrytill/simplenote-go/internal/simplenote"
)

// Login authenticates and stores the returned token. The previous session is
// kept when login fails.
func (c *Client) Login(ctx context.Context, email, password string) error {
	form := "email=" + url.QueryEscape(email) + "&password=" + url.QueryEscape(password)
	body := base64.StdEncoding.EncodeToString([]byte(form))

	resp, err := c.post(ctx, "login", body, nil)
	if err != nil {
		return err
	}

	c.session = simplenote.Session{
		Email: email,
		Token: resp.Body,
	}

	c.log.Info("logged in", "email", email)

	return nil
}
