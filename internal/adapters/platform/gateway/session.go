package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/precieux0/instagram-repo2/internal/domain"
)

// sessionState is what DumpSession serializes. The core treats it as an
// opaque blob.
type sessionState struct {
	Token    string       `json:"token"`
	DeviceID string       `json:"device_id,omitempty"`
	UserID   string       `json:"user_id,omitempty"`
	Device   deviceSchema `json:"device"`
}

type deviceSchema struct {
	UserAgent      string `json:"user_agent"`
	AppVersion     string `json:"app_version"`
	AndroidVersion int    `json:"android_version"`
	AndroidRelease string `json:"android_release"`
	DPI            string `json:"dpi"`
	Resolution     string `json:"resolution"`
	Manufacturer   string `json:"manufacturer"`
	Device         string `json:"device"`
	Model          string `json:"model"`
}

type loginRequest struct {
	Username string       `json:"username"`
	Password string       `json:"password"`
	Device   deviceSchema `json:"device"`
}

type loginResponse struct {
	Token    string     `json:"token"`
	DeviceID string     `json:"device_id"`
	User     userSchema `json:"user"`
}

// ApplyProfile sets the device identity used by the next login and every
// request after it.
func (c *Client) ApplyProfile(profile domain.DeviceProfile) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.profile = profile
}

func (c *Client) Login(ctx context.Context, username, password string) error {
	c.mu.Lock()
	profile := c.profile
	c.session = sessionState{}
	c.mu.Unlock()

	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/v1/login", nil, loginRequest{
		Username: username,
		Password: password,
		Device:   toDeviceSchema(profile),
	}, &resp)
	if err != nil {
		return err
	}
	if resp.Token == "" {
		return errors.New("login response missing token")
	}

	c.mu.Lock()
	c.session = sessionState{Token: resp.Token, DeviceID: resp.DeviceID, UserID: resp.User.ID, Device: toDeviceSchema(profile)}
	c.mu.Unlock()
	return nil
}

func (c *Client) LoadSession(blob []byte) error {
	var state sessionState
	if err := json.Unmarshal(blob, &state); err != nil {
		return fmt.Errorf("decode session: %w", err)
	}
	if state.Token == "" {
		return fmt.Errorf("session has no token: %w", domain.ErrLoginRequired)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = state
	if state.Device.UserAgent != "" {
		c.profile = state.Device.toDomain()
	}
	return nil
}

func (c *Client) DumpSession() ([]byte, error) {
	c.mu.RLock()
	state := c.session
	c.mu.RUnlock()

	if state.Token == "" {
		return nil, errors.New("no active session")
	}
	data, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("encode session: %w", err)
	}
	return data, nil
}

func (c *Client) CurrentAccount(ctx context.Context) (domain.UserInfo, error) {
	var user userSchema
	if err := c.do(ctx, http.MethodGet, "/v1/accounts/current", nil, nil, &user); err != nil {
		return domain.UserInfo{}, err
	}
	return user.toDomain(), nil
}

func toDeviceSchema(p domain.DeviceProfile) deviceSchema {
	return deviceSchema{
		UserAgent:      p.UserAgent,
		AppVersion:     p.AppVersion,
		AndroidVersion: p.AndroidVersion,
		AndroidRelease: p.AndroidRelease,
		DPI:            p.DPI,
		Resolution:     p.Resolution,
		Manufacturer:   p.Manufacturer,
		Device:         p.Device,
		Model:          p.Model,
	}
}

func (d deviceSchema) toDomain() domain.DeviceProfile {
	return domain.DeviceProfile{
		UserAgent:      d.UserAgent,
		AppVersion:     d.AppVersion,
		AndroidVersion: d.AndroidVersion,
		AndroidRelease: d.AndroidRelease,
		DPI:            d.DPI,
		Resolution:     d.Resolution,
		Manufacturer:   d.Manufacturer,
		Device:         d.Device,
		Model:          d.Model,
	}
}
