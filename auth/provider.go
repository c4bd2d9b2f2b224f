package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"oasis/models"
)

// Provider turns a credential from the upstream identity provider into an Identity.
type Provider interface {
	Verify(ctx context.Context, credential string) (Identity, error)
}

const googleTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

// GoogleProvider verifies Google ID tokens against the tokeninfo endpoint.
type GoogleProvider struct {
	ClientID string
	Endpoint string
	Client   *http.Client
}

func NewGoogleProvider(clientID string) *GoogleProvider {
	return &GoogleProvider{
		ClientID: clientID,
		Endpoint: googleTokenInfoURL,
		Client:   &http.Client{Timeout: 10 * time.Second},
	}
}

type googleTokenInfo struct {
	Aud           string `json:"aud"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// Verify refuses every token when no client id is configured.
func (g *GoogleProvider) Verify(ctx context.Context, credential string) (Identity, error) {
	if credential == "" {
		return Identity{}, fmt.Errorf("%w: empty credential", models.ErrUnauthorized)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.Endpoint+"?id_token="+url.QueryEscape(credential), nil)
	if err != nil {
		return Identity{}, err
	}
	res, err := g.Client.Do(req)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: tokeninfo: %w", models.ErrLoadFailed, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return Identity{}, fmt.Errorf("%w: tokeninfo returned %d", models.ErrUnauthorized, res.StatusCode)
	}
	var info googleTokenInfo
	if err := json.NewDecoder(res.Body).Decode(&info); err != nil {
		return Identity{}, fmt.Errorf("%w: tokeninfo body: %w", models.ErrLoadFailed, err)
	}
	if g.ClientID == "" || info.Aud != g.ClientID {
		return Identity{}, fmt.Errorf("%w: token issued for another client", models.ErrUnauthorized)
	}
	if info.EmailVerified != "true" {
		return Identity{}, fmt.Errorf("%w: email not verified", models.ErrUnauthorized)
	}
	return Identity{Email: info.Email, Name: info.Name, Image: info.Picture}, nil
}
