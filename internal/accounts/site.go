package accounts

import (
	"encoding/base64"
	"fmt"
	"net/url"

	berrors "github.com/kuenishi/baccounts/internal/errors"
)

// Site is one credential record.
type Site struct {
	URL     string `json:"Url"`
	Name    string `json:"Name"`
	Secret  string `json:"EncodedPass"`
	Account string `json:"Mail"`
}

// NewSite builds a site for rawURL, deriving its display name from the host.
func NewSite(rawURL, secret, account string) (*Site, error) {
	host, err := HostOf(rawURL)
	if err != nil {
		return nil, err
	}
	return &Site{
		URL:     rawURL,
		Name:    host,
		Secret:  secret,
		Account: account,
	}, nil
}

// HostOf returns the host component of rawURL, which is the key a site is
// stored under.
func HostOf(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", berrors.ErrInvalidURL, rawURL, err)
	}
	if u.Host == "" {
		return "", fmt.Errorf("%w: %q has no host", berrors.ErrInvalidURL, rawURL)
	}
	return u.Host, nil
}

// EncodeSecret encodes raw secret bytes into the string form kept in Site.Secret.
func EncodeSecret(secret []byte) string {
	return base64.StdEncoding.EncodeToString(secret)
}

// DecodeSecret returns the raw secret bytes.
func (s *Site) DecodeSecret() ([]byte, error) {
	b, err := base64.StdEncoding.DecodeString(s.Secret)
	if err != nil {
		return nil, fmt.Errorf("decoding secret for %s: %w", s.URL, err)
	}
	return b, nil
}

func (s *Site) clone() *Site {
	c := *s
	return &c
}
