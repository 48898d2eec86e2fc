package accounts

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func mustSite(t *testing.T, rawURL, secret, account string) *Site {
	t.Helper()
	site, err := NewSite(rawURL, secret, account)
	require.NoError(t, err)
	return site
}

// aliceStore is a store with one default profile holding one site.
func aliceStore(t *testing.T, secret string) *Store {
	t.Helper()
	s := NewStore("a@example.com")
	p, err := s.AddProfile("alice")
	require.NoError(t, err)
	require.NoError(t, p.UpdateSite(mustSite(t, "https://mail.example.com", secret, "a@example.com")))
	return s
}
