package accounts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	berrors "github.com/kuenishi/baccounts/internal/errors"
)

func TestMarshal_FieldNamesAndOrder(t *testing.T) {
	data, err := Marshal(aliceStore(t, "czE="))
	require.NoError(t, err)

	want := `{
  "Profiles": [
    {
      "Name": "alice",
      "Sites": {
        "mail.example.com": {
          "Url": "https://mail.example.com",
          "Name": "mail.example.com",
          "EncodedPass": "czE=",
          "Mail": "a@example.com"
        }
      },
      "Default": true
    }
  ],
  "DefaultMail": "a@example.com",
  "Version": "0.2.0"
}
`
	assert.Equal(t, want, string(data))
}

func TestMarshal_DoesNotEscapeURLs(t *testing.T) {
	s := NewStore("")
	p, err := s.AddProfile("alice")
	require.NoError(t, err)
	require.NoError(t, p.UpdateSite(&Site{URL: "https://example.com/login?a=1&b=2"}))

	data, err := Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(data), "?a=1&b=2")
}

func TestParse_LegacyDocument(t *testing.T) {
	legacy := `{"Profiles":[{"Name":"me@mac.com","Sites":{"a.com":{"Url":"https://a.com","Name":"me","EncodedPass":"c2VjcmV0","Mail":"me@mac.com"}},"Default":true},{"Name":"empty","Sites":null,"Default":false}],"DefaultMail":"me@mac.com","Version":"0.1.0"}`

	s, err := Parse([]byte(legacy))
	require.NoError(t, err)
	require.Len(t, s.Profiles, 2)
	assert.Equal(t, "0.1.0", s.Version)
	assert.Equal(t, "me@mac.com", s.DefaultAccount)
	assert.Equal(t, "https://a.com", s.FindProfile("").Sites["a.com"].URL)
	assert.NotNil(t, s.Profiles[1].Sites)
}

func TestParse_Malformed(t *testing.T) {
	tests := map[string]string{
		"empty":        "",
		"garbage":      "-----BEGIN PGP MESSAGE-----",
		"null":         "null",
		"wrong type":   `{"Profiles": "nope"}`,
		"null profile": `{"Profiles": [null]}`,
		"null site":    `{"Profiles": [{"Name": "a", "Sites": {"x": null}}]}`,
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(doc))
			require.ErrorIs(t, err, berrors.ErrMalformedStore)
		})
	}
}

func TestMarshalParse_RoundTrip(t *testing.T) {
	s := aliceStore(t, "czE=")
	bob, err := s.AddProfile("bob")
	require.NoError(t, err)
	require.NoError(t, bob.UpdateSite(mustSite(t, "https://git.example.org:8443/x", "eXk=", "bob@example.org")))

	data, err := Marshal(s)
	require.NoError(t, err)
	back, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, s, back)
	assert.True(t, strings.HasSuffix(string(data), "}\n"))
}
