package accounts

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiff_Identity(t *testing.T) {
	s := aliceStore(t, "czE=")
	_, err := s.AddProfile("bob")
	require.NoError(t, err)

	var out bytes.Buffer
	assert.Equal(t, 0, Diff(s, s, &out))
	assert.Empty(t, out.String())
}

func TestDiff_EmptyStores(t *testing.T) {
	assert.Equal(t, 0, Diff(NewStore(""), NewStore(""), nil))
}

func TestDiff_SecretOnly(t *testing.T) {
	a := aliceStore(t, "s1")
	b := aliceStore(t, "s2")

	var out bytes.Buffer
	count := Diff(a, b, &out)

	assert.Equal(t, 1, count)
	report := out.String()
	assert.Contains(t, report, "secret mismatch")
	assert.Contains(t, report, "(2 bytes) != (2 bytes)")
	assert.NotContains(t, report, "s1")
	assert.NotContains(t, report, "s2")
}

func TestDiff_SecretLengthsOnly(t *testing.T) {
	a := aliceStore(t, "short")
	b := aliceStore(t, "much-longer-secret")

	var out bytes.Buffer
	require.Equal(t, 1, Diff(a, b, &out))
	assert.Equal(t, "alice/mail.example.com: secret mismatch: (5 bytes) != (18 bytes)\n", out.String())
}

func TestDiff_StoreFields(t *testing.T) {
	a := aliceStore(t, "s1")
	b := aliceStore(t, "s1")
	b.Version = "0.1.0"
	b.DefaultAccount = "b@example.com"

	var out bytes.Buffer
	assert.Equal(t, 2, Diff(a, b, &out))
	assert.Contains(t, out.String(), `default account mismatch: "a@example.com" != "b@example.com"`)
	assert.Contains(t, out.String(), `version mismatch: "0.2.0" != "0.1.0"`)
}

func TestDiff_EverySiteField(t *testing.T) {
	a := aliceStore(t, "s1")
	b := aliceStore(t, "s1")
	site := b.Profiles[0].Sites["mail.example.com"]
	site.URL = "https://mail.example.com/inbox"
	site.Name = "Mail"
	site.Secret = "s22"
	site.Account = "b@example.com"

	var out bytes.Buffer
	assert.Equal(t, 4, Diff(a, b, &out))
	assert.Len(t, strings.Split(strings.TrimSpace(out.String()), "\n"), 4)
}

func TestDiff_IsSymmetricInCount(t *testing.T) {
	a := aliceStore(t, "s1")
	b := aliceStore(t, "s2")
	_, err := b.AddProfile("bob")
	require.NoError(t, err)

	assert.Equal(t, Diff(a, b, nil), Diff(b, a, nil))
}

func TestDiff_Report(t *testing.T) {
	left := NewStore("a@example.com")
	alice, err := left.AddProfile("alice")
	require.NoError(t, err)
	require.NoError(t, alice.UpdateSite(mustSite(t, "https://mail.example.com", "czE=", "a@example.com")))
	bob, err := left.AddProfile("bob")
	require.NoError(t, err)
	require.NoError(t, bob.UpdateSite(mustSite(t, "https://git.example.org", "Ym9i", "b@example.org")))

	right := NewStore("a@example.com")
	right.Version = "0.1.0"
	alice2, err := right.AddProfile("alice")
	require.NoError(t, err)
	require.NoError(t, alice2.UpdateSite(mustSite(t, "https://mail.example.com", "c2Vjb25k", "alice@example.com")))
	require.NoError(t, alice2.UpdateSite(mustSite(t, "https://news.example.com", "bmV3cw==", "alice@example.com")))
	_, err = right.AddProfile("carol")
	require.NoError(t, err)

	var out bytes.Buffer
	assert.Equal(t, 6, Diff(left, right, &out))

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "diff_report", out.Bytes())
}
