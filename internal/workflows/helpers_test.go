package workflows

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/kuenishi/baccounts/internal/accounts"
	"github.com/kuenishi/baccounts/internal/gateway"
	logger "github.com/kuenishi/baccounts/internal/logging"
)

// testEnv returns an Env backed by a fresh box key pair in a temp dir.
func testEnv(t *testing.T) *Env {
	t.Helper()
	dir := t.TempDir()
	keysDir := filepath.Join(dir, "keys")

	result, err := Keygen(KeygenOptions{Name: "me", KeysDir: keysDir})
	require.NoError(t, err)

	log := logger.Logger{Out: &bytes.Buffer{}, Err: &bytes.Buffer{}}
	return &Env{
		Gateway:   gateway.New(&gateway.Box{KeysDir: keysDir, Identity: result.PrivateKeyPath}, log),
		StorePath: filepath.Join(dir, "baccounts.asc"),
		Recipient: "me",
		AuditPath: filepath.Join(dir, "audit.jsonl"),
		Logger:    log,
	}
}

// seed writes a store with profiles alice (default) and bob.
func seed(t *testing.T, env *Env) {
	t.Helper()
	_, err := Init(context.Background(), env, InitOptions{DefaultAccount: "a@example.com", Profile: "alice"})
	require.NoError(t, err)
	_, err = AddProfile(context.Background(), env, AddProfileOptions{Name: "bob"})
	require.NoError(t, err)

	store := load(t, env)
	alice := store.FindProfile("alice")
	for _, site := range []struct{ url, secret string }{
		{"https://mail.example.com/login", "mail-pass"},
		{"https://a.example.com", "a-pass-word"},
	} {
		s, err := accounts.NewSite(site.url, accounts.EncodeSecret([]byte(site.secret)), "a@example.com")
		require.NoError(t, err)
		require.NoError(t, alice.UpdateSite(s))
	}
	require.NoError(t, env.save(context.Background(), store))
}

func load(t *testing.T, env *Env) *accounts.Store {
	t.Helper()
	store, err := env.load(context.Background())
	require.NoError(t, err)
	return store
}

// stubClipboard captures clipboard writes for the test.
func stubClipboard(t *testing.T) *[]string {
	t.Helper()
	orig := writeClipboard
	t.Cleanup(func() { writeClipboard = orig })

	var copied []string
	writeClipboard = func(text string) error {
		copied = append(copied, text)
		return nil
	}
	return &copied
}

func newBoxGateway(t *testing.T, identity string) *gateway.Gateway {
	t.Helper()
	log := logger.Logger{Out: &bytes.Buffer{}, Err: &bytes.Buffer{}}
	return gateway.New(&gateway.Box{Identity: identity}, log)
}
