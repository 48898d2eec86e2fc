package workflows

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kuenishi/baccounts/internal/accounts"
	"github.com/kuenishi/baccounts/internal/audit"
	berrors "github.com/kuenishi/baccounts/internal/errors"
	"github.com/kuenishi/baccounts/internal/gateway"
)

func TestInit_RefusesToOverwrite(t *testing.T) {
	env := testEnv(t)
	ctx := context.Background()

	result, err := Init(ctx, env, InitOptions{DefaultAccount: "a@example.com", Profile: "alice"})
	require.NoError(t, err)
	assert.Equal(t, env.StorePath, result.StorePath)

	_, err = Init(ctx, env, InitOptions{})
	require.ErrorIs(t, err, berrors.ErrFileExists)

	_, err = Init(ctx, env, InitOptions{DefaultAccount: "b@example.com", Force: true})
	require.NoError(t, err)
	store := load(t, env)
	assert.Equal(t, "b@example.com", store.DefaultAccount)
	assert.Empty(t, store.Profiles)
}

func TestInit_NoRecipient(t *testing.T) {
	env := testEnv(t)
	env.Recipient = ""

	_, err := Init(context.Background(), env, InitOptions{})
	require.ErrorIs(t, err, berrors.ErrNoRecipient)
	assert.NoFileExists(t, env.StorePath)
}

func TestList(t *testing.T) {
	env := testEnv(t)
	seed(t, env)

	result, err := List(context.Background(), env, ListOptions{})
	require.NoError(t, err)

	require.Len(t, result.Profiles, 2)
	alice := result.Profiles[0]
	assert.Equal(t, "alice", alice.Name)
	assert.True(t, alice.Default)
	require.Len(t, alice.Sites, 2)
	assert.Equal(t, "a.example.com", alice.Sites[0].Host)
	assert.Equal(t, "mail.example.com", alice.Sites[1].Host)
	assert.Empty(t, result.Profiles[1].Sites)

	_, err = List(context.Background(), env, ListOptions{Profile: "carol"})
	require.ErrorIs(t, err, berrors.ErrNotFound)
}

func TestList_MissingStore(t *testing.T) {
	env := testEnv(t)

	_, err := List(context.Background(), env, ListOptions{})
	require.ErrorIs(t, err, berrors.ErrNotFound)
}

func TestShow_CopiesToClipboard(t *testing.T) {
	env := testEnv(t)
	seed(t, env)
	copied := stubClipboard(t)

	result, err := Show(context.Background(), env, ShowOptions{Query: "mail"})
	require.NoError(t, err)

	assert.True(t, result.Copied)
	assert.Nil(t, result.Password)
	assert.Empty(t, result.Site.Secret)
	assert.Equal(t, "mail.example.com", result.Site.Name)
	assert.Equal(t, []string{"mail-pass"}, *copied)
}

func TestShow_Print(t *testing.T) {
	env := testEnv(t)
	seed(t, env)
	copied := stubClipboard(t)

	result, err := Show(context.Background(), env, ShowOptions{Profile: "alice", Query: "a.example", Print: true})
	require.NoError(t, err)

	assert.False(t, result.Copied)
	assert.Equal(t, "a-pass-word", string(result.Password))
	assert.Empty(t, *copied)
}

func TestShow_AmbiguousQuery(t *testing.T) {
	env := testEnv(t)
	seed(t, env)
	stubClipboard(t)

	_, err := Show(context.Background(), env, ShowOptions{Query: "example"})
	require.ErrorIs(t, err, berrors.ErrAmbiguousOrMissingSite)

	_, err = Show(context.Background(), env, ShowOptions{Profile: "bob", Query: "mail"})
	require.ErrorIs(t, err, berrors.ErrAmbiguousOrMissingSite)

	_, err = Show(context.Background(), env, ShowOptions{Profile: "ghost", Query: "mail"})
	require.ErrorIs(t, err, berrors.ErrNotFound)
}

func TestShow_ClipboardFailure(t *testing.T) {
	env := testEnv(t)
	seed(t, env)
	orig := writeClipboard
	t.Cleanup(func() { writeClipboard = orig })
	writeClipboard = func(string) error { return errors.New("no clipboard utilities available") }

	_, err := Show(context.Background(), env, ShowOptions{Query: "mail"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "clipboard")
}

func TestGenerate(t *testing.T) {
	env := testEnv(t)
	seed(t, env)
	copied := stubClipboard(t)

	result, err := Generate(context.Background(), env, GenerateOptions{Profile: "bob", URL: "https://news.example.com/signin"})
	require.NoError(t, err)

	assert.Equal(t, "news.example.com", result.Host)
	assert.Equal(t, "a@example.com", result.Account)
	assert.False(t, result.Replaced)
	require.Len(t, *copied, 1)
	assert.Len(t, (*copied)[0], 16)

	site, err := load(t, env).FindProfile("bob").FindSite("news")
	require.NoError(t, err)
	secret, err := site.DecodeSecret()
	require.NoError(t, err)
	assert.Equal(t, (*copied)[0], string(secret))
}

func TestGenerate_ExistingSite(t *testing.T) {
	env := testEnv(t)
	seed(t, env)
	stubClipboard(t)
	ctx := context.Background()

	_, err := Generate(ctx, env, GenerateOptions{URL: "https://mail.example.com/other"})
	require.ErrorIs(t, err, berrors.ErrSiteExists)

	result, err := Generate(ctx, env, GenerateOptions{URL: "https://mail.example.com/other", Force: true, Print: true, Length: 24, Charset: "ascii"})
	require.NoError(t, err)
	assert.True(t, result.Replaced)
	assert.Len(t, result.Password, 24)

	alice := load(t, env).FindProfile("alice")
	assert.Len(t, alice.Sites, 2)
	assert.Equal(t, "https://mail.example.com/other", alice.Sites["mail.example.com"].URL)
}

func TestGenerate_InvalidURL(t *testing.T) {
	env := testEnv(t)
	seed(t, env)
	before, err := os.ReadFile(env.StorePath)
	require.NoError(t, err)

	_, err = Generate(context.Background(), env, GenerateOptions{URL: "mail.example.com"})
	require.ErrorIs(t, err, berrors.ErrInvalidURL)

	after, err := os.ReadFile(env.StorePath)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestUpdate(t *testing.T) {
	env := testEnv(t)
	seed(t, env)
	ctx := context.Background()

	_, err := Update(ctx, env, UpdateOptions{Query: "mail", Password: []byte("short")})
	require.ErrorIs(t, err, berrors.ErrPasswordTooShort)

	result, err := Update(ctx, env, UpdateOptions{Query: "mail", Password: []byte("a brand new secret")})
	require.NoError(t, err)
	assert.Equal(t, "mail.example.com", result.Host)

	site := load(t, env).FindProfile("alice").Sites["mail.example.com"]
	secret, err := site.DecodeSecret()
	require.NoError(t, err)
	assert.Equal(t, "a brand new secret", string(secret))
	assert.Equal(t, "https://mail.example.com/login", site.URL)
	assert.Equal(t, "a@example.com", site.Account)
}

func TestRemove(t *testing.T) {
	env := testEnv(t)
	seed(t, env)

	result, err := Remove(context.Background(), env, RemoveOptions{Query: "a.example"})
	require.NoError(t, err)
	assert.Equal(t, "a.example.com", result.Host)

	alice := load(t, env).FindProfile("alice")
	assert.Equal(t, []string{"mail.example.com"}, alice.Hosts())
}

func TestAddProfileAndSetDefault(t *testing.T) {
	env := testEnv(t)
	seed(t, env)
	ctx := context.Background()

	_, err := AddProfile(ctx, env, AddProfileOptions{Name: "bob"})
	require.ErrorIs(t, err, berrors.ErrProfileExists)

	added, err := AddProfile(ctx, env, AddProfileOptions{Name: "carol"})
	require.NoError(t, err)
	assert.False(t, added.Default)

	result, err := SetDefault(ctx, env, SetDefaultOptions{Name: "carol"})
	require.NoError(t, err)
	assert.Equal(t, "alice", result.Previous)
	assert.Equal(t, "carol", load(t, env).FindProfile("").Name)

	_, err = SetDefault(ctx, env, SetDefaultOptions{Name: "ghost"})
	require.ErrorIs(t, err, berrors.ErrNotFound)
}

func TestDiff_TwoFiles(t *testing.T) {
	env := testEnv(t)
	seed(t, env)
	ctx := context.Background()

	other := filepath.Join(filepath.Dir(env.StorePath), "other.asc")
	store := load(t, env)
	s, err := accounts.NewSite("https://news.example.com", accounts.EncodeSecret([]byte("news")), "b@example.com")
	require.NoError(t, err)
	require.NoError(t, store.FindProfile("bob").UpdateSite(s))
	require.NoError(t, env.Gateway.Encrypt(ctx, store, env.Recipient, other))

	var out bytes.Buffer
	result, err := Diff(ctx, env, DiffOptions{Left: other}, &out)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Total)
	assert.Equal(t, "--- "+env.StorePath+"\n+++ "+other+"\nbob/news.example.com: only in right\n", out.String())
}

func TestDiff_Against(t *testing.T) {
	env := testEnv(t)
	seed(t, env)
	ctx := context.Background()
	dir := filepath.Join(filepath.Dir(env.StorePath), "backups", "2026")
	require.NoError(t, os.MkdirAll(dir, 0700))

	store := load(t, env)
	require.NoError(t, env.Gateway.Encrypt(ctx, store, env.Recipient, filepath.Join(dir, "a.asc")))
	store.DefaultAccount = "changed@example.com"
	require.NoError(t, env.Gateway.Encrypt(ctx, store, env.Recipient, filepath.Join(dir, "b.asc")))

	var out bytes.Buffer
	pattern := filepath.Join(filepath.Dir(env.StorePath), "backups", "**", "*.asc")
	result, err := Diff(ctx, env, DiffOptions{Against: pattern}, &out)
	require.NoError(t, err)

	require.Len(t, result.Comparisons, 2)
	assert.Equal(t, 0, result.Comparisons[0].Mismatches)
	assert.Equal(t, 1, result.Comparisons[1].Mismatches)
	assert.Equal(t, 1, result.Total)

	_, err = Diff(ctx, env, DiffOptions{Against: filepath.Join(dir, "*.none")}, &out)
	require.ErrorIs(t, err, berrors.ErrNotFound)
}

func TestExport(t *testing.T) {
	env := testEnv(t)
	seed(t, env)
	ctx := context.Background()

	newKey, err := Keygen(KeygenOptions{Name: "laptop", KeysDir: filepath.Join(t.TempDir(), "keys")})
	require.NoError(t, err)

	output := filepath.Join(t.TempDir(), "export.asc")
	result, err := Export(ctx, env, ExportOptions{Recipient: newKey.PublicKey, Output: output})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Profiles)

	// Readable with the new key only.
	laptop := testEnv(t)
	laptop.Gateway = newBoxGateway(t, newKey.PrivateKeyPath)
	exported, err := laptop.Gateway.Decrypt(ctx, output)
	require.NoError(t, err)
	assert.Equal(t, 0, accounts.Diff(load(t, env), exported, nil))

	_, err = env.Gateway.Decrypt(ctx, output)
	require.ErrorIs(t, err, berrors.ErrDecryptFailed)

	_, err = Export(ctx, env, ExportOptions{Recipient: newKey.PublicKey, Output: output})
	require.ErrorIs(t, err, berrors.ErrFileExists)

	_, err = Export(ctx, env, ExportOptions{Recipient: newKey.PublicKey, Output: env.StorePath, Force: true})
	require.Error(t, err)

	_, err = Export(ctx, env, ExportOptions{Output: output, Force: true})
	require.ErrorIs(t, err, berrors.ErrNoRecipient)
}

func TestCheckKey(t *testing.T) {
	env := testEnv(t)

	result, err := CheckKey(context.Background(), env)
	require.NoError(t, err)
	assert.Equal(t, "me", result.Recipient)

	env.Recipient = "nobody"
	_, err = CheckKey(context.Background(), env)
	require.ErrorIs(t, err, berrors.ErrEncryptFailed)
}

func TestMigrate(t *testing.T) {
	env := testEnv(t)
	legacy := filepath.Join(t.TempDir(), "legacy.json")
	doc := `{"Profiles":[{"Name":"alice","Sites":{"mail.example.com":{"Url":"https://mail.example.com","Name":"mail.example.com","EncodedPass":"cw==","Mail":"a@example.com"}},"Default":true}],"DefaultMail":"a@example.com","Version":"0.1.0"}`
	require.NoError(t, os.WriteFile(legacy, []byte(doc), 0600))
	assert.True(t, IsLegacyStore(legacy))

	result, err := Migrate(context.Background(), env, MigrateOptions{From: legacy, RemoveSource: true})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Profiles)
	assert.Equal(t, 1, result.Sites)
	assert.NoError(t, result.Problems)
	assert.True(t, result.SourceRemoved)
	assert.NoFileExists(t, legacy)

	store := load(t, env)
	assert.Equal(t, "0.1.0", store.Version)
	assert.False(t, IsLegacyStore(env.StorePath))

	_, err = Migrate(context.Background(), env, MigrateOptions{Data: []byte(doc)})
	require.ErrorIs(t, err, berrors.ErrFileExists)
}

func TestMigrate_InPlace(t *testing.T) {
	env := testEnv(t)
	require.NoError(t, os.WriteFile(env.StorePath, []byte(`{"Profiles":[],"DefaultMail":"","Version":""}`), 0600))

	_, err := Migrate(context.Background(), env, MigrateOptions{From: env.StorePath})
	require.NoError(t, err)

	store := load(t, env)
	assert.Equal(t, accounts.SchemaVersion, store.Version)
}

func TestMigrate_Malformed(t *testing.T) {
	env := testEnv(t)

	_, err := Migrate(context.Background(), env, MigrateOptions{Data: []byte("not json")})
	require.ErrorIs(t, err, berrors.ErrMalformedStore)
	assert.NoFileExists(t, env.StorePath)
}

func TestKeygen(t *testing.T) {
	dir := t.TempDir()

	_, err := Keygen(KeygenOptions{Name: "../escape", KeysDir: dir})
	require.ErrorIs(t, err, berrors.ErrInvalidKey)

	_, err = Keygen(KeygenOptions{Name: "me", KeysDir: dir})
	require.NoError(t, err)
	_, err = Keygen(KeygenOptions{Name: "me", KeysDir: dir})
	require.ErrorIs(t, err, berrors.ErrFileExists)
}

func TestDoctor_Healthy(t *testing.T) {
	env := testEnv(t)
	seed(t, env)

	result, err := Doctor(context.Background(), env)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Summary.Errors)
	assert.Equal(t, 0, result.Summary.Warnings)
	assert.Empty(t, result.Suggestions)
}

func TestDoctor_FindsProblems(t *testing.T) {
	env := testEnv(t)
	seed(t, env)
	ctx := context.Background()

	store := load(t, env)
	store.Profiles = append(store.Profiles, accounts.NewProfile("alice", true))
	require.NoError(t, env.save(ctx, store))
	require.NoError(t, os.Chmod(env.StorePath, 0644))
	require.NoError(t, os.WriteFile(gateway.TempName(env.StorePath, "1234"), []byte("x"), 0600))

	result, err := Doctor(ctx, env)
	require.NoError(t, err)

	// permissions, temp file, duplicate name, two defaults
	assert.Equal(t, 4, result.Summary.Warnings)
	assert.Equal(t, 0, result.Summary.Errors)

	var messages []string
	for _, c := range result.Checks {
		messages = append(messages, c.Message)
	}
	joined := strings.Join(messages, "\n")
	assert.Contains(t, joined, "duplicate profile name")
	assert.Contains(t, joined, "2 profiles are marked default")
}

func TestDoctor_TempFilesNextToBracketedPath(t *testing.T) {
	env := testEnv(t)
	dir := filepath.Join(filepath.Dir(env.StorePath), "[store]")
	require.NoError(t, os.Mkdir(dir, 0700))
	env.StorePath = filepath.Join(dir, "baccounts[1].asc")
	seed(t, env)
	require.NoError(t, os.WriteFile(gateway.TempName(env.StorePath, "1234"), []byte("x"), 0600))

	result, err := Doctor(context.Background(), env)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Summary.Warnings)
	var found bool
	for _, c := range result.Checks {
		if c.Name == "Temporary files" {
			found = true
			assert.Equal(t, CheckWarning, c.Status)
			assert.Equal(t, "1 temporary files left by failed writes", c.Message)
		}
	}
	assert.True(t, found)
}

func TestDoctor_LegacyStore(t *testing.T) {
	env := testEnv(t)
	require.NoError(t, os.WriteFile(env.StorePath, []byte(`{"Profiles":[]}`), 0600))

	result, err := Doctor(context.Background(), env)
	require.NoError(t, err)
	assert.Contains(t, strings.Join(result.Suggestions, "\n"), "baccounts migrate")
}

func TestDoctor_NoStore(t *testing.T) {
	env := testEnv(t)
	env.Recipient = ""

	result, err := Doctor(context.Background(), env)
	require.NoError(t, err)
	assert.Equal(t, 2, result.Summary.Errors)
}

func TestLog(t *testing.T) {
	env := testEnv(t)
	seed(t, env)
	stubClipboard(t)
	ctx := context.Background()

	_, err := Show(ctx, env, ShowOptions{Query: "mail"})
	require.NoError(t, err)

	result, err := Log(ctx, env, LogOptions{Operations: "show, init"})
	require.NoError(t, err)
	require.Len(t, result.Entries, 2)
	assert.Equal(t, "init", result.Entries[0].Operation)
	assert.Equal(t, "show", result.Entries[1].Operation)
	assert.Equal(t, "mail.example.com", result.Entries[1].Host)

	result, err = Log(ctx, env, LogOptions{Limit: 1, Reverse: true})
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
	assert.Equal(t, "show", result.Entries[0].Operation)

	_, err = Log(ctx, env, LogOptions{Since: "yesterday"})
	require.ErrorIs(t, err, berrors.ErrInvalidDateFormat)

	entries, err := audit.ReadEntries(env.AuditPath)
	require.NoError(t, err)
	for _, e := range entries {
		assert.NotContains(t, e.Host, "pass")
	}
}

func TestLog_Missing(t *testing.T) {
	env := testEnv(t)

	_, err := Log(context.Background(), env, LogOptions{})
	require.ErrorIs(t, err, berrors.ErrNotFound)
}
