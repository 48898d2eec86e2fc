package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kuenishi/baccounts/internal/audit"
	"github.com/kuenishi/baccounts/internal/gateway"
	"github.com/kuenishi/baccounts/internal/workflows"
)

const legacyStore = `{
  "Version": "",
  "DefaultMail": "old@example.com",
  "Profiles": [
    {
      "Name": "legacy",
      "Default": true,
      "Sites": {
        "old.example.com": {
          "Url": "https://old.example.com",
          "Name": "old.example.com",
          "EncodedPass": "b2xkLXBhc3N3b3Jk",
          "Mail": "old@example.com"
        }
      }
    }
  ]
}
`

func TestExportAndDiff(t *testing.T) {
	home := setupBoxStore(t)
	mustRun(t, "generate", "https://mail.example.com", "--print")

	backup := filepath.Join(home, "backup.asc")
	output := mustRun(t, "export", "--recipient", "me", "--output", backup)
	assert.Contains(t, output, "Exported 1 profile(s)")

	output = mustRun(t, "diff", backup)
	assert.Contains(t, output, "No differences in 1 comparison(s)")

	mustRun(t, "generate", "https://news.example.com", "--print")
	output, err := runCLI("diff", backup)
	assert.Equal(t, 1, exitCode(err))
	assert.Contains(t, output, "alice/news.example.com: only in left")
	assert.Contains(t, output, "1 difference(s) found")
}

func TestExport_RefusesExistingOutput(t *testing.T) {
	home := setupBoxStore(t)
	backup := filepath.Join(home, "backup.asc")
	mustRun(t, "export", "--recipient", "me", "--output", backup)

	output, err := runCLI("export", "--recipient", "me", "--output", backup)
	assert.Equal(t, 1, exitCode(err))
	assert.Contains(t, output, "file already exists")

	mustRun(t, "export", "--recipient", "me", "--output", backup, "--force")
}

func TestDiff_Against(t *testing.T) {
	home := setupBoxStore(t)
	backups := filepath.Join(home, "backups")
	mustRun(t, "export", "--recipient", "me", "--output", filepath.Join(backups, "2024", "a.asc"))
	mustRun(t, "export", "--recipient", "me", "--output", filepath.Join(backups, "2025", "b.asc"))

	output := mustRun(t, "diff", "--against", filepath.Join(backups, "**", "*.asc"))
	assert.Contains(t, output, "No differences in 2 comparison(s)")

	output, err := runCLI("diff", "--against", filepath.Join(home, "nothing", "*.asc"))
	assert.Equal(t, 2, exitCode(err))
	assert.Contains(t, output, "no store files match")
}

func TestDiff_NeedsArgument(t *testing.T) {
	setupBoxStore(t)

	_, err := runCLI("diff")
	require.Error(t, err)
	assert.Equal(t, -1, exitCode(err))
}

func TestTestCommand(t *testing.T) {
	setupBoxStore(t)

	output := mustRun(t, "test")
	assert.Contains(t, output, "Encrypted and decrypted for 'me'")

	mustRun(t, "config", "set-recipient", "nobody")
	output, err := runCLI("test")
	assert.Equal(t, 1, exitCode(err))
	assert.Contains(t, output, "Key test failed")
}

func TestDoctor_Healthy(t *testing.T) {
	setupBoxStore(t)

	output, err := runCLI("doctor", "--json")
	require.NoError(t, err, output)

	var result struct {
		Checks []struct {
			Name   string `json:"name"`
			Status string `json:"status"`
		} `json:"checks"`
		Summary workflows.DoctorSummary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(output), &result))
	assert.Zero(t, result.Summary.Errors)
	assert.Zero(t, result.Summary.Warnings)
	assert.Equal(t, len(result.Checks), result.Summary.Passed)
	for _, check := range result.Checks {
		assert.Equal(t, "pass", check.Status, check.Name)
	}
}

func TestDoctor_LeftoverTempFile(t *testing.T) {
	home := setupBoxStore(t)
	leftover := gateway.TempName(filepath.Join(home, ".baccounts"), "deadbeef")
	require.NoError(t, os.WriteFile(leftover, []byte("partial"), 0600))

	output, err := runCLI("doctor")
	assert.Equal(t, 1, exitCode(err))
	assert.Contains(t, output, "1 temporary files left by failed writes")
	assert.Contains(t, output, "Health checks completed with warnings")
}

func TestDoctor_MissingStore(t *testing.T) {
	setupTestEnvironment(t)
	mustRun(t, "keygen", "--name", "me", "--use")

	output, err := runCLI("doctor")
	assert.Equal(t, 2, exitCode(err))
	assert.Contains(t, output, "Run 'baccounts init' to create a store")
}

func TestMigrate_InPlace(t *testing.T) {
	home := setupTestEnvironment(t)
	mustRun(t, "keygen", "--name", "me", "--use")
	storePath := filepath.Join(home, ".baccounts")
	require.NoError(t, os.WriteFile(storePath, []byte(legacyStore), 0600))

	output, err := runCLI("doctor")
	assert.Equal(t, 2, exitCode(err))
	assert.Contains(t, output, "is an unencrypted store")

	output = mustRun(t, "migrate")
	assert.Contains(t, output, "Encrypted 1 profile(s) and 1 site(s)")

	data, err := os.ReadFile(storePath)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "EncodedPass")

	output = mustRun(t, "show", "old", "--print")
	assert.Equal(t, "old-password", lastLine(output))
}

func TestMigrate_FromFileRemovesSource(t *testing.T) {
	home := setupTestEnvironment(t)
	mustRun(t, "keygen", "--name", "me", "--use")
	source := filepath.Join(home, "plain.json")
	require.NoError(t, os.WriteFile(source, []byte(legacyStore), 0600))

	output := mustRun(t, "migrate", "--from", source, "--remove-source")
	assert.Contains(t, output, "Removed "+source)
	assert.NoFileExists(t, source)

	output = mustRun(t, "list", "--format", "json")
	assert.Contains(t, output, `"legacy"`)
}

func TestKeygen_RefusesExistingKey(t *testing.T) {
	setupTestEnvironment(t)
	output := mustRun(t, "keygen", "--name", "laptop")
	assert.Contains(t, output, "laptop.pub")

	output, err := runCLI("keygen", "--name", "laptop")
	assert.Equal(t, 1, exitCode(err))
	assert.Contains(t, output, "file already exists")

	_, err = runCLI("keygen", "--name", "../escape")
	assert.Equal(t, 1, exitCode(err))
}

func TestLog_RecordsOperations(t *testing.T) {
	setupBoxStore(t)
	mustRun(t, "generate", "https://mail.example.com", "--print")
	mustRun(t, "show", "mail", "--print")

	output := mustRun(t, "log", "--json")
	var entries []audit.Entry
	require.NoError(t, json.Unmarshal([]byte(output), &entries))

	var ops []string
	for _, e := range entries {
		ops = append(ops, e.Operation)
	}
	assert.Equal(t, []string{"init", "generate", "show"}, ops)
	assert.Equal(t, "mail.example.com", entries[2].Host)

	output = mustRun(t, "log", "--operation", "show", "--oneline")
	assert.Contains(t, output, "show profile=alice host=mail.example.com")
	assert.NotContains(t, output, "generate")

	output, err := runCLI("log", "--since", "yesterday")
	assert.Equal(t, 1, exitCode(err))
	assert.Contains(t, output, "invalid date format")
}

func TestLog_NoLog(t *testing.T) {
	setupTestEnvironment(t)

	output := mustRun(t, "log")
	assert.Contains(t, output, "No audit log found")
}

func TestConfig_InitShowAndSetRecipient(t *testing.T) {
	home := setupTestEnvironment(t)

	output := mustRun(t, "config", "show")
	assert.Contains(t, output, "not found, using defaults")
	assert.Contains(t, output, "(not set)")

	output = mustRun(t, "config", "init")
	configPath := filepath.Join(home, ".config", "baccounts", "config.toml")
	assert.Contains(t, output, "Wrote "+configPath)
	assert.FileExists(t, configPath)

	_, err := runCLI("config", "init")
	assert.Equal(t, 1, exitCode(err))

	mustRun(t, "config", "set-recipient", "0xDEADBEEF")
	output = mustRun(t, "config", "show", "--json")
	assert.Contains(t, output, `"Recipient": "0xDEADBEEF"`)
	assert.Contains(t, output, `"Backend": "gpg"`)
}
