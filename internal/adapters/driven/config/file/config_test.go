package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/trackbot/internal/core/domain"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trackbot.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
template_dir = "/etc/trackbot/templates"

[telegram]
token = "123:abc"

[tracker]
url = "https://yt.example.com/api"
backlog_query = "project: TP #Unresolved"
page_size = 10

[auth]
hub_url = "https://hub.example.com"
client_id = "client-1"

[storage]
backend = "sqlite"
data_dir = "/var/lib/trackbot"

[codec]
strategy = "handle"
handle_capacity = 50
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.Telegram.Token)
	assert.Equal(t, "https://yt.example.com/api", cfg.Tracker.URL)
	assert.Equal(t, "project: TP #Unresolved", cfg.Tracker.BacklogQuery)
	assert.Equal(t, 10, cfg.Tracker.PageSize)
	assert.Equal(t, domain.StorageSQLite, cfg.Storage.Backend)
	assert.Equal(t, domain.CodecHandle, cfg.Codec.Strategy)
	assert.Equal(t, 50, cfg.Codec.HandleCapacity)
	assert.Equal(t, "/etc/trackbot/templates", cfg.TemplateDir)

	// Defaults fill the rest.
	assert.Equal(t, "Stream", cfg.Tracker.StreamField)
	assert.Equal(t, domain.CodecStrategy("handle"), cfg.Codec.Strategy)
}

func TestLoad_MissingFile_EnvOnly(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("YOUTRACK_URL", "https://yt.example.com/api")
	t.Setenv("YOUTRACK_HUB_URL", "https://hub.example.com")
	t.Setenv("YOUTRACK_CLIENTID", "client-1")

	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.Telegram.Token)
	assert.Equal(t, "client-1", cfg.Auth.ClientID)
	assert.Equal(t, domain.StorageMemory, cfg.Storage.Backend)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, `
[telegram]
token = "from-file"

[tracker]
url = "https://yt.example.com/api"

[auth]
hub_url = "https://hub.example.com"
client_id = "client-1"
`)
	t.Setenv("TELEGRAM_BOT_TOKEN", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Telegram.Token)
}

func TestLoad_InvalidTOML(t *testing.T) {
	path := writeConfig(t, "telegram = [broken")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing")
}

func TestLoad_IncompleteConfig(t *testing.T) {
	path := writeConfig(t, `
[telegram]
token = "123:abc"
`)

	_, err := Load(path)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
