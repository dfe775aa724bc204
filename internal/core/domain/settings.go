package domain

import "fmt"

// CodecStrategy selects how callback parameters are bound to correlation
// tokens.
type CodecStrategy string

// Available codec strategies.
const (
	// CodecCompact serializes the payload directly into the token.
	// Restart-safe; every token stays decodable for the life of the
	// message it is attached to.
	CodecCompact CodecStrategy = "compact"

	// CodecHandle stores the payload in a bounded in-process cache and
	// puts only a random handle on the wire. Tokens die with the process
	// and each decodes at most once.
	CodecHandle CodecStrategy = "handle"
)

// IsValid returns true if the strategy is recognised.
func (s CodecStrategy) IsValid() bool {
	return s == CodecCompact || s == CodecHandle
}

// StorageBackend selects where conversation states are persisted.
type StorageBackend string

// Available storage backends.
const (
	// StorageMemory keeps sessions in a process-local map.
	StorageMemory StorageBackend = "memory"

	// StorageSQLite persists sessions in a local SQLite database.
	StorageSQLite StorageBackend = "sqlite"
)

// IsValid returns true if the backend is recognised.
func (b StorageBackend) IsValid() bool {
	return b == StorageMemory || b == StorageSQLite
}

// Config is the daemon configuration, loaded from TOML with environment
// overrides for secrets.
type Config struct {
	Telegram TelegramConfig `toml:"telegram"`
	Tracker  TrackerConfig  `toml:"tracker"`
	Auth     AuthConfig     `toml:"auth"`
	Storage  StorageConfig  `toml:"storage"`
	Codec    CodecConfig    `toml:"codec"`
	// TemplateDir optionally overrides the embedded message templates.
	// When set, the directory is watched and templates hot-reload.
	TemplateDir string `toml:"template_dir"`
}

// TelegramConfig configures the messaging transport.
type TelegramConfig struct {
	Token string `toml:"token"`
	// APIBaseURL overrides the Bot API endpoint. Useful for tests.
	APIBaseURL string `toml:"api_base_url"`
}

// TrackerConfig configures the issue tracker.
type TrackerConfig struct {
	// URL is the tracker's REST API base, e.g.
	// https://example.myjetbrains.com/youtrack/api
	URL string `toml:"url"`
	// BacklogQuery is the saved search shown by /backlog.
	BacklogQuery string `toml:"backlog_query"`
	PageSize     int    `toml:"page_size"`
	// StreamField and TypeField name the project custom fields collected
	// by the new-issue wizard.
	StreamField string `toml:"stream_field"`
	TypeField   string `toml:"type_field"`
}

// AuthConfig configures OAuth login against the tracker's hub.
type AuthConfig struct {
	HubURL       string `toml:"hub_url"`
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	// CallbackAddr is the listen address of the local callback server.
	CallbackAddr string `toml:"callback_addr"`
	// CallbackURL is the externally reachable form of CallbackAddr.
	CallbackURL string `toml:"callback_url"`
}

// StorageConfig configures session persistence.
type StorageConfig struct {
	Backend StorageBackend `toml:"backend"`
	DataDir string         `toml:"data_dir"`
}

// CodecConfig configures the correlation token codec.
type CodecConfig struct {
	Strategy CodecStrategy `toml:"strategy"`
	// HandleCapacity bounds the opaque-handle cache. Oldest entries are
	// evicted under pressure; their buttons stop working, which is a
	// normal outcome.
	HandleCapacity int `toml:"handle_capacity"`
}

// ApplyDefaults fills unset optional fields.
func (c *Config) ApplyDefaults() {
	if c.Tracker.PageSize <= 0 {
		c.Tracker.PageSize = DefaultPageSize
	}
	if c.Tracker.StreamField == "" {
		c.Tracker.StreamField = "Stream"
	}
	if c.Tracker.TypeField == "" {
		c.Tracker.TypeField = "Type"
	}
	if c.Auth.CallbackAddr == "" {
		c.Auth.CallbackAddr = "127.0.0.1:5000"
	}
	if c.Auth.CallbackURL == "" {
		c.Auth.CallbackURL = "http://" + c.Auth.CallbackAddr
	}
	if c.Storage.Backend == "" {
		c.Storage.Backend = StorageMemory
	}
	if c.Codec.Strategy == "" {
		c.Codec.Strategy = CodecCompact
	}
	if c.Codec.HandleCapacity <= 0 {
		c.Codec.HandleCapacity = 100
	}
}

// Validate reports the first configuration problem found.
func (c *Config) Validate() error {
	if c.Telegram.Token == "" {
		return fmt.Errorf("%w: telegram.token is required", ErrInvalidInput)
	}
	if c.Tracker.URL == "" {
		return fmt.Errorf("%w: tracker.url is required", ErrInvalidInput)
	}
	if c.Auth.HubURL == "" {
		return fmt.Errorf("%w: auth.hub_url is required", ErrInvalidInput)
	}
	if c.Auth.ClientID == "" {
		return fmt.Errorf("%w: auth.client_id is required", ErrInvalidInput)
	}
	if !c.Storage.Backend.IsValid() {
		return fmt.Errorf("%w: unknown storage backend %q", ErrInvalidInput, c.Storage.Backend)
	}
	if !c.Codec.Strategy.IsValid() {
		return fmt.Errorf("%w: unknown codec strategy %q", ErrInvalidInput, c.Codec.Strategy)
	}
	return nil
}
