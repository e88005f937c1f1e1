// Package config loads server settings from a YAML file with MUD_*
// environment overrides, using Viper.
package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is every setting the server reads at startup.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Telnet     TelnetConfig     `mapstructure:"telnet"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	GameServer GameServerConfig `mapstructure:"gameserver"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Messaging  MessagingConfig  `mapstructure:"messaging"`
	World      WorldConfig      `mapstructure:"world"`
	Rules      RulesConfig      `mapstructure:"rules"`
}

// ServerConfig names the server and bounds its shutdown.
type ServerConfig struct {
	Name            string        `mapstructure:"name"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig addresses the PostgreSQL server used by the postgres
// storage backend and sizes its pool.
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	Name            string        `mapstructure:"name"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
}

// DSN renders the settings as a postgres:// URL, escaping the credentials.
func (d DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(d.User, d.Password),
		Host:     net.JoinHostPort(d.Host, strconv.Itoa(d.Port)),
		Path:     "/" + d.Name,
		RawQuery: url.Values{"sslmode": {d.SSLMode}}.Encode(),
	}
	return u.String()
}

// TelnetConfig is the player listener. The timeouts apply to each read and
// write; an idle player is dropped after ReadTimeout.
type TelnetConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Addr is the listen address.
func (t TelnetConfig) Addr() string {
	return net.JoinHostPort(t.Host, strconv.Itoa(t.Port))
}

// LoggingConfig selects the zap level ("debug", "info", "warn", "error") and
// encoding ("json" or "console").
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// GameServerConfig sizes the world goroutine and places the gRPC health
// endpoint.
type GameServerConfig struct {
	GRPCHost string `mapstructure:"grpc_host"`
	GRPCPort int    `mapstructure:"grpc_port"`
	// QueueSize is how many commands may wait for the world goroutine.
	QueueSize int `mapstructure:"queue_size"`
	// TickInterval is one game hour; hunger, thirst and drunkenness change
	// once per tick.
	TickInterval     time.Duration `mapstructure:"tick_interval"`
	AutosaveInterval time.Duration `mapstructure:"autosave_interval"`
}

// Addr is the health endpoint address.
func (g GameServerConfig) Addr() string {
	return net.JoinHostPort(g.GRPCHost, strconv.Itoa(g.GRPCPort))
}

// Storage backends.
const (
	StoragePostgres = "postgres"
	StorageBolt     = "bolt"
)

// StorageConfig picks where characters and their items are saved.
type StorageConfig struct {
	Backend  string `mapstructure:"backend"`
	BoltPath string `mapstructure:"bolt_path"`
}

// Messaging backends.
const (
	MessagingLocal = "local"
	MessagingNATS  = "nats"
)

// MessagingConfig picks how room and player messages are delivered. The
// nats backend runs an embedded server at NATSHost:NATSPort.
type MessagingConfig struct {
	Backend      string        `mapstructure:"backend"`
	NATSHost     string        `mapstructure:"nats_host"`
	NATSPort     int           `mapstructure:"nats_port"`
	ReadyTimeout time.Duration `mapstructure:"ready_timeout"`
}

// WorldConfig locates content on disk.
type WorldConfig struct {
	ZonesDir   string `mapstructure:"zones_dir"`
	ItemsDir   string `mapstructure:"items_dir"`
	ScriptsDir string `mapstructure:"scripts_dir"`
	// DonationRoom receives donated items; empty disables donate.
	DonationRoom string `mapstructure:"donation_room"`
	// MoneyItem is the prototype spawned when coins are dropped.
	MoneyItem string `mapstructure:"money_item"`
}

// RulesConfig holds game constants.
type RulesConfig struct {
	CarryWeight int `mapstructure:"carry_weight"`
	CarryCount  int `mapstructure:"carry_count"`
	// ImmortalLevel is the first level that ignores carry limits and no_drop.
	ImmortalLevel          int `mapstructure:"immortal_level"`
	StartingGold           int `mapstructure:"starting_gold"`
	ScriptInstructionLimit int `mapstructure:"script_instruction_limit"`
}

var defaults = map[string]any{
	"server.name":             "DeltaMUD",
	"server.shutdown_timeout": "10s",

	"database.host":              "localhost",
	"database.port":              5432,
	"database.user":              "mud",
	"database.password":          "mud",
	"database.name":              "mud",
	"database.sslmode":           "disable",
	"database.max_conns":         10,
	"database.min_conns":         2,
	"database.max_conn_lifetime": "1h",

	"telnet.host":          "0.0.0.0",
	"telnet.port":          4000,
	"telnet.read_timeout":  "30m",
	"telnet.write_timeout": "30s",

	"logging.level":  "info",
	"logging.format": "json",

	"gameserver.grpc_host":         "127.0.0.1",
	"gameserver.grpc_port":         50051,
	"gameserver.queue_size":        256,
	"gameserver.tick_interval":     "75s",
	"gameserver.autosave_interval": "5m",

	"storage.backend":   StorageBolt,
	"storage.bolt_path": "data/deltamud.db",

	"messaging.backend":       MessagingLocal,
	"messaging.nats_host":     "127.0.0.1",
	"messaging.nats_port":     4222,
	"messaging.ready_timeout": "5s",

	"world.zones_dir":     "content/zones",
	"world.items_dir":     "content/items",
	"world.scripts_dir":   "content/scripts",
	"world.donation_room": "",
	"world.money_item":    "gold_coins",

	"rules.carry_weight":             100,
	"rules.carry_count":              20,
	"rules.immortal_level":           31,
	"rules.starting_gold":            100,
	"rules.script_instruction_limit": 100000,
}

// Defaults returns a Viper holding only the default values.
func Defaults() *viper.Viper {
	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
	return v
}

// Load reads the YAML file at path over the defaults, applies MUD_*
// environment overrides (MUD_TELNET_PORT for telnet.port) and validates
// the result.
func Load(path string) (Config, error) {
	v := Defaults()
	v.SetConfigFile(path)
	v.SetEnvPrefix("MUD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromViper(v)
}

// LoadFromViper decodes and validates the settings held by v.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
