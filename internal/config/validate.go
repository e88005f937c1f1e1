package config

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

// problems collects every violation found by Validate.
type problems []error

func (p *problems) addf(format string, args ...any) {
	*p = append(*p, fmt.Errorf(format, args...))
}

func (p *problems) require(key, v string) {
	if v == "" {
		p.addf("%s must not be empty", key)
	}
}

func (p *problems) port(key string, v int) {
	if v < 1 || v > 65535 {
		p.addf("%s must be 1-65535, got %d", key, v)
	}
}

func (p *problems) atLeast(key string, v, lo int) {
	if v < lo {
		p.addf("%s must be >= %d, got %d", key, lo, v)
	}
}

func (p *problems) positive(key string, d time.Duration) {
	if d <= 0 {
		p.addf("%s must be positive", key)
	}
}

func (p *problems) notNegative(key string, d time.Duration) {
	if d < 0 {
		p.addf("%s must not be negative", key)
	}
}

func (p *problems) oneOf(key, v string, allowed ...string) {
	if !slices.Contains(allowed, v) {
		p.addf("%s must be one of %v, got %q", key, allowed, v)
	}
}

// Validate checks every section. The database section is only checked when
// the postgres storage backend is selected.
//
// Postcondition: Returns nil, or an error listing every violation.
func (c Config) Validate() error {
	var p problems

	p.require("server.name", c.Server.Name)
	p.notNegative("server.shutdown_timeout", c.Server.ShutdownTimeout)

	p.port("telnet.port", c.Telnet.Port)
	p.notNegative("telnet.read_timeout", c.Telnet.ReadTimeout)
	p.notNegative("telnet.write_timeout", c.Telnet.WriteTimeout)

	p.oneOf("logging.level", c.Logging.Level, "debug", "info", "warn", "error")
	p.oneOf("logging.format", c.Logging.Format, "json", "console")

	p.require("gameserver.grpc_host", c.GameServer.GRPCHost)
	p.port("gameserver.grpc_port", c.GameServer.GRPCPort)
	p.atLeast("gameserver.queue_size", c.GameServer.QueueSize, 1)
	p.positive("gameserver.tick_interval", c.GameServer.TickInterval)
	p.positive("gameserver.autosave_interval", c.GameServer.AutosaveInterval)

	p.oneOf("storage.backend", c.Storage.Backend, StoragePostgres, StorageBolt)
	switch c.Storage.Backend {
	case StorageBolt:
		p.require("storage.bolt_path", c.Storage.BoltPath)
	case StoragePostgres:
		c.Database.validate(&p)
	}

	p.oneOf("messaging.backend", c.Messaging.Backend, MessagingLocal, MessagingNATS)
	if c.Messaging.Backend == MessagingNATS {
		p.require("messaging.nats_host", c.Messaging.NATSHost)
		p.port("messaging.nats_port", c.Messaging.NATSPort)
		p.positive("messaging.ready_timeout", c.Messaging.ReadyTimeout)
	}

	p.require("world.zones_dir", c.World.ZonesDir)
	p.require("world.items_dir", c.World.ItemsDir)

	p.atLeast("rules.carry_weight", c.Rules.CarryWeight, 1)
	p.atLeast("rules.carry_count", c.Rules.CarryCount, 1)
	p.atLeast("rules.immortal_level", c.Rules.ImmortalLevel, 1)
	p.atLeast("rules.starting_gold", c.Rules.StartingGold, 0)
	p.atLeast("rules.script_instruction_limit", c.Rules.ScriptInstructionLimit, 0)

	if len(p) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(p...))
	}
	return nil
}

func (d DatabaseConfig) validate(p *problems) {
	p.require("database.host", d.Host)
	p.port("database.port", d.Port)
	p.require("database.user", d.User)
	p.require("database.name", d.Name)
	p.oneOf("database.sslmode", d.SSLMode, "disable", "require", "verify-ca", "verify-full")
	p.atLeast("database.max_conns", int(d.MaxConns), 1)
	p.atLeast("database.min_conns", int(d.MinConns), 0)
	if d.MinConns > d.MaxConns {
		p.addf("database.min_conns must not exceed database.max_conns")
	}
}
