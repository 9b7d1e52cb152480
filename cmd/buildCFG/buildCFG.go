package buildCFG

import (
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/config"
	"github.com/wb-go/wbf/dbpg"
)

type ServerConfig struct {
	Port            string
	Mode            string
	ShutdownTimeout time.Duration
}

type RabbitConfig struct {
	Url            string
	Exchange       string
	Queue          string
	PublishTimeout time.Duration
}

type RedisConfig struct {
	Url           string
	ChannelPrefix string
}

type ModerationConfig struct {
	SweepInterval     time.Duration
	SweepBatch        int
	ReconcileInterval time.Duration
}

type AdminConfig struct {
	Token string
}

func stringOr(cfg *config.Config, key, def string) string {
	if v := cfg.GetString(key); v != "" {
		return v
	}
	return def
}

func durationOr(cfg *config.Config, key string, def time.Duration) time.Duration {
	if v := cfg.GetDuration(key); v > 0 {
		return v
	}
	return def
}

func BuildServerConfig(cfg *config.Config, log *zerolog.Logger) ServerConfig {
	sc := ServerConfig{
		Port:            stringOr(cfg, "server.port", "8080"),
		Mode:            stringOr(cfg, "server.mode", "release"),
		ShutdownTimeout: durationOr(cfg, "server.shutdown_timeout", 10*time.Second),
	}
	log.Debug().Str("port", sc.Port).Str("mode", sc.Mode).Msg("server config loaded")
	return sc
}

// BuildDBConfig returns the master DSN, the replica DSNs and pool options.
func BuildDBConfig(cfg *config.Config, log *zerolog.Logger) (string, []string, *dbpg.Options, error) {
	masterDSN := cfg.GetString("database.master_dsn")
	if masterDSN == "" {
		return "", nil, nil, errors.New("database.master_dsn is required")
	}

	var slaveDSNs []string
	for _, dsn := range strings.Split(cfg.GetString("database.slave_dsns"), ",") {
		if dsn = strings.TrimSpace(dsn); dsn != "" {
			slaveDSNs = append(slaveDSNs, dsn)
		}
	}

	opts := &dbpg.Options{
		MaxOpenConns:    cfg.GetInt("database.max_open_conns"),
		MaxIdleConns:    cfg.GetInt("database.max_idle_conns"),
		ConnMaxLifetime: cfg.GetDuration("database.conn_max_lifetime"),
	}
	if opts.MaxOpenConns <= 0 {
		opts.MaxOpenConns = 10
	}
	if opts.MaxIdleConns <= 0 {
		opts.MaxIdleConns = 5
	}

	log.Debug().Int("replicas", len(slaveDSNs)).Int("max_open_conns", opts.MaxOpenConns).Msg("database config loaded")
	return masterDSN, slaveDSNs, opts, nil
}

// RollbackOnShutdown reports whether migrations are rolled back on exit.
// Only meant for throwaway development databases.
func RollbackOnShutdown(cfg *config.Config) bool {
	return cfg.GetBool("database.rollback_on_shutdown")
}

func BuildRabbitConfig(cfg *config.Config, log *zerolog.Logger) (RabbitConfig, error) {
	rc := RabbitConfig{
		Url:      cfg.GetString("rabbitmq.url"),
		Exchange: stringOr(cfg, "rabbitmq.exchange", "memorywall.delayed"),
		Queue:    stringOr(cfg, "rabbitmq.queue", "memorywall.auto_approval"),

		PublishTimeout: durationOr(cfg, "rabbitmq.publish_timeout", 5*time.Second),
	}
	if rc.Url == "" {
		return rc, errors.New("rabbitmq.url is required")
	}
	log.Debug().Str("exchange", rc.Exchange).Str("queue", rc.Queue).Msg("rabbitmq config loaded")
	return rc, nil
}

// BuildRedisConfig may return an empty Url; the feed then stays in-process.
func BuildRedisConfig(cfg *config.Config) RedisConfig {
	return RedisConfig{
		Url:           cfg.GetString("redis.url"),
		ChannelPrefix: cfg.GetString("redis.channel_prefix"),
	}
}

func BuildModerationConfig(cfg *config.Config) ModerationConfig {
	return ModerationConfig{
		SweepInterval:     cfg.GetDuration("moderation.sweep_interval"),
		SweepBatch:        cfg.GetInt("moderation.sweep_batch"),
		ReconcileInterval: cfg.GetDuration("moderation.reconcile_interval"),
	}
}

func BuildAdminConfig(cfg *config.Config, log *zerolog.Logger) AdminConfig {
	token := cfg.GetString("admin.token")
	if token == "" {
		log.Warn().Msg("admin.token is empty, organizer routes are not protected")
	}
	return AdminConfig{Token: token}
}
