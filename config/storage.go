package config

import (
	"fmt"
	"strings"
	"time"
)

// StorageBackend selects the credential store implementation.
type StorageBackend string

const (
	// StorageBackendMemory keeps credentials in process memory only.
	StorageBackendMemory StorageBackend = "memory"
	// StorageBackendFile persists credentials under a directory, one file
	// per key. Survives restarts and is shared by concurrent clients on the
	// same machine.
	StorageBackendFile StorageBackend = "file"
	// StorageBackendRedis keeps credentials in Redis with pub/sub change
	// notifications, shared across machines.
	StorageBackendRedis StorageBackend = "redis"
)

// UnmarshalText implements encoding.TextUnmarshaler for StorageBackend.
func (b *StorageBackend) UnmarshalText(text []byte) error {
	v := strings.ToLower(string(text))
	switch v {
	case "memory", "file", "redis":
		*b = StorageBackend(v)
		return nil
	default:
		return fmt.Errorf("invalid StorageBackend: %q (valid options: memory, file, redis)", v)
	}
}

// StorageConfig groups credential store configuration.
type StorageConfig struct {
	// Backend determines which credential store implementation is used.
	Backend StorageBackend `env:"BACKEND" envDefault:"file"`

	// Dir is the directory for the file backend. Empty means a
	// ".biblio-admin" directory under the user's home.
	Dir string `env:"DIR"`

	// PollInterval is how often the file backend checks for external
	// changes.
	PollInterval time.Duration `env:"POLL_INTERVAL" envDefault:"500ms"`
}

// RedisConfig contains Redis configuration for the redis storage backend.
type RedisConfig struct {
	Addr     string `env:"ADDR"      envDefault:"localhost:6379"`
	Password string `env:"PASSWORD"  envDefault:""`
	DB       int    `env:"DB"        envDefault:"0"`
	// KeyPrefix namespaces credential keys and the change channel.
	KeyPrefix string `env:"KEY_PREFIX" envDefault:"credentials:"`
}
