package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	DefaultNode              = "glbctl"
	DefaultAddr              = ":9300"
	DefaultMaxContainerBytes = 256 << 20
	DefaultBufferPoolSize    = 8
)

// ServerConfig configures the HTTP inspection service.
type ServerConfig struct {
	Node        string
	Addr        string
	CorsOrigins []string
	// MaxContainerBytes caps the declared length of an uploaded container.
	MaxContainerBytes uint32
	// BufferPoolSize is the number of scratch buffers kept for reuse.
	BufferPoolSize int
}

type fileConfig struct {
	Node              string   `toml:"node"`
	Addr              string   `toml:"addr"`
	CorsOrigins       []string `toml:"cors_origins"`
	MaxContainerBytes int64    `toml:"max_container_bytes"`
	BufferPoolSize    int      `toml:"buffer_pool_size"`
}

func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Node:              DefaultNode,
		Addr:              DefaultAddr,
		CorsOrigins:       []string{},
		MaxContainerBytes: DefaultMaxContainerBytes,
		BufferPoolSize:    DefaultBufferPoolSize,
	}
}

// LoadServerConfig overlays the keys present in the TOML file at path onto
// DefaultServerConfig and validates the result.
func LoadServerConfig(path string) (ServerConfig, error) {
	cfg := DefaultServerConfig()

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return ServerConfig{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return ServerConfig{}, fmt.Errorf("config parse failed (%s): unknown key %q", path, undecoded[0].String())
	}

	if meta.IsDefined("node") {
		cfg.Node = strings.TrimSpace(raw.Node)
	}
	if meta.IsDefined("addr") {
		cfg.Addr = strings.TrimSpace(raw.Addr)
	}
	if meta.IsDefined("cors_origins") {
		cfg.CorsOrigins = normalizeOrigins(raw.CorsOrigins)
	}
	if meta.IsDefined("max_container_bytes") {
		if raw.MaxContainerBytes <= 0 || raw.MaxContainerBytes > int64(^uint32(0)) {
			return ServerConfig{}, fmt.Errorf("max_container_bytes out of range: %d", raw.MaxContainerBytes)
		}
		cfg.MaxContainerBytes = uint32(raw.MaxContainerBytes)
	}
	if meta.IsDefined("buffer_pool_size") {
		cfg.BufferPoolSize = raw.BufferPoolSize
	}

	if err := ValidateServerConfig(cfg); err != nil {
		return ServerConfig{}, err
	}
	return cfg, nil
}

func ValidateServerConfig(cfg ServerConfig) error {
	if strings.TrimSpace(cfg.Node) == "" {
		return fmt.Errorf("server config missing node")
	}
	if strings.TrimSpace(cfg.Addr) == "" {
		return fmt.Errorf("server config missing addr")
	}
	if cfg.MaxContainerBytes == 0 {
		return fmt.Errorf("server config max_container_bytes must be positive")
	}
	if cfg.BufferPoolSize < 0 {
		return fmt.Errorf("server config buffer_pool_size must not be negative")
	}
	for i, origin := range cfg.CorsOrigins {
		if !strings.HasPrefix(origin, "http://") && !strings.HasPrefix(origin, "https://") && origin != "*" {
			return fmt.Errorf("cors_origins[%d] invalid: %q", i, origin)
		}
	}
	return nil
}

func normalizeOrigins(in []string) []string {
	out := make([]string, 0, len(in))
	for _, origin := range in {
		v := strings.TrimSpace(origin)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}
