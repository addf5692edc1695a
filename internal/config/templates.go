package config

import (
	"fmt"
	"os"
)

func Template() string {
	return serverTemplate
}

func WriteTemplate(path string, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(serverTemplate), 0o600)
}

const serverTemplate = `node = "glbctl"
addr = ":9300"
cors_origins = ["http://localhost:3000"]

# Largest declared container length accepted on /v1/inspect.
max_container_bytes = 268435456

# Scratch buffers kept for reuse between uploads.
buffer_pool_size = 8
`
