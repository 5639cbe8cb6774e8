package web

import (
	"os"

	"gopkg.in/yaml.v2"
)

// Config controls the playground server. The source size cap lives here: the
// compiler core leaves input sizes unbounded, so the boundary enforces one.
type Config struct {
	Address        string `yaml:"address"`
	MaxSourceBytes int    `yaml:"max_source_bytes"`
}

func DefaultConfig() Config {
	return Config{
		Address:        ":8080",
		MaxSourceBytes: 64 * 1024,
	}
}

// LoadConfig reads a YAML config file, applying defaults for absent keys. A
// missing file is not an error; the defaults apply wholesale.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}
