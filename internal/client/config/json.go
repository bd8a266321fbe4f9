package config

import (
	"encoding/json"
	"os"

	"github.com/drivenpass/drivenpass/internal/flagx"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files.
type JsonConfig struct {
	ServerAddr string `json:"server_addr"`
	TokenFile  string `json:"token_file"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config flags; if
// neither is set, nothing is loaded.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.ServerAddr = c.ServerAddr
	config.TokenFile = c.TokenFile
}
