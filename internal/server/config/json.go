package config

import (
	"encoding/json"
	"os"

	"github.com/credgate/credgate/internal/flagx"
	"github.com/credgate/credgate/internal/timex"
)

// JsonConfig is an intermediate DTO used only for reading JSON configuration
// files. It relies on timex.Duration so JSON can specify the token validity
// either as a string ("24h") or as integer nanoseconds. After unmarshalling,
// its fields are copied into the runtime Config.
type JsonConfig struct {
	EndpointAddrHTTP      string         `json:"endpoint_addr_http"`
	DatabaseDSN           string         `json:"database_dsn"`
	SecretKey             string         `json:"secret_key"`
	TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	BCryptCost            int            `json:"bcrypt_cost"`
	AuthHeaderName        string         `json:"auth_header_name"`
}

// parseJson loads configuration values from the JSON file named by the
// -c or -config command-line flags. When neither flag is set, nothing is
// loaded. An unreadable or invalid file panics: a half-applied config is
// worse than a refused start.
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

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	config.EndpointAddrHTTP = c.EndpointAddrHTTP
	config.DatabaseDSN = c.DatabaseDSN
	config.SecretKey = c.SecretKey
	config.TokenValidityDuration = c.TokenValidityDuration.Duration
	config.BCryptCost = c.BCryptCost
	config.AuthHeaderName = c.AuthHeaderName
}
