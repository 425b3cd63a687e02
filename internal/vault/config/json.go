package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/glopmts/my-accounts-sub000/internal/flagx"
	"github.com/glopmts/my-accounts-sub000/internal/timex"
)

// JsonConfig is an intermediate DTO used only for reading JSON
// configuration files. It uses timex.Duration for interval fields, which
// allows parsing both string values such as "5m" and integer nanoseconds.
// After unmarshalling, its fields are copied into the runtime Config.
type JsonConfig struct {
	DatabaseDSN             string         `json:"database_dsn"`
	EncryptionKeyHex        string         `json:"encryption_key"`
	EncryptionSalt          string         `json:"encryption_salt"`
	CodeSessionValidity     timex.Duration `json:"code_session_validity"`
	PasswordSessionValidity timex.Duration `json:"password_session_validity"`
	CodeRegenCooldown       timex.Duration `json:"code_regen_cooldown"`
	SecureCookies           bool           `json:"secure_cookies"`
}

// parseJson loads configuration values from the JSON file named by the
// -c/-config flags into the provided Config. If no file is named, nothing
// is loaded. An unreadable or invalid file panics: configuration defects
// should stop the process before it handles any secret.
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

	config.DatabaseDSN = c.DatabaseDSN
	config.EncryptionKeyHex = c.EncryptionKeyHex
	config.EncryptionSalt = c.EncryptionSalt
	config.CodeSessionValidity = time.Duration(c.CodeSessionValidity.Duration)
	config.PasswordSessionValidity = time.Duration(c.PasswordSessionValidity.Duration)
	config.CodeRegenCooldown = time.Duration(c.CodeRegenCooldown.Duration)
	config.SecureCookies = c.SecureCookies
}
