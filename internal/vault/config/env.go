package config

import "os"

// parseEnv overlays values from environment variables. ENCRYPTION_KEY and
// ENCRYPTION_SALT are the canonical way to inject key material in
// production; DATABASE_DSN mirrors the usual container convention.
func parseEnv(config *Config) {
	if v, ok := os.LookupEnv("DATABASE_DSN"); ok {
		config.DatabaseDSN = v
	}
	if v, ok := os.LookupEnv("ENCRYPTION_KEY"); ok {
		config.EncryptionKeyHex = v
	}
	if v, ok := os.LookupEnv("ENCRYPTION_SALT"); ok {
		config.EncryptionSalt = v
	}
	if v, ok := os.LookupEnv("SECURE_COOKIES"); ok {
		config.SecureCookies = v == "true" || v == "1"
	}
}
