package config

import (
	"flag"
	"os"
	"time"

	"github.com/glopmts/my-accounts-sub000/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-d string   PostgreSQL DSN
//	-k string   hex-encoded 32-byte encryption key
//	-s string   key-derivation salt
//	-t int      code-session validity, minutes
//	-w int      password-session validity, minutes
//	-r int      code regeneration cooldown, minutes
//
// The function first filters os.Args to only the flags it recognizes
// using flagx.FilterArgs, avoiding collisions with other components.
// Duration flags are accepted as integers in minutes.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-k", "-s", "-t", "-w", "-r"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.EncryptionKeyHex, "k", config.EncryptionKeyHex, "hex-encoded encryption key")
	fs.StringVar(&config.EncryptionSalt, "s", config.EncryptionSalt, "key-derivation salt")

	codeSessionValidity := fs.Int("t", int(config.CodeSessionValidity.Minutes()), "code session validity (in minutes)")
	passwordSessionValidity := fs.Int("w", int(config.PasswordSessionValidity.Minutes()), "password session validity (in minutes)")
	codeRegenCooldown := fs.Int("r", int(config.CodeRegenCooldown.Minutes()), "code regeneration cooldown (in minutes)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.CodeSessionValidity = time.Duration(*codeSessionValidity) * time.Minute
	config.PasswordSessionValidity = time.Duration(*passwordSessionValidity) * time.Minute
	config.CodeRegenCooldown = time.Duration(*codeRegenCooldown) * time.Minute
}
