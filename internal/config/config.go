// Package config loads cmd/patctl's ambient configuration from the
// environment, with an optional .env file for local development. The core
// engine (rational/timespan/value/event/qctx/pat/...) takes no
// configuration at all — only the CLI entry point reads this package,
// matching spec §6's note that environment variables are out of scope for
// the core. Grounded on Conceptual-Machines-magda-api's internal/config:
// a flat struct, a Load() that falls back to defaults via getEnv, and a
// godotenv.Load() call site in main() that tolerates a missing .env file.
package config

import "os"

// Config holds cmd/patctl's runtime settings.
type Config struct {
	// CPS is the cycles-per-second rate read from PATCTL_CPS. cmd/patctl
	// does not use it: query arcs are given in cycles.
	CPS string
	// Seed is the default RNG seed threaded into qctx.Context.
	Seed string
	// Color forces ("always"/"never") or auto-detects ("auto") colorized
	// output; cmd/patctl only consults this when -color isn't passed.
	Color string
	// RegistryPath is the path read from PATCTL_REGISTRY_PATH for a
	// persistent alias store (registry.NewPersistentRegistry). cmd/patctl
	// builds no registry and does not use it.
	RegistryPath string
}

// Load reads PATCTL_* environment variables, falling back to defaults.
// Call godotenv.Load() before Load in main() if a .env file should be
// honored; Load itself never touches the filesystem.
func Load() *Config {
	return &Config{
		CPS:          getEnv("PATCTL_CPS", "1"),
		Seed:         getEnv("PATCTL_SEED", "0"),
		Color:        getEnv("PATCTL_COLOR", "auto"),
		RegistryPath: getEnv("PATCTL_REGISTRY_PATH", ""),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
