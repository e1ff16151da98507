// Package config handles application configuration and setup
package config

import (
	"github.com/retroenv/litexrenode/internal/options"
	"github.com/retroenv/retrogolib/log"
	"github.com/xyproto/env/v2"
)

// Environment variables that provide defaults for command line flags.
const (
	EnvBiosBinary     = "LITEX_RENODE_BIOS"
	EnvFirmwareBinary = "LITEX_RENODE_FIRMWARE"
	EnvTapInterface   = "LITEX_RENODE_TAP"
	EnvGdbPort        = "LITEX_RENODE_GDB_PORT"
	EnvDebug          = "LITEX_RENODE_DEBUG"
)

// CreateLogger creates a logger with appropriate settings
func CreateLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// Defaults returns the program option defaults read from the environment.
func Defaults() options.Program {
	return options.Program{
		Parameters: options.Parameters{
			BiosBinary:     env.Str(EnvBiosBinary),
			FirmwareBinary: env.Str(EnvFirmwareBinary),
			TapInterface:   env.Str(EnvTapInterface),
		},
		Flags: options.Flags{
			GdbPort: env.Int(EnvGdbPort, options.DefaultGdbPort),
			Debug:   env.Bool(EnvDebug),
		},
	}
}
