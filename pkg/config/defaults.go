package config

import "time"

const (
	// DefaultToolTimeout bounds each external command invocation
	DefaultToolTimeout = 10 * time.Minute

	// DefaultOverridesFile is the repo-relative binding override file name
	DefaultOverridesFile = ".polycheck.yml"
)

// File Permissions
const (
	// PermConfigFile is the file permission for config files
	PermConfigFile = 0644

	// PermDirectory is the file permission for directories
	PermDirectory = 0755
)

// Path Constants
const (
	// LocalConfigDir is the directory under $HOME holding user configuration
	LocalConfigDir = ".polycheck"

	// LocalConfigFile is the user configuration file name
	LocalConfigFile = "config.json"
)
