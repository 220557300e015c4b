// Package config loads liscaf's configuration.
//
// Values are layered, later sources winning: the embedded defaults, the
// user file ($XDG_CONFIG_HOME/liscaf/config.toml), LISCAF_* environment
// variables and finally explicit overrides such as command line flags.
package config
