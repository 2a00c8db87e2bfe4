// Package config loads maidsweep's settings.
//
// Settings are layered, later sources winning:
//
//  1. embedded defaults (embedded/defaults.toml)
//  2. the settings file ($XDG_CONFIG_HOME/maidsweep/config.toml, or the
//     file named by MAIDSWEEP_SETTINGS)
//  3. MAIDSWEEP_* environment variables, e.g. MAIDSWEEP_STORE_URI
//  4. overrides from command-line flags
//
// Empty paths are resolved against pkg/paths once all layers are merged.
package config
