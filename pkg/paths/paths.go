// Package paths provides the locations maidsweep reads and writes by
// default. It follows the XDG base directory layout, with
// environment overrides for each directory.
package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/maidsweep/pkg/utils"
)

// Environment variable names
const (
	// EnvDataDir overrides the XDG data directory for maidsweep
	EnvDataDir = "MAIDSWEEP_DATA_DIR"

	// EnvConfigDir overrides the XDG config directory for maidsweep
	EnvConfigDir = "MAIDSWEEP_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for maidsweep
	EnvStateDir = "MAIDSWEEP_STATE_DIR"

	// EnvSettings points at an explicit settings file
	EnvSettings = "MAIDSWEEP_SETTINGS"
)

// Default directories and files
const (
	// AppDirName is the directory name for maidsweep-specific files
	AppDirName = "maidsweep"

	// SettingsFileName is the settings file inside the config directory
	SettingsFileName = "config.toml"

	// DatabaseFileName is the default SQLite database file
	DatabaseFileName = "maidsweep.db"

	// LogFileName is the name of the log file
	LogFileName = "maidsweep.log"

	// PatternsFileName is the default pattern document in the home directory
	PatternsFileName = ".maidsweep.yaml"
)

// Paths resolves maidsweep's default locations
type Paths interface {
	DataDir() string
	ConfigDir() string
	StateDir() string
	SettingsFile() string
	DatabasePath() string
	DefaultStoreURI() string
	PatternsFile() string
	LogFilePath() string
}

type paths struct {
	xdgData   string
	xdgConfig string
	xdgState  string
	home      string
}

// New resolves the directories from the environment
func New() Paths {
	p := &paths{
		xdgData:   dirFromEnv(EnvDataDir, xdg.DataHome),
		xdgConfig: dirFromEnv(EnvConfigDir, xdg.ConfigHome),
		xdgState:  dirFromEnv(EnvStateDir, xdg.StateHome),
	}
	if home, err := utils.GetHomeDirectory(); err == nil {
		p.home = home
	}
	return p
}

func dirFromEnv(key, xdgBase string) string {
	if dir := os.Getenv(key); dir != "" {
		return utils.ExpandPath(dir)
	}
	return filepath.Join(xdgBase, AppDirName)
}

func (p *paths) DataDir() string   { return p.xdgData }
func (p *paths) ConfigDir() string { return p.xdgConfig }
func (p *paths) StateDir() string  { return p.xdgState }

// SettingsFile honours MAIDSWEEP_SETTINGS before the config directory
func (p *paths) SettingsFile() string {
	if path := os.Getenv(EnvSettings); path != "" {
		return utils.ExpandPath(path)
	}
	return filepath.Join(p.xdgConfig, SettingsFileName)
}

func (p *paths) DatabasePath() string {
	return filepath.Join(p.xdgData, DatabaseFileName)
}

func (p *paths) DefaultStoreURI() string {
	return "sqlite://" + p.DatabasePath()
}

func (p *paths) PatternsFile() string {
	if p.home == "" {
		return PatternsFileName
	}
	return filepath.Join(p.home, PatternsFileName)
}

func (p *paths) LogFilePath() string {
	return filepath.Join(p.xdgState, LogFileName)
}
