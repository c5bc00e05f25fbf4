package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Setting keys. Environment variables use the WEAVER_ prefix with dots
// replaced by underscores, e.g. WEAVER_AUTH_DB_HOST.
const (
	KeyPackageManager = "pm"
	KeyAuthDatabase   = "auth.database"
	KeyAuthDBUser     = "auth.db.user"
	KeyAuthDBPassword = "auth.db.password"
	KeyAuthDBName     = "auth.db.name"
	KeyAuthDBHost     = "auth.db.host"
	KeyAuthDBPort     = "auth.db.port"
	KeyStorageMode    = "storage.mode"
)

// ProjectConfigFile is read from the target directory when present.
const ProjectConfigFile = "weaver.yml"

// LoadOptions controls where settings come from.
type LoadOptions struct {
	// ProjectDir is searched for ProjectConfigFile.
	ProjectDir string
	// UserConfig overrides $XDG_CONFIG_HOME/weaver/config.yaml.
	UserConfig string
	// DetectedPackageManager replaces the built-in package manager default,
	// typically with the one the project's lockfile implies.
	DetectedPackageManager string
	// Flags maps setting keys to command-line flags. Only flags the user
	// actually set take precedence over files and environment.
	Flags map[string]*pflag.Flag
}

// Settings are flag defaults merged from every configuration source.
type Settings struct {
	v *viper.Viper
}

// UserConfigPath returns the per-user configuration file location.
func UserConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "weaver", "config.yaml")
}

// Load merges, in increasing precedence, built-in defaults, the detected
// package manager, the user config file, the project config file, WEAVER_*
// environment variables and flags.
// Missing config files are not an error.
func Load(opts LoadOptions) (*Settings, error) {
	v := viper.New()
	v.SetDefault(KeyPackageManager, "pnpm")
	if opts.DetectedPackageManager != "" {
		v.SetDefault(KeyPackageManager, opts.DetectedPackageManager)
	}
	v.SetDefault(KeyAuthDatabase, string(MySQL))
	v.SetDefault(KeyStorageMode, string(ModePresign))

	userConfig := opts.UserConfig
	if userConfig == "" {
		userConfig = UserConfigPath()
	}
	if err := mergeFile(v, userConfig); err != nil {
		return nil, err
	}
	if opts.ProjectDir != "" {
		if err := mergeFile(v, filepath.Join(opts.ProjectDir, ProjectConfigFile)); err != nil {
			return nil, err
		}
	}

	// Enable environment variable overrides
	v.SetEnvPrefix("WEAVER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, flag := range opts.Flags {
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return nil, fmt.Errorf("bind flag %s: %w", flag.Name, err)
		}
	}

	return &Settings{v: v}, nil
}

func mergeFile(v *viper.Viper, path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	v.SetConfigFile(path)
	if err := v.MergeInConfig(); err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return nil
}

// AuthRequest returns the auth settings for target. Credentials nobody
// supplied stay nil.
func (s *Settings) AuthRequest(target string) AuthRequest {
	return AuthRequest{
		Target:         target,
		Database:       s.v.GetString(KeyAuthDatabase),
		PackageManager: s.v.GetString(KeyPackageManager),
		User:           s.optional(KeyAuthDBUser),
		Password:       s.optional(KeyAuthDBPassword),
		Name:           s.optional(KeyAuthDBName),
		Host:           s.optional(KeyAuthDBHost),
		Port:           s.v.GetInt(KeyAuthDBPort),
	}
}

// StorageRequest returns the storage settings for target.
func (s *Settings) StorageRequest(target string) StorageRequest {
	return StorageRequest{
		Target:         target,
		Mode:           s.v.GetString(KeyStorageMode),
		PackageManager: s.v.GetString(KeyPackageManager),
	}
}

func (s *Settings) optional(key string) *string {
	if !s.v.IsSet(key) {
		return nil
	}
	value := s.v.GetString(key)
	return &value
}
