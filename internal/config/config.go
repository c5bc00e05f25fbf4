// Package config turns flags, configuration files, environment variables and
// interactive answers into the immutable configuration of one scaffold run.
package config

import (
	"fmt"
	"strings"

	"github.com/simonhull/firebird-suite/weaver/internal/dburl"
	"github.com/simonhull/firebird-suite/weaver/internal/pkgmgr"
)

// ConfigurationError reports invalid user input. It is always raised before
// anything is written or executed.
type ConfigurationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// Database is the Prisma datasource provider.
type Database string

const (
	MySQL      Database = "mysql"
	PostgreSQL Database = "postgresql"
)

// DefaultPort returns the conventional port for the database.
func (d Database) DefaultPort() int {
	if d == PostgreSQL {
		return 5432
	}
	return 3306
}

// ParseDatabase validates a database name.
func ParseDatabase(s string) (Database, error) {
	switch Database(strings.ToLower(strings.TrimSpace(s))) {
	case MySQL:
		return MySQL, nil
	case PostgreSQL:
		return PostgreSQL, nil
	}
	return "", &ConfigurationError{Field: "database", Value: s, Reason: "must be mysql or postgresql"}
}

// Mode selects how the storage scaffold uploads objects.
type Mode string

const (
	ModePresign Mode = "presign"
	ModeDirect  Mode = "direct"
	ModeBoth    Mode = "both"
)

// ParseMode validates an upload mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModePresign:
		return ModePresign, nil
	case ModeDirect:
		return ModeDirect, nil
	case ModeBoth:
		return ModeBoth, nil
	}
	return "", &ConfigurationError{Field: "mode", Value: s, Reason: "must be presign, direct or both"}
}

// AuthConfig is the resolved configuration of an authentication scaffold.
type AuthConfig struct {
	Target         string // Absolute project directory
	Database       Database
	PackageManager pkgmgr.Manager
	Fallback       *pkgmgr.Fallback // Set when the requested manager was replaced
	DB             dburl.Config
	Secret         string
	Force          bool
}

// DatabaseURL returns the connection URL written to DATABASE_URL.
func (c AuthConfig) DatabaseURL() (string, error) {
	return dburl.Build(c.DB)
}

// StorageConfig is the resolved configuration of an object-storage scaffold.
type StorageConfig struct {
	Target         string
	Mode           Mode
	PackageManager pkgmgr.Manager
	Fallback       *pkgmgr.Fallback
	Force          bool
}
