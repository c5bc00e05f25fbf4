package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"github.com/simonhull/firebird-suite/weaver/internal/dburl"
	"github.com/simonhull/firebird-suite/weaver/internal/pkgmgr"
	"github.com/simonhull/firebird-suite/weaver/internal/secret"
)

// Prompter asks the user for missing values. *input.Prompter satisfies it.
type Prompter interface {
	Prompt(message, defaultValue string) (string, error)
	PromptSecret(message string) (string, error)
}

// Answers used when a credential is neither supplied nor typed.
const (
	DefaultDBUser     = "root"
	DefaultDBPassword = ""
	DefaultDBName     = "better_auth"
	DefaultDBHost     = "localhost"
)

var (
	hostPattern   = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)
	dbNamePattern = regexp.MustCompile(`^[A-Za-z0-9._$-]+$`)
)

// AuthRequest holds raw auth settings. Nil credential fields are missing and
// will be prompted for or defaulted.
type AuthRequest struct {
	Target         string
	Database       string
	PackageManager string
	User           *string
	Password       *string
	Name           *string
	Host           *string
	Port           int // 0 selects the database's default port
	Force          bool
}

// StorageRequest holds raw storage settings.
type StorageRequest struct {
	Target         string
	Mode           string
	PackageManager string
	Force          bool
}

// Resolver validates requests and fills in missing values.
type Resolver struct {
	// Prompter is consulted for missing credentials when Interactive is set.
	Prompter    Prompter
	Interactive bool
	// LookPath decides whether the requested package manager is installed.
	LookPath pkgmgr.LookPathFunc
	// SecretLength defaults to secret.DefaultLength.
	SecretLength int
}

// ResolveAuth produces the configuration of an authentication scaffold.
// The secret is generated here, once per run.
func (r *Resolver) ResolveAuth(req AuthRequest) (AuthConfig, error) {
	target, err := resolveTarget(req.Target)
	if err != nil {
		return AuthConfig{}, err
	}
	db, err := ParseDatabase(req.Database)
	if err != nil {
		return AuthConfig{}, err
	}
	pm, fallback, err := r.resolvePackageManager(req.PackageManager)
	if err != nil {
		return AuthConfig{}, err
	}

	creds := dburl.Config{Scheme: string(db), Port: req.Port}
	if creds.Port == 0 {
		creds.Port = db.DefaultPort()
	}
	if creds.User, err = r.ask(req.User, "Database user", DefaultDBUser, false); err != nil {
		return AuthConfig{}, err
	}
	if creds.Password, err = r.ask(req.Password, "Database password", DefaultDBPassword, true); err != nil {
		return AuthConfig{}, err
	}
	if creds.Name, err = r.ask(req.Name, "Database name", DefaultDBName, false); err != nil {
		return AuthConfig{}, err
	}
	if creds.Host, err = r.ask(req.Host, "Database host", DefaultDBHost, false); err != nil {
		return AuthConfig{}, err
	}
	if err := validateCredentials(creds); err != nil {
		return AuthConfig{}, err
	}

	length := r.SecretLength
	if length == 0 {
		length = secret.DefaultLength
	}
	token, err := secret.Generate(length)
	if err != nil {
		return AuthConfig{}, fmt.Errorf("generate secret: %w", err)
	}

	return AuthConfig{
		Target:         target,
		Database:       db,
		PackageManager: pm,
		Fallback:       fallback,
		DB:             creds,
		Secret:         token,
		Force:          req.Force,
	}, nil
}

// ResolveStorage produces the configuration of an object-storage scaffold.
func (r *Resolver) ResolveStorage(req StorageRequest) (StorageConfig, error) {
	target, err := resolveTarget(req.Target)
	if err != nil {
		return StorageConfig{}, err
	}
	mode, err := ParseMode(req.Mode)
	if err != nil {
		return StorageConfig{}, err
	}
	pm, fallback, err := r.resolvePackageManager(req.PackageManager)
	if err != nil {
		return StorageConfig{}, err
	}

	return StorageConfig{
		Target:         target,
		Mode:           mode,
		PackageManager: pm,
		Fallback:       fallback,
		Force:          req.Force,
	}, nil
}

func (r *Resolver) resolvePackageManager(name string) (pkgmgr.Manager, *pkgmgr.Fallback, error) {
	requested, err := pkgmgr.Parse(name)
	if err != nil {
		return pkgmgr.Manager{}, nil, &ConfigurationError{Field: "package manager", Value: name, Reason: err.Error()}
	}
	if r.LookPath == nil {
		return requested, nil, nil
	}
	pm, fallback := pkgmgr.Resolve(requested, r.LookPath)
	return pm, fallback, nil
}

// ask returns the supplied value, the user's answer, or the default.
func (r *Resolver) ask(supplied *string, message, defaultValue string, hidden bool) (string, error) {
	if supplied != nil {
		return *supplied, nil
	}
	if !r.Interactive || r.Prompter == nil {
		return defaultValue, nil
	}

	if hidden {
		answer, err := r.Prompter.PromptSecret(message)
		if err != nil {
			return "", fmt.Errorf("prompt %s: %w", message, err)
		}
		if answer == "" {
			return defaultValue, nil
		}
		return answer, nil
	}

	answer, err := r.Prompter.Prompt(message, defaultValue)
	if err != nil {
		return "", fmt.Errorf("prompt %s: %w", message, err)
	}
	return answer, nil
}

func resolveTarget(path string) (string, error) {
	if path == "" {
		return "", &ConfigurationError{Field: "path", Reason: "project path is required"}
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", &ConfigurationError{Field: "path", Value: path, Reason: err.Error()}
	}

	info, err := os.Stat(abs)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return "", &ConfigurationError{Field: "path", Value: path, Reason: "project path does not exist"}
	case err != nil:
		return "", &ConfigurationError{Field: "path", Value: path, Reason: err.Error()}
	case !info.IsDir():
		return "", &ConfigurationError{Field: "path", Value: path, Reason: "project path is not a directory"}
	}
	return abs, nil
}

func validateCredentials(c dburl.Config) error {
	if !hostPattern.MatchString(c.Host) {
		return &ConfigurationError{Field: "database host", Value: c.Host, Reason: "may only contain letters, digits, '.', '_' and '-'"}
	}
	if !dbNamePattern.MatchString(c.Name) {
		return &ConfigurationError{Field: "database name", Value: c.Name, Reason: "may only contain letters, digits, '.', '_', '$' and '-'"}
	}
	if c.Port < 1 || c.Port > 65535 {
		return &ConfigurationError{Field: "database port", Value: fmt.Sprint(c.Port), Reason: "must be between 1 and 65535"}
	}
	return nil
}
