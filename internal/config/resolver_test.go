package config

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/firebird-suite/weaver/internal/pkgmgr"
	"github.com/simonhull/firebird-suite/weaver/internal/secret"
)

// scriptedPrompter answers prompts from a list and records the messages.
type scriptedPrompter struct {
	answers []string
	asked   []string
	err     error
}

func (p *scriptedPrompter) next(message, defaultValue string) (string, error) {
	p.asked = append(p.asked, message)
	if p.err != nil {
		return "", p.err
	}
	if len(p.answers) == 0 {
		return defaultValue, nil
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	if answer == "" {
		return defaultValue, nil
	}
	return answer, nil
}

func (p *scriptedPrompter) Prompt(message, defaultValue string) (string, error) {
	return p.next(message, defaultValue)
}

func (p *scriptedPrompter) PromptSecret(message string) (string, error) {
	return p.next(message, "")
}

func installed(names ...string) pkgmgr.LookPathFunc {
	return func(file string) (string, error) {
		for _, n := range names {
			if n == file {
				return "/usr/local/bin/" + file, nil
			}
		}
		return "", exec.ErrNotFound
	}
}

func ptr(s string) *string { return &s }

func TestResolveAuth_DefaultAnswers(t *testing.T) {
	dir := t.TempDir()
	prompter := &scriptedPrompter{}
	r := &Resolver{Prompter: prompter, Interactive: true, LookPath: installed("npm")}

	cfg, err := r.ResolveAuth(AuthRequest{Target: dir, Database: "postgresql", PackageManager: "npm"})
	require.NoError(t, err)

	assert.Equal(t, PostgreSQL, cfg.Database)
	assert.Equal(t, "npm", cfg.PackageManager.Name)
	assert.Nil(t, cfg.Fallback)
	assert.Equal(t, []string{"Database user", "Database password", "Database name", "Database host"}, prompter.asked)

	url, err := cfg.DatabaseURL()
	require.NoError(t, err)
	assert.Equal(t, "postgresql://root:@localhost:5432/better_auth", url)

	assert.Len(t, cfg.Secret, secret.DefaultLength)
	for _, ch := range cfg.Secret {
		assert.True(t, strings.ContainsRune(secret.Alphabet, ch))
	}
}

func TestResolveAuth_TypedAnswers(t *testing.T) {
	prompter := &scriptedPrompter{answers: []string{"app", `pa"ss`, "shop", "db.internal"}}
	r := &Resolver{Prompter: prompter, Interactive: true}

	cfg, err := r.ResolveAuth(AuthRequest{Target: t.TempDir(), Database: "mysql", PackageManager: "pnpm"})
	require.NoError(t, err)

	assert.Equal(t, "app", cfg.DB.User)
	assert.Equal(t, `pa"ss`, cfg.DB.Password)
	assert.Equal(t, "shop", cfg.DB.Name)
	assert.Equal(t, "db.internal", cfg.DB.Host)
	assert.Equal(t, 3306, cfg.DB.Port)
}

func TestResolveAuth_SuppliedValuesAreNotPrompted(t *testing.T) {
	prompter := &scriptedPrompter{}
	r := &Resolver{Prompter: prompter, Interactive: true}

	cfg, err := r.ResolveAuth(AuthRequest{
		Target:         t.TempDir(),
		Database:       "postgresql",
		PackageManager: "npm",
		User:           ptr("admin"),
		Password:       ptr(""),
		Name:           ptr("app$prod"),
		Host:           ptr("10.0.0.5"),
		Port:           6543,
	})
	require.NoError(t, err)

	assert.Empty(t, prompter.asked)
	assert.Equal(t, "admin", cfg.DB.User)
	assert.Equal(t, "app$prod", cfg.DB.Name)
	assert.Equal(t, 6543, cfg.DB.Port)
}

func TestResolveAuth_NonInteractiveUsesDefaults(t *testing.T) {
	prompter := &scriptedPrompter{answers: []string{"ignored"}}
	r := &Resolver{Prompter: prompter, Interactive: false}

	cfg, err := r.ResolveAuth(AuthRequest{Target: t.TempDir(), Database: "mysql", PackageManager: "npm"})
	require.NoError(t, err)

	assert.Empty(t, prompter.asked)
	assert.Equal(t, DefaultDBUser, cfg.DB.User)
	assert.Equal(t, DefaultDBPassword, cfg.DB.Password)
	assert.Equal(t, DefaultDBName, cfg.DB.Name)
	assert.Equal(t, DefaultDBHost, cfg.DB.Host)
}

func TestResolveAuth_SecretIsFreshPerRun(t *testing.T) {
	r := &Resolver{}
	req := AuthRequest{Target: t.TempDir(), Database: "mysql", PackageManager: "npm"}

	first, err := r.ResolveAuth(req)
	require.NoError(t, err)
	second, err := r.ResolveAuth(req)
	require.NoError(t, err)

	assert.NotEqual(t, first.Secret, second.Secret)
}

func TestResolveAuth_PromptError(t *testing.T) {
	r := &Resolver{Prompter: &scriptedPrompter{err: errors.New("stdin closed")}, Interactive: true}

	_, err := r.ResolveAuth(AuthRequest{Target: t.TempDir(), Database: "mysql", PackageManager: "npm"})
	assert.ErrorContains(t, err, "stdin closed")
}

func TestResolveAuth_Invalid(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "package.json")
	require.NoError(t, os.WriteFile(file, []byte("{}"), 0644))

	tests := []struct {
		name  string
		req   AuthRequest
		field string
	}{
		{"missing path", AuthRequest{Target: filepath.Join(dir, "nope"), Database: "mysql", PackageManager: "npm"}, "path"},
		{"path is a file", AuthRequest{Target: file, Database: "mysql", PackageManager: "npm"}, "path"},
		{"empty path", AuthRequest{Database: "mysql", PackageManager: "npm"}, "path"},
		{"unknown database", AuthRequest{Target: dir, Database: "sqlite", PackageManager: "npm"}, "database"},
		{"unknown package manager", AuthRequest{Target: dir, Database: "mysql", PackageManager: "bun"}, "package manager"},
		{"bad host", AuthRequest{Target: dir, Database: "mysql", PackageManager: "npm", Host: ptr("evil\"host")}, "database host"},
		{"bad name", AuthRequest{Target: dir, Database: "mysql", PackageManager: "npm", Name: ptr("a b")}, "database name"},
		{"bad port", AuthRequest{Target: dir, Database: "mysql", PackageManager: "npm", Port: 70000}, "database port"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := (&Resolver{}).ResolveAuth(tt.req)
			require.Error(t, err)

			var cfgErr *ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestResolveStorage(t *testing.T) {
	dir := t.TempDir()
	r := &Resolver{LookPath: installed("pnpm", "npm")}

	for _, mode := range []Mode{ModePresign, ModeDirect, ModeBoth} {
		cfg, err := r.ResolveStorage(StorageRequest{Target: dir, Mode: string(mode), PackageManager: "pnpm", Force: true})
		require.NoError(t, err)
		assert.Equal(t, mode, cfg.Mode)
		assert.Equal(t, "pnpm", cfg.PackageManager.Name)
		assert.True(t, cfg.Force)
	}
}

func TestResolveStorage_MissingPath(t *testing.T) {
	_, err := (&Resolver{}).ResolveStorage(StorageRequest{
		Target:         filepath.Join(t.TempDir(), "missing"),
		Mode:           "direct",
		PackageManager: "npm",
	})

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "path", cfgErr.Field)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestResolveStorage_PackageManagerFallback(t *testing.T) {
	r := &Resolver{LookPath: installed("npm")}

	cfg, err := r.ResolveStorage(StorageRequest{Target: t.TempDir(), Mode: "both", PackageManager: "pnpm"})
	require.NoError(t, err)

	assert.Equal(t, "npm", cfg.PackageManager.Name)
	require.NotNil(t, cfg.Fallback)
	assert.Equal(t, "pnpm", cfg.Fallback.Requested)
}

func TestResolveStorage_BadMode(t *testing.T) {
	_, err := (&Resolver{}).ResolveStorage(StorageRequest{Target: t.TempDir(), Mode: "stream", PackageManager: "npm"})
	assert.EqualError(t, err, `invalid mode "stream": must be presign, direct or both`)
}

func TestParseDatabase(t *testing.T) {
	db, err := ParseDatabase("PostgreSQL")
	require.NoError(t, err)
	assert.Equal(t, PostgreSQL, db)
	assert.Equal(t, 5432, db.DefaultPort())
	assert.Equal(t, 3306, MySQL.DefaultPort())
}
