// Package recipes turns a resolved scaffold configuration into the ordered
// list of steps that materializes it.
//
// Each (recipe, variant) pair selects a set of embedded templates. Building a
// plan renders every artifact up front, so a plan is pure data and the same
// configuration always yields byte-identical steps.
package recipes

import (
	"embed"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"text/template"

	"github.com/simonhull/firebird-suite/weaver/fledge/generator"
	"github.com/simonhull/firebird-suite/weaver/internal/config"
)

//go:embed templates notes
var content embed.FS

// Recipe names a scaffold.
type Recipe string

const (
	Auth    Recipe = "auth"
	Storage Recipe = "storage"
)

// Key selects one variant of a recipe, e.g. auth/postgresql.
type Key struct {
	Recipe  Recipe
	Variant string
}

func (k Key) String() string {
	return string(k.Recipe) + "/" + k.Variant
}

// Artifact paths, relative to the project root.
const (
	EnvPath          = ".env"
	SchemaPath       = "prisma/schema.prisma"
	PrismaClientPath = "lib/prisma.ts"
	AuthPath         = "lib/auth.ts"
	AuthRoutePath    = "app/api/auth/[...all]/route.ts"
	S3Path           = "lib/s3.ts"
	UploadRoutePath  = "app/api/upload/route.ts"
)

// AuthURL is the base URL better-auth is configured with.
const AuthURL = "http://localhost:3000"

// Variant lists the templates a recipe variant renders.
type Variant struct {
	Templates map[string]string // Artifact path to template path
	Notes     string            // Template for the post-run notes
}

// Plan is the ordered work of one scaffold run.
type Plan struct {
	Key   Key
	Steps []generator.Step
	// EnvKeys are the keys the generated env file defines, sorted.
	EnvKeys []string

	notes     string
	notesData notesData
}

// Registry maps recipe keys to their templates.
type Registry struct {
	fsys     fs.FS
	renderer *generator.Renderer
	variants map[Key]Variant
}

// NewRegistry returns a registry backed by the embedded templates.
func NewRegistry() *Registry {
	return newRegistry(content, defaultVariants())
}

func newRegistry(fsys fs.FS, variants map[Key]Variant) *Registry {
	renderer := generator.NewRenderer().WithFuncs(template.FuncMap{
		"envQuote":   envQuote,
		"identifier": identifier,
	})
	return &Registry{fsys: fsys, renderer: renderer, variants: variants}
}

func defaultVariants() map[Key]Variant {
	auth := Variant{
		Templates: map[string]string{
			EnvPath:          "templates/auth/env.tmpl",
			SchemaPath:       "templates/auth/schema.prisma.tmpl",
			PrismaClientPath: "templates/auth/prisma.ts.tmpl",
			AuthPath:         "templates/auth/auth.ts.tmpl",
			AuthRoutePath:    "templates/auth/route.ts.tmpl",
		},
		Notes: "notes/auth.md.tmpl",
	}

	storage := func(mode config.Mode) Variant {
		return Variant{
			Templates: map[string]string{
				EnvPath:         "templates/storage/env.tmpl",
				S3Path:          "templates/storage/s3.ts.tmpl",
				UploadRoutePath: fmt.Sprintf("templates/storage/route_%s.ts.tmpl", mode),
			},
			Notes: "notes/storage.md.tmpl",
		}
	}

	return map[Key]Variant{
		{Auth, string(config.MySQL)}:          auth,
		{Auth, string(config.PostgreSQL)}:     auth,
		{Storage, string(config.ModePresign)}: storage(config.ModePresign),
		{Storage, string(config.ModeDirect)}:  storage(config.ModeDirect),
		{Storage, string(config.ModeBoth)}:    storage(config.ModeBoth),
	}
}

// Keys returns every registered key in sorted order.
func (r *Registry) Keys() []Key {
	keys := make([]Key, 0, len(r.variants))
	for k := range r.variants {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	return keys
}

// Lookup returns the variant registered under key.
func (r *Registry) Lookup(key Key) (Variant, error) {
	v, ok := r.variants[key]
	if !ok {
		var known []string
		for _, k := range r.Keys() {
			if k.Recipe == key.Recipe {
				known = append(known, k.Variant)
			}
		}
		return Variant{}, fmt.Errorf("no recipe registered for %s (known %s variants: %s)",
			key, key.Recipe, strings.Join(known, ", "))
	}
	return v, nil
}

type authData struct {
	Secret      string
	DatabaseURL string
	AuthURL     string
	Provider    string
}

// Auth builds the authentication scaffold: better-auth backed by Prisma.
func (r *Registry) Auth(cfg config.AuthConfig) (*Plan, error) {
	key := Key{Auth, string(cfg.Database)}
	variant, err := r.Lookup(key)
	if err != nil {
		return nil, err
	}

	databaseURL, err := cfg.DatabaseURL()
	if err != nil {
		return nil, fmt.Errorf("build DATABASE_URL: %w", err)
	}

	pm := cfg.PackageManager
	b := r.newBuilder(variant, authData{
		Secret:      cfg.Secret,
		DatabaseURL: databaseURL,
		AuthURL:     AuthURL,
		Provider:    string(cfg.Database),
	})

	b.run(pm.Add("better-auth", "@prisma/client"))
	b.run(pm.AddDev("prisma"))
	b.write(EnvPath, generator.PolicyPreserve, 0600)
	b.write(SchemaPath, generator.PolicyOverwrite, 0644)
	b.write(PrismaClientPath, generator.PolicyOverwrite, 0644)
	b.run(pm.Exec("prisma", "generate"))
	b.write(AuthPath, generator.PolicyOverwrite, 0644)
	b.write(AuthRoutePath, generator.PolicyOverwrite, 0644)
	b.run(pm.Exec("@better-auth/cli", "generate"))
	b.run(pm.Exec("prisma", "migrate", "dev", "--name", "init"))

	return b.plan(key, notesData{
		EnvPath:    filepath.Join(cfg.Target, EnvPath),
		Database:   string(cfg.Database),
		Host:       cfg.DB.Host,
		DevCommand: pm.RunScript("dev").CommandLine(),
	})
}

type storageData struct {
	Mode    string
	Presign bool
	Direct  bool
}

// Storage builds the object-storage scaffold for Cloudflare R2 or any S3
// compatible service.
func (r *Registry) Storage(cfg config.StorageConfig) (*Plan, error) {
	key := Key{Storage, string(cfg.Mode)}
	variant, err := r.Lookup(key)
	if err != nil {
		return nil, err
	}

	pm := cfg.PackageManager
	b := r.newBuilder(variant, storageData{
		Mode:    string(cfg.Mode),
		Presign: cfg.Mode == config.ModePresign || cfg.Mode == config.ModeBoth,
		Direct:  cfg.Mode == config.ModeDirect || cfg.Mode == config.ModeBoth,
	})

	b.run(pm.Add("@aws-sdk/client-s3", "@aws-sdk/s3-request-presigner", "zod"))
	b.write(EnvPath, generator.PolicyPreserve, 0600)
	b.write(S3Path, generator.PolicyOverwrite, 0644)
	b.write(UploadRoutePath, generator.PolicyOverwrite, 0644)

	return b.plan(key, notesData{
		EnvPath:    filepath.Join(cfg.Target, EnvPath),
		Mode:       string(cfg.Mode),
		DevCommand: pm.RunScript("dev").CommandLine(),
	})
}

// builder accumulates steps and keeps the first rendering error.
type builder struct {
	r       *Registry
	variant Variant
	data    any
	steps   []generator.Step
	envKeys []string
	err     error
}

func (r *Registry) newBuilder(variant Variant, data any) *builder {
	return &builder{r: r, variant: variant, data: data}
}

func (b *builder) run(cmd *generator.RunCommand) {
	if b.err != nil {
		return
	}
	b.steps = append(b.steps, cmd)
}

func (b *builder) write(path string, policy generator.OverwritePolicy, mode fs.FileMode) {
	if b.err != nil {
		return
	}

	tmpl, ok := b.variant.Templates[path]
	if !ok {
		b.err = fmt.Errorf("no template registered for %s", path)
		return
	}
	rendered, err := b.r.renderer.RenderFS(b.r.fsys, tmpl, b.data)
	if err != nil {
		b.err = fmt.Errorf("render %s: %w", path, err)
		return
	}

	if path == EnvPath {
		if b.envKeys, err = envKeys(rendered); err != nil {
			b.err = fmt.Errorf("render %s: %w", path, err)
			return
		}
	}

	b.steps = append(b.steps, &generator.WriteFile{Path: path, Content: rendered, Mode: mode, Policy: policy})
}

func (b *builder) plan(key Key, notes notesData) (*Plan, error) {
	if b.err != nil {
		return nil, fmt.Errorf("%s: %w", key, b.err)
	}
	return &Plan{
		Key:       key,
		Steps:     b.steps,
		EnvKeys:   b.envKeys,
		notes:     b.variant.Notes,
		notesData: notes,
	}, nil
}
