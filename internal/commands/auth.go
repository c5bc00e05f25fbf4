package commands

import (
	"fmt"

	"github.com/simonhull/firebird-suite/weaver/fledge/input"
	"github.com/simonhull/firebird-suite/weaver/fledge/output"
	"github.com/simonhull/firebird-suite/weaver/internal/config"
	"github.com/simonhull/firebird-suite/weaver/internal/dburl"
	"github.com/simonhull/firebird-suite/weaver/internal/logging"
	"github.com/simonhull/firebird-suite/weaver/internal/recipes"
	"github.com/simonhull/firebird-suite/weaver/internal/secret"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// AuthCmd creates the 'auth' command that scaffolds better-auth with Prisma
func AuthCmd(env *Env) *cobra.Command {
	var (
		opts    runFlags
		noInput bool
	)

	cmd := &cobra.Command{
		Use:   "auth PATH",
		Short: "Scaffold better-auth with a Prisma adapter",
		Long: `Installs better-auth and Prisma into the project at PATH and generates:
• .env                          BETTER_AUTH_SECRET, DATABASE_URL, BETTER_AUTH_URL
• prisma/schema.prisma          datasource for MySQL or PostgreSQL
• lib/prisma.ts, lib/auth.ts    client singleton and auth instance
• app/api/auth/[...all]/route.ts

It then generates the Prisma client and the auth schema and runs the first
migration. Missing database credentials are prompted for, or read one per
line from piped input; --no-input uses the defaults instead.

Examples:
  weaver auth ./my-app
  weaver auth ./my-app --db postgresql --pm npm --no-input
  weaver auth ./my-app --plan`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := args[0]
			logger := logging.Component(env.logger, "auth")

			info := inspectProject(target, logger)
			settings, err := config.Load(config.LoadOptions{
				ProjectDir:             projectDir(target),
				UserConfig:             env.UserConfig,
				DetectedPackageManager: detectedManager(info),
				Flags: map[string]*pflag.Flag{
					config.KeyPackageManager: cmd.Flags().Lookup("pm"),
					config.KeyAuthDatabase:   cmd.Flags().Lookup("db"),
					config.KeyAuthDBUser:     cmd.Flags().Lookup("db-user"),
					config.KeyAuthDBPassword: cmd.Flags().Lookup("db-password"),
					config.KeyAuthDBName:     cmd.Flags().Lookup("db-name"),
					config.KeyAuthDBHost:     cmd.Flags().Lookup("db-host"),
					config.KeyAuthDBPort:     cmd.Flags().Lookup("db-port"),
				},
			})
			if err != nil {
				return err
			}

			req := settings.AuthRequest(target)
			req.Force = opts.force

			prompter := input.NewPrompter(env.Stdin, env.Stdout)
			// Piped answers are read too; only a terminal gets the confirmation
			if !noInput && prompter.Interactive() && info != nil && !info.HasPackageJSON() {
				ok, err := prompter.Confirm("Continue without a package.json?", false)
				if err != nil {
					return err
				}
				if !ok {
					return &config.ConfigurationError{Field: "path", Value: target, Reason: "no package.json found"}
				}
			}

			resolver := &config.Resolver{
				Prompter:    prompter,
				Interactive: !noInput,
				LookPath:    env.LookPath,
			}
			cfg, err := resolver.ResolveAuth(req)
			if err != nil {
				return err
			}
			if cfg.Fallback != nil {
				output.Warn(cfg.Fallback.String())
			}

			databaseURL, err := cfg.DatabaseURL()
			if err != nil {
				return err
			}
			masked := dburl.MaskPassword(databaseURL)
			logger.Info().
				Str("target", cfg.Target).
				Str("database", string(cfg.Database)).
				Str("pm", cfg.PackageManager.Name).
				Str("databaseURL", masked).
				Str("secret", secret.Mask(cfg.Secret)).
				Msg("Configuration resolved")

			output.Info(fmt.Sprintf("Scaffolding auth into %s", cfg.Target))
			output.Step(fmt.Sprintf("Database: %s", cfg.Database))
			output.Step(fmt.Sprintf("Package manager: %s", cfg.PackageManager))
			output.Step(fmt.Sprintf("DATABASE_URL: %s", masked))
			output.Step(fmt.Sprintf("BETTER_AUTH_SECRET: %s", secret.Mask(cfg.Secret)))

			registry := recipes.NewRegistry()
			plan, err := registry.Auth(cfg)
			if err != nil {
				return err
			}
			return execute(cmd.Context(), env, registry, plan, cfg.Target, opts)
		},
	}

	cmd.Flags().String("db", "mysql", "Database provider (mysql, postgresql)")
	cmd.Flags().String("pm", "pnpm", "Package manager (pnpm, npm, yarn)")
	cmd.Flags().String("db-user", "", "Database user (prompted when omitted)")
	cmd.Flags().String("db-password", "", "Database password (prompted when omitted)")
	cmd.Flags().String("db-name", "", "Database name (prompted when omitted)")
	cmd.Flags().String("db-host", "", "Database host (prompted when omitted)")
	cmd.Flags().Int("db-port", 0, "Database port (defaults to 3306 or 5432)")
	cmd.Flags().BoolVar(&noInput, "no-input", false, "Never prompt; use defaults for missing credentials")
	opts.register(cmd)

	return cmd
}
