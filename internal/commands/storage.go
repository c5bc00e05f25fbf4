package commands

import (
	"fmt"

	"github.com/simonhull/firebird-suite/weaver/fledge/output"
	"github.com/simonhull/firebird-suite/weaver/internal/config"
	"github.com/simonhull/firebird-suite/weaver/internal/logging"
	"github.com/simonhull/firebird-suite/weaver/internal/recipes"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// StorageCmd creates the 'storage' command that scaffolds R2/S3 uploads
func StorageCmd(env *Env) *cobra.Command {
	var opts runFlags

	cmd := &cobra.Command{
		Use:   "storage PATH",
		Short: "Scaffold Cloudflare R2 / S3 uploads",
		Long: `Installs the AWS S3 SDK and zod into the project at PATH and generates:
• .env                     bucket, endpoint and credential placeholders
• lib/s3.ts                S3 client and upload helpers
• app/api/upload/route.ts  POST endpoint for the selected mode

Modes:
  presign  the browser uploads with a presigned PUT URL
  direct   the server uploads a base64 payload
  both     the request body chooses

Examples:
  weaver storage ./my-app
  weaver storage ./my-app --mode both --pm npm`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := args[0]
			logger := logging.Component(env.logger, "storage")

			settings, err := config.Load(config.LoadOptions{
				ProjectDir:             projectDir(target),
				UserConfig:             env.UserConfig,
				DetectedPackageManager: detectedManager(inspectProject(target, logger)),
				Flags: map[string]*pflag.Flag{
					config.KeyPackageManager: cmd.Flags().Lookup("pm"),
					config.KeyStorageMode:    cmd.Flags().Lookup("mode"),
				},
			})
			if err != nil {
				return err
			}

			req := settings.StorageRequest(target)
			req.Force = opts.force

			resolver := &config.Resolver{LookPath: env.LookPath}
			cfg, err := resolver.ResolveStorage(req)
			if err != nil {
				return err
			}
			if cfg.Fallback != nil {
				output.Warn(cfg.Fallback.String())
			}

			logger.Info().
				Str("target", cfg.Target).
				Str("mode", string(cfg.Mode)).
				Str("pm", cfg.PackageManager.Name).
				Msg("Configuration resolved")

			output.Info(fmt.Sprintf("Scaffolding storage into %s", cfg.Target))
			output.Step(fmt.Sprintf("Mode: %s", cfg.Mode))
			output.Step(fmt.Sprintf("Package manager: %s", cfg.PackageManager))

			registry := recipes.NewRegistry()
			plan, err := registry.Storage(cfg)
			if err != nil {
				return err
			}
			return execute(cmd.Context(), env, registry, plan, cfg.Target, opts)
		},
	}

	cmd.Flags().String("mode", "presign", "Upload mode (presign, direct, both)")
	cmd.Flags().String("pm", "pnpm", "Package manager (pnpm, npm, yarn)")
	opts.register(cmd)

	return cmd
}
