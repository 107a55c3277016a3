package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/yigit/supervision/internal/app/migrations"
	"github.com/yigit/supervision/internal/app/repositories"
	"github.com/yigit/supervision/internal/app/services"
	"github.com/yigit/supervision/internal/bootstrap"
	"github.com/yigit/supervision/internal/config"
	"github.com/yigit/supervision/internal/db"
	"github.com/yigit/supervision/internal/pkg/auth"
	"github.com/yigit/supervision/internal/pkg/logger"
)

// env is what every database-backed command needs
type env struct {
	cfg  *config.Config
	pool *pgxpool.Pool
	log  zerolog.Logger
}

func openEnv(ctx context.Context) (*env, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger(configPath)
	if err != nil {
		return nil, err
	}
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &env{cfg: cfg, pool: database.Pool, log: lgr}, nil
}

func withEnv(fn func(cmd *cobra.Command, e *env, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd.Context())
		if err != nil {
			return err
		}
		defer e.pool.Close()
		return fn(cmd, e, args)
	}
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: withEnv(func(cmd *cobra.Command, e *env, _ []string) error {
		return migrations.NewMigrator(e.pool).Up(cmd.Context())
	}),
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the most recent migration",
	Args:  cobra.NoArgs,
	RunE: withEnv(func(cmd *cobra.Command, e *env, _ []string) error {
		return migrations.NewMigrator(e.pool).Down(cmd.Context())
	}),
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the applied schema version",
	Args:  cobra.NoArgs,
	RunE: withEnv(func(cmd *cobra.Command, e *env, _ []string) error {
		v, err := migrations.NewMigrator(e.pool).Version(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), v)
		return nil
	}),
}

var appCredentialsCmd = &cobra.Command{
	Use:   "app-credentials",
	Short: "Manage client application credentials",
}

var appCredentialDescription string

var appCredentialsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Register a client application and print its id and key",
	Long: `Register a client application. The generated key is printed once
and only its hash is stored, so it cannot be recovered later.`,
	Args: cobra.ExactArgs(1),
	RunE: withEnv(func(cmd *cobra.Command, e *env, args []string) error {
		sessions := sessionService(e)
		cred, key, err := sessions.CreateAppCredential(cmd.Context(), args[0], appCredentialDescription)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "app_id:  %s\napp_key: %s\n", cred.AppID, key)
		return nil
	}),
}

var blacklistCmd = &cobra.Command{
	Use:   "blacklist",
	Short: "Maintain the revoked token list",
}

var blacklistPurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete revocations whose tokens have already expired",
	Args:  cobra.NoArgs,
	RunE: withEnv(func(cmd *cobra.Command, e *env, _ []string) error {
		n, err := sessionService(e).PurgeExpiredRevocations(cmd.Context())
		if err != nil {
			return err
		}
		e.log.Info().Int64("purged", n).Msg("Expired revocations removed")
		return nil
	}),
}

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password <password>",
	Short: "Print the argon2id hash of a password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if args[0] == "" {
			return errors.New("password must not be empty")
		}
		hash, err := auth.HashPassword(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

func init() {
	appCredentialsCreateCmd.Flags().StringVar(&appCredentialDescription, "description", "", "free-form description of the client")
}

func sessionService(e *env) *services.SessionService {
	repos := repositories.NewRepositories(e.pool)
	jwtService := auth.NewJWTService(auth.JWTConfig{
		SecretKey:   e.cfg.Auth.Secret,
		TokenTTL:    e.cfg.TokenTTL(),
		TokenIssuer: e.cfg.Auth.Issuer,
	})
	return services.NewSessionService(
		repos.UserRepository,
		repos.AppCredentialRepository,
		repos.TokenRepository,
		jwtService,
		logger.Component("supervisionctl"),
	)
}
