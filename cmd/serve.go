package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/abhisek/gradewise/internal/logger"
	"github.com/abhisek/gradewise/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the reference grading service",
	Long: `Serve the grading-weights HTTP API backed by the local SQLite store.

Use --seed to load subjects from a YAML file on startup, and the token
command to mint bearer tokens signed with GRADEWISE_JWT_SECRET.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig(cmd)
		if addr, _ := cmd.Flags().GetString("listen"); addr != "" {
			cfg.Server.Listen = addr
		}
		if err := cfg.ValidateServer(); err != nil {
			return err
		}

		log, err := logger.New(cfg.Log.Mode)
		if err != nil {
			return fmt.Errorf("init logger: %w", err)
		}
		defer log.Sync()

		if cfg.Log.Mode == "prod" {
			gin.SetMode(gin.ReleaseMode)
		}

		st, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer st.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		srv := server.New(st.SubjectRepo(), server.NewTokenManager(cfg.Server.JWTSecret), log)

		if seedPath, _ := cmd.Flags().GetString("seed"); seedPath != "" {
			subjects, err := server.LoadSeed(seedPath)
			if err != nil {
				return err
			}
			if err := srv.Seed(ctx, subjects); err != nil {
				return fmt.Errorf("seed %s: %w", seedPath, err)
			}
		}

		return srv.Run(ctx, cfg.Server.Listen)
	},
}

func init() {
	serveCmd.Flags().String("listen", "", "Listen address (overrides GRADEWISE_LISTEN)")
	serveCmd.Flags().String("seed", "", "YAML file of subjects to load on startup")
}
