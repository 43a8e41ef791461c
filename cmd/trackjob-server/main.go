package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/trackjob/internal/auth"
	"github.com/justsurfingit/trackjob/internal/config"
	"github.com/justsurfingit/trackjob/internal/database"
	"github.com/justsurfingit/trackjob/internal/handlers"
	"github.com/justsurfingit/trackjob/internal/logger"
	"github.com/justsurfingit/trackjob/internal/services"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var envFile string
	root := &cobra.Command{
		Use:          "trackjob-server",
		Short:        "TrackJob API server",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if envFile != "" {
				return config.Load(envFile)
			}
			return config.Load()
		},
	}
	root.PersistentFlags().StringVar(&envFile, "env-file", "", "load environment from this file instead of .env")
	root.AddCommand(serveCmd(), gmailLoginCmd())
	return root
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and the follow-up dispatcher",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadServer()
			if err != nil {
				return err
			}
			log, err := logger.New(cfg.LogLevel, cfg.Development)
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck
			return serve(cmd.Context(), cfg, log)
		},
	}
}

func gmailLoginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gmail-login",
		Short: "Authorize the server to send follow-ups through Gmail",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadServer()
			if err != nil {
				return err
			}
			if err := auth.AuthorizeGmail(cmd.Context(), cfg.GmailCredentialsPath, cfg.GmailTokenPath, cmd.InOrStdin(), cmd.OutOrStdout()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved token to %s\n", cfg.GmailTokenPath)
			return nil
		},
	}
}

func serve(ctx context.Context, cfg *config.Server, log *zap.Logger) error {
	if !cfg.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DBDriver, cfg.DSN, log)
	if err != nil {
		return err
	}

	// Extraction is optional.
	llmService, err := services.NewLLMService(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Warn("job extraction disabled", zap.Error(err))
		llmService = nil
	}

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	userService := services.NewUserService(db, tokens)
	jobService := services.NewJobService(db)
	settingsService := services.NewSettingsService(db)
	mailer := newMailer(ctx, cfg, log)
	followUpService := services.NewFollowUpService(db, jobService, settingsService, mailer, log)

	dispatcher := services.NewFollowUpDispatcher(db, mailer, cfg.DispatchInterval, log)
	dispatcher.Start(ctx)

	router := handlers.NewRouter(handlers.Dependencies{
		Tokens:      tokens,
		Auth:        handlers.NewAuthHandler(userService),
		Jobs:        handlers.NewJobHandler(llmService, jobService),
		FollowUps:   handlers.NewFollowUpHandler(followUpService),
		Settings:    handlers.NewSettingsHandler(settingsService),
		CORSOrigins: cfg.CORSOrigins,
		Logger:      log.Named("http"),
	})

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: router}
	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("port", cfg.Port))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed to start: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	log.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}

// newMailer connects to Gmail when a saved token exists and otherwise falls
// back to logging what would have been sent.
func newMailer(ctx context.Context, cfg *config.Server, log *zap.Logger) services.Mailer {
	httpClient, err := auth.GmailClient(ctx, cfg.GmailCredentialsPath, cfg.GmailTokenPath)
	if err != nil {
		log.Warn("gmail not configured, follow-up emails will only be logged", zap.Error(err))
		return &services.LogMailer{Logger: log.Named("mailer")}
	}
	gmailService, err := gmail.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		log.Warn("failed to create gmail service", zap.Error(err))
		return &services.LogMailer{Logger: log.Named("mailer")}
	}
	log.Info("gmail service connected")
	return services.NewGmailMailer(gmailService, cfg.GmailSender, log)
}
