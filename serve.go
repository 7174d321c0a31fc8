// serve.go
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

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/cloudwatch"
	"github.com/aws/aws-xray-sdk-go/xray"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go-student-dashboard/config"
	"go-student-dashboard/logger"
	"go-student-dashboard/middleware"
	"go-student-dashboard/router"
	"go-student-dashboard/services"
	"go-student-dashboard/websocket"
)

const shutdownTimeout = 10 * time.Second

type serveOptions struct {
	envFile string
}

func newServeCommand() *cobra.Command {
	opts := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the dashboard HTTP server",
		Long: `Start the dashboard HTTP server.

Settings come from the environment, optionally seeded from a dotenv file.
The server answers with a loading page until the credentials file is loaded
and the upload directory exists.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runServe(ctx, opts)
		},
	}
	cmd.Flags().StringVar(&opts.envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	return cmd
}

func runServe(ctx context.Context, opts *serveOptions) error {
	cfg, err := config.Load(opts.envFile)
	if err != nil {
		return err
	}
	if err := logger.InitLogger(cfg.LogDir); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger.SetLogLevel(cfg.Env)
	defer logger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	metrics := newMetricsPublisher(cfg)
	hub := websocket.NewHub(cfg.ApplicationURL)
	hubCtx, stopHub := context.WithCancel(context.Background())
	go hub.Run(hubCtx)
	defer func() {
		stopHub()
		<-hub.Done()
	}()

	creds := services.NewCredentialService(nil)
	files := services.NewDiskFileStore(cfg.UploadDir, "/uploads")
	readiness := middleware.NewReadiness()

	engine, err := router.New(router.Deps{
		Config:      cfg,
		Credentials: creds,
		Records:     services.NewRecordRepository(),
		Files:       files,
		Metrics:     metrics,
		Hub:         hub,
		Readiness:   readiness,
	})
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}

	var handler http.Handler = engine
	if cfg.TracingEnabled {
		handler = xray.Handler(xray.NewFixedSegmentNamer("student-dashboard"), engine)
		logger.Info.Println("[serve] X-Ray tracing enabled")
	}

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info.Printf("[serve] Listening on %s (env=%s)", cfg.Addr(), cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	if err := startup(cfg, creds, files); err != nil {
		shutdown(srv)
		return err
	}
	readiness.MarkReady()

	select {
	case <-ctx.Done():
		logger.Info.Println("[serve] Shutdown signal received")
	case err, ok := <-serveErr:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
	}
	shutdown(srv)
	return nil
}

// startup does the work the loading page stands in for.
func startup(cfg config.Config, creds *services.CredentialService, files *services.DiskFileStore) error {
	if err := creds.Load(cfg.CredentialsFile); err != nil {
		return err
	}
	if err := files.Prepare(); err != nil {
		return fmt.Errorf("prepare upload dir: %w", err)
	}
	return nil
}

func shutdown(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error.Printf("[serve] Graceful shutdown failed: %v", err)
		return
	}
	logger.Info.Println("[serve] Server stopped")
}

// newMetricsPublisher returns a CloudWatch publisher when metrics are enabled.
func newMetricsPublisher(cfg config.Config) services.MetricsPublisher {
	if !cfg.MetricsEnabled {
		return services.NoopPublisher{}
	}
	sess, err := session.NewSession(&aws.Config{Region: aws.String(cfg.AWSRegion)})
	if err != nil {
		logger.Error.Printf("[serve] AWS session failed, metrics disabled: %v", err)
		return services.NoopPublisher{}
	}
	cw := cloudwatch.New(sess)
	if cfg.TracingEnabled {
		xray.AWS(cw.Client)
	}
	logger.Info.Printf("[serve] Publishing metrics to CloudWatch namespace %s", cfg.MetricsNamespace)
	return services.NewCloudWatchPublisher(cw, cfg.MetricsNamespace)
}
