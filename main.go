package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ahmedaisar/aco-audit-portal/internal/blob"
	"github.com/ahmedaisar/aco-audit-portal/internal/config"
	"github.com/ahmedaisar/aco-audit-portal/internal/db"
	"github.com/ahmedaisar/aco-audit-portal/internal/export"
	"github.com/ahmedaisar/aco-audit-portal/internal/gelf"
	"github.com/ahmedaisar/aco-audit-portal/internal/handler"
	"github.com/ahmedaisar/aco-audit-portal/internal/repository"
	"github.com/ahmedaisar/aco-audit-portal/internal/router"
	"github.com/ahmedaisar/aco-audit-portal/internal/service"
	"github.com/ahmedaisar/aco-audit-portal/internal/stats"
)

const serviceName = "aco-portal"

func main() {
	var configPath string
	root := &cobra.Command{
		Use:           "acoportal",
		Short:         "Website change request and audit intake portal",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file")

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP API",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runServe(cmd.Context(), configPath)
			},
		},
		exportCmd(&configPath),
		&cobra.Command{
			Use:   "stats",
			Short: "Print the dashboard summary as JSON",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runStats(cmd.Context(), configPath, cmd.OutOrStdout())
			},
		},
		clearCmd(&configPath),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func exportCmd(configPath *string) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write all submissions as CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runExport(cmd.Context(), *configPath, out, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write to this file instead of stdout")
	return cmd
}

func clearCmd(configPath *string) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every stored submission",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return errors.New("refusing to clear without --yes")
			}
			a, err := openApp(cmd.Context(), *configPath)
			if err != nil {
				return err
			}
			defer a.Close()
			n, err := a.subs.Clear(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %d submissions\n", n)
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm deleting all submissions")
	return cmd
}

// app holds the wired services shared by every subcommand.
type app struct {
	cfg       *config.Config
	conn      *sql.DB
	subs      *service.SubmissionService
	analytics *service.AnalyticsService
	enc       *export.Encoder
	files     http.Handler
	closers   []io.Closer
}

func openApp(ctx context.Context, configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	// GELF UDP logging
	var closers []io.Closer
	if cfg.GelfAddr != "" {
		gelfWriter, err := gelf.New(cfg.GelfAddr, serviceName)
		if err != nil {
			log.Printf("Warning: GELF init failed: %v", err)
		} else {
			log.SetOutput(io.MultiWriter(os.Stderr, gelfWriter))
			closers = append(closers, gelfWriter)
			log.Printf("GELF logging: enabled (%s)", cfg.GelfAddr)
		}
	}

	loc, err := cfg.Location()
	if err != nil {
		closeAll(closers)
		return nil, err
	}

	conn, err := db.Open(cfg.DBPath)
	if err != nil {
		closeAll(closers)
		return nil, err
	}

	uploader, files, err := openBlobs(ctx, cfg)
	if err != nil {
		conn.Close()
		closeAll(closers)
		return nil, err
	}
	if c, ok := uploader.(io.Closer); ok {
		closers = append(closers, c)
	}

	subSvc := service.NewSubmissionService(repository.NewSubmissionRepo(conn), service.NewDocumentService(uploader))
	return &app{
		cfg:       cfg,
		conn:      conn,
		subs:      subSvc,
		analytics: service.NewAnalyticsService(repository.NewAnalyticsRepo(conn)),
		enc:       export.NewEncoder(loc),
		files:     files,
		closers:   closers,
	}, nil
}

func openBlobs(ctx context.Context, cfg *config.Config) (blob.Uploader, http.Handler, error) {
	switch cfg.BlobBackend {
	case "s3":
		s3, err := blob.NewS3(ctx, blob.S3Options{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			PublicURL: cfg.PublicURL,
		})
		if err != nil {
			return nil, nil, err
		}
		log.Printf("Attachments stored in s3://%s", cfg.S3Bucket)
		return s3, nil, nil
	case "gcs":
		gcs, err := blob.NewGCS(ctx, cfg.GCSBucket, cfg.PublicURL)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("Attachments stored in gs://%s", cfg.GCSBucket)
		return gcs, nil, nil
	default:
		local, err := blob.NewLocal(cfg.BlobDir, cfg.PublicURL)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("Attachments stored in %s", cfg.BlobDir)
		return local, http.FileServer(http.Dir(cfg.BlobDir)), nil
	}
}

func (a *app) Close() {
	if err := a.conn.Close(); err != nil {
		log.Printf("Warning: close database: %v", err)
	}
	closeAll(a.closers)
}

// closeAll closes the GELF writer and blob clients. Logging falls back to
// stderr first so nothing is written to a closed socket.
func closeAll(closers []io.Closer) {
	if len(closers) == 0 {
		return
	}
	log.SetOutput(os.Stderr)
	for _, c := range closers {
		if err := c.Close(); err != nil {
			log.Printf("Warning: close: %v", err)
		}
	}
}

func (a *app) handler() http.Handler {
	dashSvc := service.NewDashboardService(a.subs, a.analytics)
	return router.New(router.Handlers{
		Form:       handler.NewFormHandler(service.NewFormService()),
		Submission: handler.NewSubmissionHandler(a.subs, a.cfg.MaxUploadBytes()),
		Search:     handler.NewSearchHandler(service.NewSearchService(a.subs)),
		Admin:      handler.NewAdminHandler(a.subs, a.enc),
		Dashboard:  handler.NewDashboardHandler(dashSvc, a.analytics),
		Document:   handler.NewDocumentHandler(),
		Files:      a.files,
	})
}

func runServe(ctx context.Context, configPath string) error {
	a, err := openApp(ctx, configPath)
	if err != nil {
		return err
	}
	defer a.Close()

	srv := &http.Server{
		Addr:              a.cfg.HTTPAddr,
		Handler:           a.handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		log.Printf("ACO portal starting on %s", a.cfg.HTTPAddr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}
	log.Printf("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func runExport(ctx context.Context, configPath, out string, stdout io.Writer) error {
	a, err := openApp(ctx, configPath)
	if err != nil {
		return err
	}
	defer a.Close()

	data, err := a.subs.Export(ctx, a.enc)
	if err != nil {
		return err
	}
	if len(data) == 0 {
		log.Printf("Nothing to export")
		return nil
	}
	if out == "" {
		_, err = stdout.Write(data)
		return err
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return err
	}
	log.Printf("Exported to %s", out)
	return nil
}

func runStats(ctx context.Context, configPath string, stdout io.Writer) error {
	a, err := openApp(ctx, configPath)
	if err != nil {
		return err
	}
	defer a.Close()

	subs, err := a.subs.List(ctx)
	if err != nil {
		return err
	}
	sum, ok := stats.Summarize(subs)
	if !ok {
		fmt.Fprintln(stdout, service.EmptyDashboardMessage)
		return nil
	}
	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(sum)
}
