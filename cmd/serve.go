package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/dotcommander/tmmi/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the scoring engine as a JSON HTTP API",
	Long: `The serve command loads the catalog once and answers scoring requests over HTTP.

Routes:
  GET  /healthz
  GET  /v1/catalog
  POST /v1/summary      body: assessment
  POST /v1/readiness    body: assessment
  POST /v1/gaps         body: assessment, ?enhanced=true
  POST /v1/coverage     body: assessment
  POST /v1/progress     body: array of assessments`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if err := runServe(cmd.Context()); err != nil {
			fail(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
}

func runServe(ctx context.Context) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	defer s.close()

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	h := server.NewHandler(s.questions, s.log, s.options()...)
	router := server.NewRouter(h, s.log, server.RouterOptions{
		AllowedOrigins: s.cfg.Server.AllowedOrigins,
		Timeout:        s.cfg.Server.WriteTimeout,
	})
	return server.New(s.cfg.Server, router, s.log).Run(ctx)
}
