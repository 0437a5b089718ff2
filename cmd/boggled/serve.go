package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/milden6/boggle/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Answer board requests over TCP",
	Long: `Start the board server. Each connection sends one request line such as

  GET /catdogxxxxxxxxxx HTTP/1.1

and gets back the words found on that board, one per line.

Examples:
  boggled serve                     # Serve on 127.0.0.1:8000
  boggled serve -p 9000 --host ::   # Serve on every interface`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntP("port", "p", 8000, "Port to serve on")
	serveCmd.Flags().String("host", "127.0.0.1", "Host to bind to")
	addFlagValidation(serveCmd.Flags(), "port", validatePort)

	v.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	v.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	trie, err := loadDictionary(ctx)
	if err != nil {
		logger.Fatal("cannot serve without a dictionary", zap.Error(err))
	}

	srv := server.New(trie, server.Config{
		Addr:            cfg.Server.Addr(),
		ReadTimeout:     cfg.Server.ReadTimeout,
		MaxRequestBytes: cfg.Server.MaxRequestBytes,
	}, server.WithLogger(logger.Named("server")))

	return srv.ListenAndServe(ctx)
}
