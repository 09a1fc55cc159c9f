package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/passport-photo/internal/ai"
	"github.com/kozaktomas/passport-photo/internal/config"
	"github.com/kozaktomas/passport-photo/internal/sheet"
	"github.com/kozaktomas/passport-photo/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long: `Start the Passport Photo web server.
The browser UI lets you upload a portrait, check it, generate a passport
photo and download it as a single photo, a compressed web copy or a print
sheet. Generated photos are kept in memory only and expire automatically.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 0, "Port to listen on (default from WEB_PORT or 8080)")
	serveCmd.Flags().String("host", "", "Host to bind to (default from WEB_HOST or localhost)")
	serveCmd.Flags().String("provider", "", "AI provider to use (default from AI_PROVIDER)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	if port := mustGetInt(cmd, "port"); port > 0 {
		cfg.Web.Port = port
	}
	if host := mustGetString(cmd, "host"); host != "" {
		cfg.Web.Host = host
	}

	provider, err := ai.NewProvider(cmd.Context(), cfg, mustGetString(cmd, "provider"))
	if err != nil {
		return fmt.Errorf("creating AI provider: %w", err)
	}

	pipeline, err := sheet.NewPipeline(sheet.NewPDFEncoder())
	if err != nil {
		return err
	}

	server := web.NewServer(cfg, provider, pipeline)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			fmt.Printf("Error during shutdown: %v\n", err)
		}
	}()

	fmt.Printf("Starting Passport Photo Web UI on http://%s (AI provider: %s)\n", server.Addr(), provider.Name())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.Start(); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}

	printUsage(os.Stdout, provider)
	return nil
}
