// Command extract runs the receipt pipeline once on a local file and prints
// the resulting JSON to stdout.
//
// Usage:
//
//	extract receipt.jpg
//	extract invoice.bin --content-type application/pdf
package main

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"receiptscan/internal/app"
	"receiptscan/internal/config"
	"receiptscan/internal/logging"

	"github.com/spf13/cobra"
)

var (
	cfgFile     string
	contentType string
	v           = config.New()
)

var rootCmd = &cobra.Command{
	Use:          "extract <file>",
	Short:        "Extract receipt items from a local image or PDF",
	Args:         cobra.ExactArgs(1),
	SilenceUsage: true,
	RunE:         runExtract,
}

func init() {
	rootCmd.Flags().StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	rootCmd.Flags().StringVar(&contentType, "content-type", "", "override the detected content type")
	rootCmd.Flags().String("log-level", "warn", "log level (debug, info, warn, error)")
	if err := v.BindPFlag("log.level", rootCmd.Flags().Lookup("log-level")); err != nil {
		panic(err)
	}
}

// detectContentType prefers the file extension and falls back to sniffing.
func detectContentType(path string, data []byte) string {
	if ct := mime.TypeByExtension(filepath.Ext(path)); ct != "" {
		mediaType, _, err := mime.ParseMediaType(ct)
		if err == nil {
			return mediaType
		}
		return ct
	}
	ct := http.DetectContentType(data)
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return ct
	}
	return mediaType
}

func runExtract(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load(v, cfgFile)
	if err != nil {
		return err
	}
	// Logs go to stderr; stdout carries only the result.
	logger, err := logging.New(cfg.Log.Level, "console")
	if err != nil {
		return err
	}
	defer func() {
		_ = logger.Sync()
	}()

	data, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}

	ct := contentType
	if ct == "" {
		ct = detectContentType(args[0], data)
	}

	pipeline, err := app.Build(cfg, logger)
	if err != nil {
		return fmt.Errorf("build pipeline: %w", err)
	}

	result, err := pipeline.Service.Process(ctx, ct, data)
	if err != nil {
		return err
	}
	return writeResult(cmd.OutOrStdout(), result.Body())
}

func writeResult(w io.Writer, body []byte) error {
	_, err := fmt.Fprintf(w, "%s\n", body)
	return err
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
