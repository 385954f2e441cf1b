// Command api serves POST /extract_text/, turning receipt and invoice uploads
// into item/price JSON.
//
// Usage:
//
//	api                        # same as "api serve"
//	api serve --port 8000      # start the HTTP server
//	api serve --config app.yaml
package main

import (
	"fmt"
	"os"

	"receiptscan/internal/config"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	v       = config.New()
)

var rootCmd = &cobra.Command{
	Use:          "api",
	Short:        "Receipt and invoice item extraction service",
	SilenceUsage: true,
	RunE:         runServer,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	mustBindPFlag(v, "log.level", rootCmd.PersistentFlags().Lookup("log-level"))

	// Persistent so the bare "api" default action accepts them too.
	rootCmd.PersistentFlags().String("host", "0.0.0.0", "listen host")
	rootCmd.PersistentFlags().Int("port", 8000, "listen port")
	mustBindPFlag(v, "server.host", rootCmd.PersistentFlags().Lookup("host"))
	mustBindPFlag(v, "server.port", rootCmd.PersistentFlags().Lookup("port"))
}

func mustBindPFlag(v *viper.Viper, key string, flag *pflag.Flag) {
	if err := v.BindPFlag(key, flag); err != nil {
		panic(fmt.Sprintf("bind flag %s: %v", key, err))
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
