// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the mention-scan CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the mention-scan CLI.
var rootCmd = &cobra.Command{
	Use:   "mention-scan",
	Short: "Check contact names against a document search API",
	Long: `mention-scan reads a connections CSV export, queries each contact's name
against a remote full-text search API at a fixed, polite pace, and writes a
single report showing which contacts appear in the indexed corpus.

Matching is lexical: a hit means the name string occurs in a document, not
that the document is about that person.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./mention-scan.yaml or ~/.config/mention-scan/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("mention-scan")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "mention-scan"))
		}
	}

	viper.SetEnvPrefix("MENTION_SCAN")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
