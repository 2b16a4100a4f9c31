package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/youruser/eidbanner/internal/banner"
	"github.com/youruser/eidbanner/internal/config"
	imagepkg "github.com/youruser/eidbanner/internal/image"
	"github.com/youruser/eidbanner/internal/logger"
)

var cfgFile string

// RootCmd is the entry command; it only hosts subcommands.
var RootCmd = &cobra.Command{
	Use:          "server",
	Short:        "Festive Eid greeting banner generator",
	SilenceUsage: true,
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "path to a YAML configuration file")
}

func main() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads configuration, configures logging and builds the generator
// shared by every subcommand.
func setup() (*config.Config, *banner.Generator, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	fonts, err := imagepkg.LoadFonts(imagepkg.FontOptions{
		BoldPath:    cfg.Fonts.BoldPath,
		RegularPath: cfg.Fonts.RegularPath,
		ScriptPath:  cfg.Fonts.ScriptPath,

		ScriptCandidates: cfg.Fonts.ScriptCandidates,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("load fonts: %w", err)
	}
	fetcher := imagepkg.NewFetcher(imagepkg.FetcherOptions{
		Timeout:   cfg.Avatar.Timeout,
		UserAgent: cfg.Avatar.UserAgent,
		MaxBytes:  cfg.Avatar.MaxBytes,
	})
	gen := banner.NewGenerator(banner.OptionsFromConfig(cfg.Banner), fetcher, fonts)
	return cfg, gen, nil
}
