// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: Copyright 2026 Sam Blenny

// Package cmd implements the baotool subcommands.
package cmd

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/samblenny/dabao-zephyr-cp-poc/internal/logger"
	"github.com/samblenny/dabao-zephyr-cp-poc/internal/version"
	"github.com/samblenny/dabao-zephyr-cp-poc/profile"
)

var (
	profilePath string
	logLevel    string

	rootCmd = &cobra.Command{
		Use:     "baotool",
		Short:   "Prepare Bao1x firmware images for flashing",
		Version: version.Full(),
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			lvl, ok := logger.ParseLevel(logLevel)
			if !ok {
				return errors.Errorf("unknown log level %q (want debug, info, warn, or error)", logLevel)
			}
			logger.SetLevel(lvl)
			return nil
		},
	}
)

// Execute runs the baotool CLI and exits with non-zero status on
// error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Errorf("%v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&profilePath, "profile", "p", "",
		"board profile YAML (default: built-in dabao profile)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info",
		"log level: debug, info, warn, error")
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
}

// boardProfile resolves the --profile flag to a validated profile.
func boardProfile() (*profile.Profile, error) {
	if profilePath == "" {
		return profile.Dabao(), nil
	}
	return profile.Load(profilePath)
}

// outName derives an output file name from the input by swapping the
// suffix, unless the user named one explicitly.
func outName(in, explicit, oldSuffix, newSuffix string) string {
	if explicit != "" {
		return explicit
	}
	return strings.TrimSuffix(in, oldSuffix) + newSuffix
}

// argPair splits the common "IN [OUT]" argument shape.
func argPair(args []string) (string, string) {
	if len(args) > 1 {
		return args[0], args[1]
	}
	return args[0], ""
}
