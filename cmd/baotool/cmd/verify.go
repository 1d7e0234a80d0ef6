// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: Copyright 2026 Sam Blenny

package cmd

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/samblenny/dabao-zephyr-cp-poc/internal/logger"
	"github.com/samblenny/dabao-zephyr-cp-poc/sign"
)

var verifyCmd = &cobra.Command{
	Use:   "verify IMG",
	Short: "Check a signed image the way the boot loader's verifier does",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		img, err := os.ReadFile(args[0])
		if err != nil {
			return errors.Wrap(err, "read signed image")
		}
		info, err := sign.Verify(img)
		if err != nil {
			return err
		}
		logger.Infof("%s: signature verifies against key slot %d (%q), function code %d, %d signed bytes",
			args[0], info.Slot, info.Pubkeys[info.Slot].Tag[:], info.FunctionCode, info.SignedLen)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
