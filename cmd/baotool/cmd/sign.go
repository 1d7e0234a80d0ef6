// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: Copyright 2026 Sam Blenny

package cmd

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/samblenny/dabao-zephyr-cp-poc/internal/logger"
)

var signCmd = &cobra.Command{
	Use:   "sign BIN [IMG]",
	Short: "Wrap a flat binary in the boot loader's signature block",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(_ *cobra.Command, args []string) error {
		prof, err := boardProfile()
		if err != nil {
			return err
		}
		in, out := argPair(args)
		payload, err := os.ReadFile(in)
		if err != nil {
			return errors.Wrap(err, "read payload")
		}
		signer, err := newSigner(prof)
		if err != nil {
			return err
		}
		signed, err := signer.Sign(payload)
		if err != nil {
			return err
		}
		logger.Debugf("signed %d payload bytes into a %d-byte image", len(payload), len(signed))
		return writeOut(outName(in, out, ".bin", ".img"), signed)
	},
}

func init() {
	addSignFlags(signCmd)
	rootCmd.AddCommand(signCmd)
}
