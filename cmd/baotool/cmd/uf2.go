// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: Copyright 2026 Sam Blenny

package cmd

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/samblenny/dabao-zephyr-cp-poc/internal/logger"
	"github.com/samblenny/dabao-zephyr-cp-poc/uf2"
)

var uf2Cmd = &cobra.Command{
	Use:   "uf2 IMG [UF2]",
	Short: "Pack a signed image into a UF2 file",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(_ *cobra.Command, args []string) error {
		prof, err := boardProfile()
		if err != nil {
			return err
		}
		in, out := argPair(args)
		signed, err := os.ReadFile(in)
		if err != nil {
			return errors.Wrap(err, "read signed image")
		}
		blocks, err := pack(prof, signed)
		if err != nil {
			return err
		}
		logger.Debugf("%d UF2 blocks targeting %#x", uf2.NumBlocks(len(signed)), prof.StorageBase)
		return writeOut(outName(in, out, ".img", ".uf2"), blocks)
	},
}

func init() {
	rootCmd.AddCommand(uf2Cmd)
}
