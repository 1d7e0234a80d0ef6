// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: Copyright 2026 Sam Blenny

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/samblenny/dabao-zephyr-cp-poc/sign"
	"github.com/samblenny/dabao-zephyr-cp-poc/uf2"
)

func run(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

// TestSignPackVerify drives the sign, uf2 and verify subcommands over
// a raw payload file, sharing one temp dir. Not parallel: the
// subcommands share flag state.
func TestSignPackVerify(t *testing.T) {
	dir := t.TempDir()
	bin := filepath.Join(dir, "firmware.bin")
	img := filepath.Join(dir, "firmware.img")
	u2f := filepath.Join(dir, "firmware.uf2")

	payload := make([]byte, 656)
	for i := range payload {
		payload[i] = byte(i)
	}
	require.NoError(t, os.WriteFile(bin, payload, 0o644))

	require.NoError(t, run(t, "sign", bin, img))
	signed, err := os.ReadFile(img)
	require.NoError(t, err)
	require.Len(t, signed, 656+sign.SigBlockLen)

	require.NoError(t, run(t, "uf2", img, u2f))
	blocks, err := os.ReadFile(u2f)
	require.NoError(t, err)
	require.Len(t, blocks, 6*uf2.BlockLen)

	require.NoError(t, run(t, "verify", img))
}

func TestSignEmptyPayloadFails(t *testing.T) {
	dir := t.TempDir()
	bin := filepath.Join(dir, "empty.bin")
	img := filepath.Join(dir, "empty.img")
	require.NoError(t, os.WriteFile(bin, nil, 0o644))

	err := run(t, "sign", bin, img)
	var serr *sign.SizeError
	require.ErrorAs(t, err, &serr)

	// A failed run writes nothing.
	_, err = os.Stat(img)
	require.True(t, os.IsNotExist(err))
}

// TestBadLogLevel checks that a typo in --log-level aborts the run
// instead of silently keeping the default level. Not parallel: the
// flag state is shared.
func TestBadLogLevel(t *testing.T) {
	defer func() {
		logLevel = "info"
	}()

	err := run(t, "verify", "--log-level", "loud", "nope.img")
	require.Error(t, err)
	require.Contains(t, err.Error(), "log level")
	require.Contains(t, err.Error(), "loud")
}

func TestOutName(t *testing.T) {
	require.Equal(t, "fw.uf2", outName("fw.img", "", ".img", ".uf2"))
	require.Equal(t, "other.uf2", outName("fw.img", "other.uf2", ".img", ".uf2"))
	require.Equal(t, "fw.bin.uf2", outName("fw.bin", "", ".img", ".uf2"))
}
