// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: Copyright 2026 Sam Blenny

package profile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/samblenny/dabao-zephyr-cp-poc/uf2"
)

func TestDabao(t *testing.T) {
	t.Parallel()

	p := Dabao()
	require.NoError(t, p.Validate())
	require.Equal(t, uint32(0x60060300), p.TextStart())
	require.Equal(t, uint64(0x60060300), p.Layout().TextStart)
	require.Equal(t, uint64(16), p.Layout().Align)
	require.Equal(t, uint64(0x61000000), p.Layout().RAMStart)
	require.Equal(t, uint64(2<<20), p.Layout().RAMSize)
	require.Equal(t, uf2.Range{Start: 0x60000000, End: 0x60060000}, p.Reserved())
	require.Equal(t, uint32(uf2.FamilyBao1x), p.Family)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	p := Dabao()
	p.Name = "custom"
	p.StorageBase = 0x60080000
	p.ImageBudget = 0x10000

	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, Save(path, p))

	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, p, got)
}

// Fields absent from the YAML keep the built-in defaults.
func TestLoadPartial(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: half\nimage_budget: 4096\n"), 0o644))

	p, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "half", p.Name)
	require.Equal(t, uint32(4096), p.ImageBudget)
	require.Equal(t, Dabao().StorageBase, p.StorageBase)
	require.Equal(t, Dabao().Family, p.Family)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Profile)
	}{
		{"no name", func(p *Profile) { p.Name = "" }},
		{"bad block payload", func(p *Profile) { p.BlockPayload = 512 }},
		{"inverted reserved", func(p *Profile) { p.ReservedStart, p.ReservedEnd = p.ReservedEnd, p.ReservedStart }},
		{"base inside reserved", func(p *Profile) { p.StorageBase = p.ReservedStart }},
		{"align not power of two", func(p *Profile) { p.Align = 12 }},
		{"align zero", func(p *Profile) { p.Align = 0 }},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p := Dabao()
			tt.mutate(p)
			require.Error(t, p.Validate())
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
