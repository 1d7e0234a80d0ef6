// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: Copyright 2026 Sam Blenny

// Package profile names the addressing conventions of a board and its
// boot loader, so the extract/sign/pack pipeline carries no hard-coded
// addresses. Profiles can be loaded from YAML for boards other than
// the built-in dabao.
package profile

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/samblenny/dabao-zephyr-cp-poc/elfimg"
	"github.com/samblenny/dabao-zephyr-cp-poc/uf2"
)

// Profile holds every address, size and identifier the pipeline needs
// for one board / boot loader combination. Each field affects exactly
// one aspect of one output file.
type Profile struct {
	// Name identifies the profile in logs and errors.
	Name string `yaml:"name"`

	// StorageBase is where the signed image (signature block first)
	// lands in ReRAM storage.
	StorageBase uint32 `yaml:"storage_base"`

	// SigBlockLen is the signature block size; the boot loader jumps
	// to StorageBase and the jump header skips exactly this many
	// bytes.
	SigBlockLen uint32 `yaml:"sig_block_len"`

	// JumpHeader records whether images for this boot loader start
	// with the jump-over-signature-block convention.
	JumpHeader bool `yaml:"jump_header"`

	// RAMBase and RAMSize describe the SRAM window the writable
	// sections must land in.
	RAMBase uint32 `yaml:"ram_base"`
	RAMSize uint32 `yaml:"ram_size"`

	// Align is the required alignment of the .data template after the
	// read-only region.
	Align uint32 `yaml:"align"`

	// FunctionCode is the default image role for this profile.
	FunctionCode uint32 `yaml:"function_code"`

	// MinBootVersion is the minimum-compatible boot loader version in
	// "MAJOR.MINOR.PATCH[-EXTRA][+gCOMMIT]" form.
	MinBootVersion string `yaml:"min_boot_version"`

	// Family is the UF2 family id the boot loader accepts.
	Family uint32 `yaml:"family"`

	// BlockPayload is the UF2 payload size per block.
	BlockPayload uint32 `yaml:"block_payload"`

	// ImageBudget caps the signed image size to the storage slot.
	ImageBudget uint32 `yaml:"image_budget"`

	// ReservedStart/ReservedEnd is the boot-loader-owned storage span
	// no block may target.
	ReservedStart uint32 `yaml:"reserved_start"`
	ReservedEnd   uint32 `yaml:"reserved_end"`
}

// Dabao returns the built-in profile for the Baochip Bao1x dabao
// board.
func Dabao() *Profile {
	return &Profile{
		Name:           "dabao",
		StorageBase:    0x6006_0000,
		SigBlockLen:    768,
		JumpHeader:     true,
		RAMBase:        0x6100_0000,
		RAMSize:        2 * 1024 * 1024,
		Align:          16,
		FunctionCode:   6, // bare-metal application
		MinBootVersion: "0.9.8-791",
		Family:         uf2.FamilyBao1x,
		BlockPayload:   uf2.PayloadLen,
		ImageBudget:    0x3a_0000, // remaining ReRAM above the image base
		ReservedStart:  0x6000_0000,
		ReservedEnd:    0x6006_0000,
	}
}

// TextStart is the boot loader's jump target: the first byte of the
// program, right after the signature block.
func (p *Profile) TextStart() uint32 {
	return p.StorageBase + p.SigBlockLen
}

// Layout returns the extractor's view of the profile.
func (p *Profile) Layout() elfimg.Layout {
	return elfimg.Layout{
		TextStart: uint64(p.TextStart()),
		Align:     uint64(p.Align),
		RAMStart:  uint64(p.RAMBase),
		RAMSize:   uint64(p.RAMSize),
	}
}

// Reserved returns the packer's exclusion range.
func (p *Profile) Reserved() uf2.Range {
	return uf2.Range{Start: p.ReservedStart, End: p.ReservedEnd}
}

// Validate checks the profile for internally inconsistent values.
func (p *Profile) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("profile has no name")
	}
	if p.BlockPayload != uf2.PayloadLen {
		return fmt.Errorf(
			"profile %s: block payload %d not supported, the UF2 container carries %d bytes per block",
			p.Name, p.BlockPayload, uf2.PayloadLen,
		)
	}
	if p.ReservedEnd < p.ReservedStart {
		return fmt.Errorf(
			"profile %s: reserved range [%#x, %#x) is inverted",
			p.Name, p.ReservedStart, p.ReservedEnd,
		)
	}
	if p.StorageBase >= p.ReservedStart && p.StorageBase < p.ReservedEnd {
		return fmt.Errorf(
			"profile %s: storage base %#x lies in the reserved range",
			p.Name, p.StorageBase,
		)
	}
	if p.Align == 0 || p.Align&(p.Align-1) != 0 {
		return fmt.Errorf("profile %s: align %d is not a power of two", p.Name, p.Align)
	}
	return nil
}

// Load reads a profile from a YAML file and validates it. Fields
// absent from the file keep the built-in dabao defaults.
func Load(path string) (*Profile, error) {
	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, errors.Wrap(err, "read profile")
	}
	p := Dabao()
	if err := yaml.Unmarshal(contents, p); err != nil {
		return nil, errors.Wrap(err, "unmarshal profile")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Save writes the profile to a YAML file.
func Save(path string, p *Profile) error {
	if err := p.Validate(); err != nil {
		return err
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return errors.Wrap(err, "marshal profile")
	}
	if err := os.WriteFile(filepath.Clean(path), data, 0o644); err != nil {
		return errors.Wrap(err, "write profile")
	}
	return nil
}
