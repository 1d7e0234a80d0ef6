// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: Copyright 2026 Sam Blenny

package elfimg

import (
	"errors"
	"fmt"
)

// Layout describes the addressing conventions of the target boot
// loader. See the profile package for per-board values.
type Layout struct {
	TextStart uint64 // boot loader jump target in storage
	Align     uint64 // required alignment of the .data template
	RAMStart  uint64 // SRAM window the writable sections must land in
	RAMSize   uint64 // SRAM window size; zero disables the check
}

// FlatImage is the contiguous byte image of the program as it must
// appear in ReRAM storage, plus the metadata the startup code uses to
// reconstruct writable memory. It is a pure value: once built it is
// never mutated.
type FlatImage struct {
	Base     uint64 // storage address of Data[0]
	Data     []byte // exactly the bytes to place at Base
	DataLMA  uint64 // storage address of the .data template
	DataVMA  uint64 // SRAM destination of the .data template
	DataSize uint64 // template length in bytes
	BSSStart uint64 // SRAM address of the zeroed region
	BSSSize  uint64 // zeroed region length (no bytes in Data)
}

// BuildImage validates the section layout against the linker symbols
// and flattens the sections into a FlatImage. Sections whose run and
// load addresses differ form the writable-section template; all others
// are read-only and must start at lay.TextStart.
func BuildImage(ss Sections, sym *Symbols, lay Layout) (*FlatImage, error) {
	if len(ss) == 0 {
		return nil, errors.New("no loadable sections")
	}
	align := lay.Align
	if align == 0 {
		align = 16
	}
	var ro, tmpl Sections
	for _, s := range ss {
		if s.Vaddr != s.Paddr {
			tmpl = append(tmpl, s)
		} else {
			ro = append(ro, s)
		}
	}
	if len(ro) == 0 {
		return nil, errors.New("no read-only sections")
	}
	ro.SortByPaddr()
	if ro[0].Paddr != lay.TextStart {
		return nil, &LayoutError{
			What: "read-only region start (boot loader jump target)",
			Want: lay.TextStart,
			Got:  ro[0].Paddr,
		}
	}
	data, err := flattenRegion(ro, lay.TextStart)
	if err != nil {
		return nil, err
	}
	roEnd := lay.TextStart + uint64(len(data))
	alignedEnd := (roEnd + align - 1) &^ (align - 1)

	img := &FlatImage{
		Base:     lay.TextStart,
		DataLMA:  sym.DataLMA,
		DataVMA:  sym.DataVMA,
		DataSize: sym.DataSize,
		BSSStart: sym.BSSVMA,
		BSSSize:  sym.BSSSize,
	}
	// The startup code copies .data and zeroes .bss at the linker's
	// run addresses; targets outside the board's SRAM window mean a
	// misconfigured linker script.
	if lay.RAMSize != 0 {
		ram := fmt.Sprintf("RAM window [%#x, %#x)", lay.RAMStart, lay.RAMStart+lay.RAMSize)
		if sym.DataSize != 0 && !inRAM(sym.DataVMA, sym.DataSize, lay) {
			return nil, &LayoutError{
				What: ".data run region outside " + ram,
				Want: lay.RAMStart,
				Got:  sym.DataVMA,
			}
		}
		if sym.BSSSize != 0 && !inRAM(sym.BSSVMA, sym.BSSSize, lay) {
			return nil, &LayoutError{
				What: ".bss region outside " + ram,
				Want: lay.RAMStart,
				Got:  sym.BSSVMA,
			}
		}
	}
	if sym.DataSize == 0 && len(tmpl) == 0 {
		img.Data = data
		return img, nil
	}
	if len(tmpl) == 0 {
		return nil, &LayoutError{
			What: "writable-section template (no section matches _data_lma)",
			Want: sym.DataSize,
			Got:  0,
		}
	}
	tmpl.SortByPaddr()
	if tmpl[0].Paddr != sym.DataLMA {
		return nil, &LayoutError{
			What: ".data template load address vs _data_lma",
			Want: sym.DataLMA,
			Got:  tmpl[0].Paddr,
		}
	}
	if tmpl[0].Vaddr != sym.DataVMA {
		return nil, &LayoutError{
			What: ".data template run address vs _data_vma",
			Want: sym.DataVMA,
			Got:  tmpl[0].Vaddr,
		}
	}
	// The startup copy assumes the template follows the read-only
	// region at the next aligned address, with nothing in between.
	if sym.DataLMA != alignedEnd {
		return nil, &AlignmentError{ROEnd: alignedEnd, DataLMA: sym.DataLMA}
	}
	tdata, err := flattenRegion(tmpl, sym.DataLMA)
	if err != nil {
		return nil, err
	}
	if uint64(len(tdata)) != sym.DataSize {
		return nil, &LayoutError{
			What: ".data template length vs _data_size",
			Want: sym.DataSize,
			Got:  uint64(len(tdata)),
		}
	}
	data = append(data, make([]byte, alignedEnd-roEnd)...)
	data = append(data, tdata...)
	img.Data = data
	return img, nil
}

// inRAM reports whether [addr, addr+size) fits inside the layout's
// RAM window.
func inRAM(addr, size uint64, lay Layout) bool {
	return addr >= lay.RAMStart && addr+size <= lay.RAMStart+lay.RAMSize
}

// flattenRegion concatenates sections by load address starting at base,
// zero-filling alignment gaps between them.
func flattenRegion(ss Sections, base uint64) ([]byte, error) {
	out := make([]byte, 0, 1024)
	pa := base
	for _, s := range ss {
		if s.Paddr < pa {
			return nil, &LayoutError{
				What: fmt.Sprintf("section %s overlaps the preceding one", s.Name),
				Want: pa,
				Got:  s.Paddr,
			}
		}
		out = append(out, make([]byte, s.Paddr-pa)...)
		out = append(out, s.Data...)
		pa = s.Paddr + uint64(len(s.Data))
	}
	return out, nil
}
