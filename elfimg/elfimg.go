// SPDX-License-Identifier: MIT
// SPDX-FileCopyrightText: Copyright 2026 Sam Blenny

package elfimg

import (
	"debug/elf"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Section is one loadable chunk of the linked program.
type Section struct {
	Name  string
	Vaddr uint64 // address in memory during execution
	Paddr uint64 // physical location in ReRAM storage
	Data  []byte // section contents
}

type Sections []*Section

// Symbols carries the linker-exported layout constants that the
// program's startup code uses to reconstruct writable memory at boot.
// The names match the symbols defined by the SDK's linker script.
type Symbols struct {
	DataLMA  uint64 // _data_lma: .data initial values in storage
	DataVMA  uint64 // _data_vma: .data destination in SRAM
	BSSVMA   uint64 // _bss_vma: start of the zeroed region in SRAM
	DataSize uint64 // _data_size: bytes to copy at boot
	BSSSize  uint64 // _bss_size: bytes to zero at boot
}

// ReadELF reads the loadable sections of the program together with the
// layout symbols. The order of the returned sections is unspecified.
func ReadELF(name string) (Sections, *Symbols, error) {
	r, err := os.Open(name)
	if err != nil {
		return nil, nil, err
	}
	defer r.Close()
	f, err := elf.NewFile(r)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	ss := make(Sections, 0, 16)
	for _, s := range f.Sections {
		if s.Type != elf.SHT_PROGBITS || s.Flags&elf.SHF_ALLOC == 0 {
			continue
		}
		data, err := s.Data()
		if err != nil {
			return nil, nil, err
		}
		if len(data) == 0 {
			continue
		}
		paddr := ^uint64(0)
		for _, p := range f.Progs {
			if p.Type != elf.PT_LOAD {
				continue
			}
			if p.Off <= s.Offset && s.Offset < p.Off+p.Filesz {
				paddr = p.Paddr + s.Offset - p.Off
				break
			}
		}
		ss = append(ss, &Section{s.Name, s.Addr, paddr, data})
	}
	sym, err := readSymbols(f)
	if err != nil {
		return nil, nil, err
	}
	return ss, sym, nil
}

func readSymbols(f *elf.File) (*Symbols, error) {
	syms, err := f.Symbols()
	if err != nil {
		return nil, fmt.Errorf("no symbol table: %w", err)
	}
	want := map[string]*uint64{}
	sym := new(Symbols)
	want["_data_lma"] = &sym.DataLMA
	want["_data_vma"] = &sym.DataVMA
	want["_bss_vma"] = &sym.BSSVMA
	want["_data_size"] = &sym.DataSize
	want["_bss_size"] = &sym.BSSSize
	for _, s := range syms {
		if p, ok := want[s.Name]; ok {
			*p = s.Value
			delete(want, s.Name)
		}
	}
	for name := range want {
		return nil, fmt.Errorf("linker symbol %s not found", name)
	}
	return sym, nil
}

// ReadBins reads raw binary files according to the FILE:ADDR[,...]
// description and returns them as sections placed at the given storage
// addresses.
func ReadBins(descr string) (Sections, error) {
	bins := strings.Split(descr, ",")
	ss := make(Sections, len(bins))
	for k, ba := range bins {
		i := strings.LastIndexByte(ba, ':')
		if i <= 0 {
			return nil, fmt.Errorf("bad '%s' in the binary include list", ba)
		}
		bin, addr := ba[:i], ba[i+1:]
		s := new(Section)
		s.Name = bin
		var err error
		s.Paddr, err = strconv.ParseUint(addr, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("bad address in '%s': %s", addr, err)
		}
		s.Vaddr = s.Paddr
		s.Data, err = os.ReadFile(bin)
		if err != nil {
			return nil, err
		}
		ss[k] = s
	}
	return ss, nil
}

// SortByPaddr sorts sections according to the Paddr field.
func (ss Sections) SortByPaddr() {
	sort.Slice(
		ss,
		func(i, j int) bool {
			return ss[i].Paddr < ss[j].Paddr
		},
	)
}
