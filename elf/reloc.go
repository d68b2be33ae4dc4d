package elf

// relocTypes is the per-architecture table of relocation type codes
// GetSymbolGotOffset cares about: the jump-slot type used by .rel(a).plt
// entries, and the absolute/glob-dat types used by .rel(a).dyn entries
// for data (non-PLT) imports (spec.md §4.5).
type relocTypes struct {
	jumpSlot uint32
	abs      uint32
	globDat  uint32
}

func relocTypesFor(machine uint16) (relocTypes, bool) {
	switch machine {
	case emArm:
		return relocTypes{jumpSlot: rARM386JmpSlot, abs: rARM386Abs32, globDat: rARM386GlobDat}, true
	case em386:
		return relocTypes{jumpSlot: r386JmpSlot, abs: r386_32, globDat: r386GlobDat}, true
	case emAarch64:
		return relocTypes{jumpSlot: rAarch64JmpSlot, abs: rAarch64Abs64, globDat: rAarch64GlobDat}, true
	case emX8664:
		return relocTypes{jumpSlot: rX8664JmpSlot, abs: rX8664_64, globDat: rX8664GlobDat}, true
	default:
		return relocTypes{}, false
	}
}

// relocTable describes one of .rel.plt/.rela.plt or .rel.dyn/.rela.dyn:
// a base address and a record count. Whether the records are REL- or
// RELA-shaped is not stored here; getSymbolGotOffset's useRela argument
// selects one record shape for both tables.
type relocTable struct {
	present bool
	base    uint64
	count   uint64
}

// getSymbolGotOffset finds every GOT/PLT slot that relocates against
// dynsymIndex. Per spec.md §4.5 (and SPEC_FULL.md §1, Open Question 2),
// the PLT table yields at most one match — the first jump-slot
// relocation found, since an import has exactly one PLT stub — while
// the data-relocation table accumulates every match, since a symbol
// can be referenced by more than one GOT data slot. Offsets are
// load-bias-relative, like every other public offset this package
// returns.
func getSymbolGotOffset(im *image, c ElfClass, machine uint16, useRela bool, relplt, reldyn relocTable, dynsymIndex uint32, loadBias uint64) []uint64 {
	rt, ok := relocTypesFor(machine)
	if !ok {
		return nil
	}

	recSize := relSize(c)
	if useRela {
		recSize = relaSize(c)
	}

	readEntry := func(tbl relocTable, i uint64) (relEntry, bool) {
		raw, ok := im.slice(tbl.base+i*recSize, recSize)
		if !ok {
			return relEntry{}, false
		}
		if useRela {
			return decodeRela(raw, im.order, c), true
		}
		return decodeRel(raw, im.order, c), true
	}

	var out []uint64

	if relplt.present {
		for i := uint64(0); i < relplt.count; i++ {
			rel, ok := readEntry(relplt, i)
			if !ok {
				break
			}
			if rSym(c, rel.Info) == dynsymIndex && rType(c, rel.Info) == rt.jumpSlot {
				out = append(out, rel.Offset-loadBias)
				break
			}
		}
	}

	if reldyn.present {
		for i := uint64(0); i < reldyn.count; i++ {
			rel, ok := readEntry(reldyn, i)
			if !ok {
				break
			}
			if rSym(c, rel.Info) != dynsymIndex {
				continue
			}
			switch rType(c, rel.Info) {
			case rt.abs, rt.globDat:
				out = append(out, rel.Offset-loadBias)
			}
		}
	}

	return out
}
