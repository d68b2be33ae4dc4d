package elf

import "encoding/binary"

// The functions in this file are the "generic body over a small
// abstraction" spec.md §9 describes: every algorithm above this file
// (header walk, dynamic walk, section walk, hash probe, relocation
// scan) is written once, and dispatches to the 32- or 64-bit decode
// here only at the point a raw record is read off the wire. This keeps
// the duplicated part of the port to exactly the byte-layout functions
// below, instead of duplicating every algorithm.

func phdrSize(c ElfClass) uint64 {
	if c == Class64 {
		return phdr64Size
	}
	return phdr32Size
}

func shdrSize(c ElfClass) uint64 {
	if c == Class64 {
		return shdr64Size
	}
	return shdr32Size
}

func dynSize(c ElfClass) uint64 {
	if c == Class64 {
		return dyn64Size
	}
	return dyn32Size
}

func symSize(c ElfClass) uint64 {
	if c == Class64 {
		return sym64Size
	}
	return sym32Size
}

func relSize(c ElfClass) uint64 {
	if c == Class64 {
		return rel64Size
	}
	return rel32Size
}

func relaSize(c ElfClass) uint64 {
	if c == Class64 {
		return rela64Size
	}
	return rela32Size
}

// rSym extracts the dynsym index (ELF32_R_SYM / ELF64_R_SYM) from r_info.
func rSym(c ElfClass, info uint64) uint32 {
	if c == Class64 {
		return uint32(info >> 32)
	}
	return uint32(info >> 8)
}

// rType extracts the relocation type (ELF32_R_TYPE / ELF64_R_TYPE) from r_info.
func rType(c ElfClass, info uint64) uint32 {
	if c == Class64 {
		return uint32(info)
	}
	return uint32(info & 0xff)
}

type progHeader struct {
	Type   uint32
	Offset uint64
	Vaddr  uint64
	Filesz uint64
	Memsz  uint64
}

func decodePhdr(b []byte, o binary.ByteOrder, c ElfClass) progHeader {
	if c == Class64 {
		return progHeader{
			Type:   o.Uint32(b[0:4]),
			Offset: o.Uint64(b[8:16]),
			Vaddr:  o.Uint64(b[16:24]),
			Filesz: o.Uint64(b[32:40]),
			Memsz:  o.Uint64(b[40:48]),
		}
	}
	return progHeader{
		Type:   o.Uint32(b[0:4]),
		Offset: uint64(o.Uint32(b[4:8])),
		Vaddr:  uint64(o.Uint32(b[8:12])),
		Filesz: uint64(o.Uint32(b[16:20])),
		Memsz:  uint64(o.Uint32(b[20:24])),
	}
}

type sectionHeader struct {
	NameOff uint32
	Type    uint32
	Addr    uint64
	Offset  uint64
	Size    uint64
	Link    uint32
}

func decodeShdr(b []byte, o binary.ByteOrder, c ElfClass) sectionHeader {
	if c == Class64 {
		return sectionHeader{
			NameOff: o.Uint32(b[0:4]),
			Type:    o.Uint32(b[4:8]),
			Addr:    o.Uint64(b[16:24]),
			Offset:  o.Uint64(b[24:32]),
			Size:    o.Uint64(b[32:40]),
			Link:    o.Uint32(b[40:44]),
		}
	}
	return sectionHeader{
		NameOff: o.Uint32(b[0:4]),
		Type:    o.Uint32(b[4:8]),
		Addr:    uint64(o.Uint32(b[12:16])),
		Offset:  uint64(o.Uint32(b[16:20])),
		Size:    uint64(o.Uint32(b[20:24])),
		Link:    o.Uint32(b[24:28]),
	}
}

type dynEntry struct {
	Tag int64
	Val uint64
}

func decodeDyn(b []byte, o binary.ByteOrder, c ElfClass) dynEntry {
	if c == Class64 {
		return dynEntry{
			Tag: int64(o.Uint64(b[0:8])),
			Val: o.Uint64(b[8:16]),
		}
	}
	return dynEntry{
		Tag: int64(int32(o.Uint32(b[0:4]))),
		Val: uint64(o.Uint32(b[4:8])),
	}
}

type symEntry struct {
	NameOff uint32
	Value   uint64
	Info    byte
}

func decodeSym(b []byte, o binary.ByteOrder, c ElfClass) symEntry {
	if c == Class64 {
		return symEntry{
			NameOff: o.Uint32(b[0:4]),
			Info:    b[4],
			Value:   o.Uint64(b[8:16]),
		}
	}
	return symEntry{
		NameOff: o.Uint32(b[0:4]),
		Value:   uint64(o.Uint32(b[4:8])),
		Info:    b[12],
	}
}

type relEntry struct {
	Offset uint64
	Info   uint64
}

func decodeRel(b []byte, o binary.ByteOrder, c ElfClass) relEntry {
	if c == Class64 {
		return relEntry{Offset: o.Uint64(b[0:8]), Info: o.Uint64(b[8:16])}
	}
	return relEntry{Offset: uint64(o.Uint32(b[0:4])), Info: uint64(o.Uint32(b[4:8]))}
}

// decodeRela reads the same leading (offset, info) shape as decodeRel;
// the addend is not needed by anything in this package.
func decodeRela(b []byte, o binary.ByteOrder, c ElfClass) relEntry {
	return decodeRel(b, o, c)
}
