package elf

import "encoding/binary"

const minHeaderSize = 64

// detectClassAndOrder reads e_ident to determine the class and byte
// order a raw image should be decoded with. Returns ok=false if data
// is too short or doesn't start with the ELF magic, or carries a class
// or byte order this package doesn't recognize (spec.md §7: malformed
// inputs are identified, not decoded).
func detectClassAndOrder(data []byte) (ElfClass, binary.ByteOrder, bool) {
	if len(data) < minHeaderSize || string(data[0:4]) != elfMagic {
		return ClassNone, nil, false
	}
	var c ElfClass
	switch data[eiClass] {
	case 1:
		c = Class32
	case 2:
		c = Class64
	default:
		return ClassNone, nil, false
	}
	var order binary.ByteOrder
	switch data[eiData] {
	case elfDataLSB:
		order = binary.LittleEndian
	case elfDataMSB:
		order = binary.BigEndian
	default:
		return ClassNone, nil, false
	}
	return c, order, true
}

type ehdr struct {
	Machine    uint16
	Phoff      uint64
	Phentsize  uint16
	Phnum      uint16
	Shoff      uint64
	Shentsize  uint16
	Shnum      uint16
	Shstrndx   uint16
}

func decodeEhdr(b []byte, o binary.ByteOrder, c ElfClass) ehdr {
	if c == Class64 {
		return ehdr{
			Machine:   o.Uint16(b[18:20]),
			Phoff:     o.Uint64(b[32:40]),
			Shoff:     o.Uint64(b[40:48]),
			Phentsize: o.Uint16(b[54:56]),
			Phnum:     o.Uint16(b[56:58]),
			Shentsize: o.Uint16(b[58:60]),
			Shnum:     o.Uint16(b[60:62]),
			Shstrndx:  o.Uint16(b[62:64]),
		}
	}
	return ehdr{
		Machine:   o.Uint16(b[18:20]),
		Phoff:     uint64(o.Uint32(b[28:32])),
		Shoff:     uint64(o.Uint32(b[32:36])),
		Phentsize: o.Uint16(b[42:44]),
		Phnum:     o.Uint16(b[44:46]),
		Shentsize: o.Uint16(b[46:48]),
		Shnum:     o.Uint16(b[48:50]),
		Shstrndx:  o.Uint16(b[50:52]),
	}
}

// dynamicSegment locates the (at most one) PT_DYNAMIC segment while
// folding in the running loadBias/loadedSize computation from every
// PT_LOAD segment, per spec.md §4.1.
type dynamicSegment struct {
	found  bool
	Offset uint64
	Vaddr  uint64
	Memsz  uint64
}

func walkProgramHeaders(im *image, c ElfClass, h ehdr) (loadBias uint64, loadedSize uint64, dyn dynamicSegment) {
	if h.Phoff == 0 {
		return 0, 0, dynamicSegment{}
	}
	entSize := uint64(h.Phentsize)
	if entSize == 0 {
		entSize = phdrSize(c)
	}
	haveLoad := false
	var lo, hi uint64
	for i := uint16(0); i < h.Phnum; i++ {
		off := h.Phoff + uint64(i)*entSize
		raw, ok := im.slice(off, phdrSize(c))
		if !ok {
			break
		}
		ph := decodePhdr(raw, im.order, c)
		switch ph.Type {
		case ptDynamic:
			if !dyn.found {
				dyn = dynamicSegment{found: true, Offset: ph.Offset, Vaddr: ph.Vaddr, Memsz: ph.Memsz}
			}
		case ptLoad:
			if !haveLoad || ph.Vaddr < lo {
				lo = ph.Vaddr
			}
			if end := ph.Vaddr + ph.Memsz; !haveLoad || end > hi {
				hi = end
			}
			haveLoad = true
		}
	}
	if !haveLoad {
		return 0, 0, dyn
	}
	return lo, hi - lo, dyn
}
