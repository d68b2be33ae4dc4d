package elf

import "encoding/binary"

// image is the borrowed byte range backing an attached ElfView, plus the
// addressing mode (file offsets vs loaded virtual addresses) used to
// interpret section and segment table pointers.
//
// This is the single place spec.md §9 ("File vs loaded addressing")
// asks for: everywhere else in the package calls image.at(fileOff,
// vaddr) instead of threading an isLoaded bool through every lookup.
type image struct {
	data   []byte
	loaded bool
	order  binary.ByteOrder
}

// at picks the byte index to use for a section/segment, depending on
// whether this image is a file-form or loaded-form attach.
func (im *image) at(fileOff, vaddr uint64) uint64 {
	if im.loaded {
		return vaddr
	}
	return fileOff
}

// slice returns data[off:off+size], or false if that range doesn't lie
// entirely within the attached image. Every table pointer in the
// descriptor must be validated this way before use (spec.md §3
// invariant 2, §7 "bounds-violating inputs").
func (im *image) slice(off, size uint64) ([]byte, bool) {
	if size == 0 {
		return nil, off <= uint64(len(im.data))
	}
	end := off + size
	if end < off || end > uint64(len(im.data)) {
		return nil, false
	}
	return im.data[off:end], true
}

// byteAt is a bounds-checked single-byte read.
func (im *image) byteAt(off uint64) (byte, bool) {
	if off >= uint64(len(im.data)) {
		return 0, false
	}
	return im.data[off], true
}

// cStringAt reads a NUL-terminated string starting at off. Returns ""
// if off is out of range; a missing terminator reads to the end of the
// image rather than panicking.
func (im *image) cStringAt(off uint64) string {
	if off >= uint64(len(im.data)) {
		return ""
	}
	rest := im.data[off:]
	for i, b := range rest {
		if b == 0 {
			return string(rest[:i])
		}
	}
	return string(rest)
}
