package elf

// sectionInfo accumulates everything the section-header walker (spec.md
// §4.3) locates by name or type.
type sectionInfo struct {
	haveDynstr bool
	dynstr     uint64

	haveStrtab bool
	strtab     uint64

	haveSymtab   bool
	symtab       uint64
	symtabCount  uint64

	haveDynsym  bool
	dynsym      uint64
	dynsymCount uint64

	haveSysvHash bool
	sysvHash     uint64 // byte offset of the raw .hash table
	sysvNbucket  uint32
	sysvNchain   uint32
	sysvBucket   uint64 // byte offset of bucket[0]
	sysvChain    uint64 // byte offset of chain[0]

	haveGnuHash bool
	gnuHash     uint64 // byte offset of the raw .gnu.hash table

	miniDebugInfo []byte // file form only
}

func walkSections(im *image, c ElfClass, h ehdr) sectionInfo {
	var info sectionInfo
	if h.Shoff == 0 || h.Shnum == 0 {
		return info
	}
	entSize := uint64(h.Shentsize)
	if entSize == 0 {
		entSize = shdrSize(c)
	}

	readShdr := func(i uint16) (sectionHeader, bool) {
		raw, ok := im.slice(h.Shoff+uint64(i)*entSize, entSize)
		if !ok {
			return sectionHeader{}, false
		}
		return decodeShdr(raw, im.order, c), true
	}

	strShdr, ok := readShdr(h.Shstrndx)
	if !ok {
		return info
	}
	shstrtabBase := im.at(strShdr.Offset, strShdr.Addr)

	for i := uint16(0); i < h.Shnum; i++ {
		shdr, ok := readShdr(i)
		if !ok {
			break
		}
		name := im.cStringAt(shstrtabBase + uint64(shdr.NameOff))
		base := im.at(shdr.Offset, shdr.Addr)

		switch shdr.Type {
		case shtStrtab:
			switch name {
			case ".dynstr":
				info.haveDynstr = true
				info.dynstr = base
			case ".strtab":
				info.haveStrtab = true
				info.strtab = base
			}
		case shtSymtab:
			if name == ".symtab" {
				// Unlike .dynsym below, .symtab is always addressed by
				// its raw file offset, even on a loaded attach — this
				// mirrors the source, which never runs the loaded-form
				// branch for the debug symbol table (Open Question 4).
				info.haveSymtab = true
				info.symtab = shdr.Offset
				info.symtabCount = shdr.Size / symSize(c)
			}
		case shtDynsym:
			info.haveDynsym = true
			info.dynsym = base
			info.dynsymCount = shdr.Size / symSize(c)
		case shtHash:
			if raw, ok := im.slice(base, 8); ok {
				info.haveSysvHash = true
				info.sysvHash = base
				info.sysvNbucket = im.order.Uint32(raw[0:4])
				info.sysvNchain = im.order.Uint32(raw[4:8])
				info.sysvBucket = base + 8
				info.sysvChain = info.sysvBucket + uint64(info.sysvNbucket)*4
			}
		case shtGnuHash:
			info.haveGnuHash = true
			info.gnuHash = base
		case shtProgbits:
			if name == ".gnu_debugdata" && !im.loaded {
				if raw, ok := im.slice(shdr.Offset, shdr.Size); ok {
					info.miniDebugInfo = raw
				}
			}
		}
	}
	return info
}
