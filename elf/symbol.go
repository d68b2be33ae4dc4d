package elf

// symbolTables bundles everything the two public symbol-lookup
// operations (spec.md §4.4) need: the dynamic symbol table (resolved
// via hash or linear scan), the non-dynamic symtab (linear scan only),
// and whatever names the embedded mini debuginfo symtab contributed.
type symbolTables struct {
	im   *image
	c    ElfClass
	sec  sectionInfo
	mini map[string]uint64
}

// getSymbolOffset resolves name to a load-bias-relative offset, trying
// the dynamic symbol table first, then the non-dynamic .symtab, then
// mini debuginfo. Returns 0 if name is empty or unresolved anywhere
// (spec.md §7: sentinel-only error contract).
func (t symbolTables) getSymbolOffset(name string, loadBias uint64) uint64 {
	if name == "" {
		return 0
	}
	if sym, _, ok := lookupDynamicSymbol(t.im, t.c, t.sec, name, false); ok {
		return sym.Value - loadBias
	}
	if t.sec.haveSymtab && t.sec.haveStrtab {
		for i := uint64(0); i < t.sec.symtabCount; i++ {
			raw, ok := t.im.slice(t.sec.symtab+i*symSize(t.c), symSize(t.c))
			if !ok {
				break
			}
			sym := decodeSym(raw, t.im.order, t.c)
			if t.im.cStringAt(t.sec.strtab+uint64(sym.NameOff)) == name {
				return sym.Value - loadBias
			}
		}
	}
	if v, ok := t.mini[name]; ok {
		return v - loadBias
	}
	return 0
}

// getFirstSymbolOffsetWithPrefix linearly scans dynsym, then symtab,
// then mini debuginfo, in that order, returning the first symbol whose
// name starts with prefix. The mini debuginfo names are kept in a map,
// so when several of them match, which one is returned is not defined.
// No demangling is performed (spec.md §9: demangling is caller-level,
// out of scope).
func (t symbolTables) getFirstSymbolOffsetWithPrefix(prefix string, loadBias uint64) uint64 {
	if prefix == "" {
		return 0
	}
	if t.sec.haveDynsym && t.sec.haveDynstr {
		for i := uint64(0); i < t.sec.dynsymCount; i++ {
			raw, ok := t.im.slice(t.sec.dynsym+i*symSize(t.c), symSize(t.c))
			if !ok {
				break
			}
			sym := decodeSym(raw, t.im.order, t.c)
			name := t.im.cStringAt(t.sec.dynstr + uint64(sym.NameOff))
			if hasPrefix(name, prefix) {
				return sym.Value - loadBias
			}
		}
	}
	if t.sec.haveSymtab && t.sec.haveStrtab {
		for i := uint64(0); i < t.sec.symtabCount; i++ {
			raw, ok := t.im.slice(t.sec.symtab+i*symSize(t.c), symSize(t.c))
			if !ok {
				break
			}
			sym := decodeSym(raw, t.im.order, t.c)
			name := t.im.cStringAt(t.sec.strtab + uint64(sym.NameOff))
			if hasPrefix(name, prefix) {
				return sym.Value - loadBias
			}
		}
	}
	for name, v := range t.mini {
		if hasPrefix(name, prefix) {
			return v - loadBias
		}
	}
	return 0
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}
