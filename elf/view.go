package elf

import (
	"sync/atomic"

	"github.com/go-kit/log"
)

// elfInfo is the parsed descriptor spec.md §3 describes: everything an
// attach computes once, borrowed from the attached image, replaced
// wholesale (never mutated in place) on every re-attach.
type elfInfo struct {
	im *image

	class   ElfClass
	machine uint16
	soname  string

	loadBias   uint64
	loadedSize uint64

	sec sectionInfo
	dyn dynInfo

	compressedDebugSymbols map[string]uint64
}

func (info *elfInfo) symbolTables() symbolTables {
	return symbolTables{im: info.im, c: info.class, sec: info.sec, mini: info.compressedDebugSymbols}
}

// relocTables builds the relplt/rel(a)dyn descriptors getSymbolGotOffset
// needs, picking the REL or RELA table per DT_PLTREL (spec.md §4.5 step 2).
func (info *elfInfo) relocTables() (relplt, reldyn relocTable) {
	relplt = relocTable{
		present: info.dyn.haveRelplt,
		base:    info.dyn.relplt,
		count:   info.dyn.relpltCount(info.class),
	}
	if info.dyn.useRela {
		reldyn = relocTable{present: info.dyn.haveReladyn, base: info.dyn.reladyn, count: info.dyn.reladynCount}
	} else {
		reldyn = relocTable{present: info.dyn.haveReldyn, base: info.dyn.reldyn, count: info.dyn.reldynCount}
	}
	return relplt, reldyn
}

// AttachOptions configures a single attach call, the way the teacher's
// ElfTableOptions/SymbolOptions configure NewElfTable/NewSymbolCache.
type AttachOptions struct {
	// Logger receives the only diagnostics this package emits: warnings
	// while loading .gnu_debugdata, for a decompression failure or a
	// decompressed payload that is not an ELF image (spec.md §4.6/§7).
	// A nil Logger, or omitting AttachOptions entirely,
	// falls back to log.NewNopLogger().
	Logger log.Logger
}

func (o AttachOptions) logger() log.Logger {
	if o.Logger == nil {
		return log.NewNopLogger()
	}
	return o.Logger
}

func firstAttachOptions(opts []AttachOptions) AttachOptions {
	if len(opts) == 0 {
		return AttachOptions{}
	}
	return opts[0]
}

// ElfView inspects a single attached ELF image. It is not safe for
// concurrent attach/detach and query; readers may share a view only
// once it is fully attached and guaranteed not to be re-attached or
// detached for the duration (spec.md §5).
type ElfView struct {
	info atomic.Pointer[elfInfo]
}

// NewElfView constructs an unattached view.
func NewElfView() *ElfView {
	return &ElfView{}
}

func parseElfInfo(logger log.Logger, data []byte, loaded bool) *elfInfo {
	c, order, ok := detectClassAndOrder(data)
	if !ok {
		return &elfInfo{class: ClassNone}
	}
	im := &image{data: data, loaded: loaded, order: order}
	h := decodeEhdr(data[:minHeaderSize], order, c)

	loadBias, loadedSize, dynSeg := walkProgramHeaders(im, c, h)
	dyn := walkDynamic(im, c, dynSeg)
	sec := walkSections(im, c, h)

	var soname string
	if dyn.haveSonameOff && dyn.haveStrtab {
		soname = im.cStringAt(dyn.strtab + dyn.sonameOff)
	}

	var mini map[string]uint64
	if !loaded && len(sec.miniDebugInfo) > 0 {
		mini = loadMiniDebugInfo(logger, sec.miniDebugInfo)
	}

	return &elfInfo{
		im:                     im,
		class:                  c,
		machine:                h.Machine,
		soname:                 soname,
		loadBias:               loadBias,
		loadedSize:             loadedSize,
		sec:                    sec,
		dyn:                    dyn,
		compressedDebugSymbols: mini,
	}
}

// AttachFileMemMapping attaches a raw on-disk ELF image, section and
// segment pointers interpreted via sh_offset/p_offset. Returns whether
// the result is valid; re-attaching discards the prior descriptor
// atomically (spec.md §3, Lifecycle).
func (v *ElfView) AttachFileMemMapping(data []byte, opts ...AttachOptions) bool {
	info := parseElfInfo(firstAttachOptions(opts).logger(), data, false)
	v.info.Store(info)
	return info.class != ClassNone
}

// AttachLoadedMemoryView attaches a live in-memory image placed by a
// loader, section and segment pointers interpreted via sh_addr/p_vaddr.
func (v *ElfView) AttachLoadedMemoryView(data []byte, opts ...AttachOptions) bool {
	info := parseElfInfo(firstAttachOptions(opts).logger(), data, true)
	v.info.Store(info)
	return info.class != ClassNone
}

// Detach clears the attached descriptor; every subsequent query returns
// its miss sentinel until the next attach.
func (v *ElfView) Detach() {
	v.info.Store(nil)
}

func (v *ElfView) valid() *elfInfo {
	info := v.info.Load()
	if info == nil || info.class == ClassNone {
		return nil
	}
	return info
}

func (v *ElfView) IsValid() bool {
	return v.valid() != nil
}

func (v *ElfView) GetPointerSize() int {
	info := v.valid()
	if info == nil {
		return 0
	}
	return info.class.PointerSize()
}

func (v *ElfView) GetArchitecture() uint16 {
	info := v.valid()
	if info == nil {
		return 0
	}
	return info.machine
}

func (v *ElfView) GetLoadBias() uint64 {
	info := v.valid()
	if info == nil {
		return 0
	}
	return info.loadBias
}

func (v *ElfView) GetLoadedSize() uint64 {
	info := v.valid()
	if info == nil {
		return 0
	}
	return info.loadedSize
}

func (v *ElfView) GetSoname() string {
	info := v.valid()
	if info == nil {
		return ""
	}
	return info.soname
}

func (v *ElfView) GetSymbolOffset(name string) uint64 {
	info := v.valid()
	if info == nil {
		return 0
	}
	return info.symbolTables().getSymbolOffset(name, info.loadBias)
}

func (v *ElfView) GetFirstSymbolOffsetWithPrefix(prefix string) uint64 {
	info := v.valid()
	if info == nil {
		return 0
	}
	return info.symbolTables().getFirstSymbolOffsetWithPrefix(prefix, info.loadBias)
}

func (v *ElfView) GetSymbolGotOffset(name string) []uint64 {
	if name == "" {
		return nil
	}
	info := v.valid()
	if info == nil {
		return nil
	}
	_, dynsymIndex, found := lookupDynamicSymbol(info.im, info.class, info.sec, name, true)
	if !found {
		return nil
	}
	relplt, reldyn := info.relocTables()
	return getSymbolGotOffset(info.im, info.class, info.machine, info.dyn.useRela, relplt, reldyn, dynsymIndex, info.loadBias)
}
