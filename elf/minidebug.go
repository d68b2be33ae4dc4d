package elf

import (
	"bytes"
	"io"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/ulikunitz/xz"
)

// gnuDebugDataMagic is the XZ stream header every .gnu_debugdata
// section starts with (spec.md §4.6).
var gnuDebugDataMagic = []byte{0xFD, 0x37, 0x7A, 0x58, 0x5A}

// loadMiniDebugInfo decompresses raw as an XZ stream, parses the
// result as a nested, file-form-only ELF image and returns the
// (name -> st_value) pairs from its .symtab. Every failure along the
// way is treated as "no mini debuginfo" rather than propagated, since
// ElfView's public contract never surfaces errors (spec.md §7). A bad
// magic prefix is skipped silently; a decompression failure, or a
// decompressed payload that is not an ELF image, is logged as a warning.
func loadMiniDebugInfo(logger log.Logger, raw []byte) map[string]uint64 {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	if len(raw) < len(gnuDebugDataMagic) || !bytes.Equal(raw[:len(gnuDebugDataMagic)], gnuDebugDataMagic) {
		// Missing/invalid magic silently skips, per spec.md §4.6 — only
		// the failures below are diagnosed with a log line.
		return nil
	}

	r, err := xz.NewReader(bytes.NewReader(raw))
	if err != nil {
		level.Warn(logger).Log("msg", "failed to open gnu_debugdata xz stream", "err", err)
		return nil
	}
	var out bytes.Buffer
	if _, err := io.Copy(&out, r); err != nil {
		level.Warn(logger).Log("msg", "failed to decompress gnu_debugdata", "err", err)
		return nil
	}

	data := out.Bytes()
	c, order, ok := detectClassAndOrder(data)
	if !ok {
		level.Warn(logger).Log("msg", "gnu_debugdata payload is not a valid ELF image")
		return nil
	}
	im := &image{data: data, loaded: false, order: order}

	h := decodeEhdr(data[:minHeaderSize], order, c)
	sec := walkSections(im, c, h)
	if !sec.haveSymtab || !sec.haveStrtab {
		return nil
	}

	symbols := make(map[string]uint64, sec.symtabCount)
	for i := uint64(0); i < sec.symtabCount; i++ {
		raw, ok := im.slice(sec.symtab+i*symSize(c), symSize(c))
		if !ok {
			break
		}
		sym := decodeSym(raw, order, c)
		name := im.cStringAt(sec.strtab + uint64(sym.NameOff))
		if name == "" {
			continue
		}
		if _, exists := symbols[name]; !exists {
			symbols[name] = sym.Value
		}
	}
	return symbols
}
