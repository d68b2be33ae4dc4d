// The elfview executable inspects one shared object: its identity, a
// named symbol's load-relative offset, and the GOT/PLT slots that
// reference a named import.
//
// Example usage: ./elfview -file libc.so -symbol malloc -got malloc
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/pyroscope-io/elfview/elf"
)

func main() {
	var (
		filePath = flag.String("file", "", "path to the ELF image to inspect (required)")
		loaded   = flag.Bool("loaded", false, "treat the file as a loaded-image snapshot rather than an on-disk file")
		symbol   = flag.String("symbol", "", "resolve this symbol name to a load-bias-relative offset")
		prefix   = flag.String("prefix", "", "resolve the first symbol whose name starts with this prefix")
		got      = flag.String("got", "", "list GOT/PLT slots referencing this imported symbol")
		verbose  = flag.Bool("v", false, "enable debug logging")
	)
	flag.Parse()

	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	if *verbose {
		logger = level.NewFilter(logger, level.AllowDebug())
	} else {
		logger = level.NewFilter(logger, level.AllowWarn())
	}

	if *filePath == "" {
		level.Error(logger).Log("msg", "missing required -file argument")
		flag.Usage()
		os.Exit(1)
	}

	data, err := os.ReadFile(*filePath)
	if err != nil {
		level.Error(logger).Log("msg", "failed to read file", "file", *filePath, "err", err)
		os.Exit(1)
	}

	view := elf.NewElfView()
	attachOpts := elf.AttachOptions{Logger: logger}
	var attached bool
	if *loaded {
		attached = view.AttachLoadedMemoryView(data, attachOpts)
	} else {
		attached = view.AttachFileMemMapping(data, attachOpts)
	}
	if !attached {
		level.Error(logger).Log("msg", "not a recognizable ELF image", "file", *filePath)
		os.Exit(1)
	}

	fmt.Printf("class:       %d-bit\n", view.GetPointerSize()*8)
	fmt.Printf("machine:     %d\n", view.GetArchitecture())
	fmt.Printf("soname:      %s\n", view.GetSoname())
	fmt.Printf("load bias:   0x%x\n", view.GetLoadBias())
	fmt.Printf("loaded size: 0x%x\n", view.GetLoadedSize())

	if *symbol != "" {
		fmt.Printf("%s -> 0x%x\n", *symbol, view.GetSymbolOffset(*symbol))
	}
	if *prefix != "" {
		fmt.Printf("%s* -> 0x%x\n", *prefix, view.GetFirstSymbolOffsetWithPrefix(*prefix))
	}
	if *got != "" {
		offsets := view.GetSymbolGotOffset(*got)
		if len(offsets) == 0 {
			fmt.Printf("%s: no GOT/PLT relocations found\n", *got)
		}
		for _, off := range offsets {
			fmt.Printf("%s: 0x%x\n", *got, off)
		}
	}
}
