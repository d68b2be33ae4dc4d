// Package elf inspects ELF32 and ELF64 shared objects, either as a raw
// on-disk image or as a live in-memory image placed by a loader.
//
// It answers three questions about a shared object: what is it (class,
// machine, soname, loaded span), where does a named symbol live (an
// offset relative to the object's load bias), and where are the GOT/PLT
// slots that reference a named imported symbol.
//
// reference: https://flapenguin.me/elf-dt-gnu-hash
package elf
