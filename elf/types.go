package elf

// Constants below mirror the System V gABI and the platform psABI
// supplements for ARM, AArch64, i386 and x86-64. Values are quoted from
// <elf.h> and the respective psABI documents, not derived at runtime.

// e_ident indices and values.
const (
	eiClass = 4
	eiData  = 5

	elfDataLSB = 1
	elfDataMSB = 2

	elfMagic = "\x7fELF"
)

// Segment types (p_type).
const (
	ptLoad    = 1
	ptDynamic = 2
	ptPhdr    = 6
)

// Section types (sh_type).
const (
	shtProgbits = 1
	shtSymtab   = 2
	shtStrtab   = 3
	shtHash     = 5
	shtDynsym   = 11
	shtGnuHash  = 0x6ffffff6
)

// Dynamic tags (d_tag).
const (
	dtNull     = 0
	dtSoname   = 14
	dtStrtab   = 5
	dtRel      = 17
	dtRelsz    = 18
	dtRela     = 7
	dtRelasz   = 8
	dtPltrel   = 20
	dtPltrelsz = 2
	dtJmprel   = 23
)

// Symbol binding/type mask.
const stInfoTypeMask = 0xf

// e_machine values this package knows how to classify relocations for.
const (
	emArm     = 40
	em386     = 3
	emX8664   = 62
	emAarch64 = 183
)

// Relocation types, ELF32.
const (
	rARM386Abs32   = 2  // R_ARM_ABS32
	rARM386GlobDat = 21 // R_ARM_GLOB_DAT
	rARM386JmpSlot = 22 // R_ARM_JUMP_SLOT

	r386_32      = 1 // R_386_32
	r386GlobDat  = 6 // R_386_GLOB_DAT
	r386JmpSlot  = 7 // R_386_JMP_SLOT
)

// Relocation types, ELF64.
const (
	rAarch64Abs64    = 0x101 // R_AARCH64_ABS64
	rAarch64GlobDat  = 0x401 // R_AARCH64_GLOB_DAT
	rAarch64JmpSlot  = 0x402 // R_AARCH64_JUMP_SLOT

	rX8664_64      = 1 // R_X86_64_64
	rX8664GlobDat  = 6 // R_X86_64_GLOB_DAT
	rX8664JmpSlot  = 7 // R_X86_64_JUMP_SLOT
)

// Record sizes, by class.
const (
	ehdr32Size = 52
	ehdr64Size = 64
	phdr32Size = 32
	phdr64Size = 56
	shdr32Size = 40
	shdr64Size = 64
	dyn32Size  = 8
	dyn64Size  = 16
	sym32Size  = 16
	sym64Size  = 24
	rel32Size  = 8
	rel64Size  = 16
	rela32Size = 12
	rela64Size = 24
)
