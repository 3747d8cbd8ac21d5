package wasm

import (
	"github.com/tetratelabs/wazero/api"
)

const (
	sectionType   = 0x01
	sectionImport = 0x02
	sectionFunc   = 0x03
	sectionExport = 0x07
	sectionCode   = 0x0a

	externFunc = 0x00
	funcType   = 0x60

	opLocalGet = 0x20
	opCall     = 0x10
	opEnd      = 0x0b
)

// GuestBuilder builds a guest module that imports functions from a host
// module and exports a forwarding wrapper for each.
type GuestBuilder struct {
	hostModuleName string
	funcs          []guestFunc
}

type guestFunc struct {
	name        string
	paramTypes  []api.ValueType
	resultTypes []api.ValueType
}

// NewGuestBuilder creates a builder whose imports come from hostModuleName.
func NewGuestBuilder(hostModuleName string) *GuestBuilder {
	return &GuestBuilder{hostModuleName: hostModuleName}
}

// AddFunc adds a function to import and re-export.
func (b *GuestBuilder) AddFunc(name string, params, results []api.ValueType) {
	b.funcs = append(b.funcs, guestFunc{
		name:        name,
		paramTypes:  params,
		resultTypes: results,
	})
}

// Build generates the WASM module bytes. Returns nil if no function was added.
func (b *GuestBuilder) Build() []byte {
	if len(b.funcs) == 0 {
		return nil
	}

	var wasm []byte

	// Magic and version
	wasm = append(wasm, 0x00, 0x61, 0x73, 0x6d)
	wasm = append(wasm, 0x01, 0x00, 0x00, 0x00)

	wasm = appendSection(wasm, sectionType, b.buildTypeSection())
	wasm = appendSection(wasm, sectionImport, b.buildImportSection())
	wasm = appendSection(wasm, sectionFunc, b.buildFuncSection())
	wasm = appendSection(wasm, sectionExport, b.buildExportSection())
	wasm = appendSection(wasm, sectionCode, b.buildCodeSection())

	return wasm
}

func appendSection(wasm []byte, id byte, section []byte) []byte {
	wasm = append(wasm, id)
	wasm = append(wasm, EncodeULEB128(uint32(len(section)))...)
	return append(wasm, section...)
}

// Type i serves both import i and the wrapper around it.
func (b *GuestBuilder) buildTypeSection() []byte {
	var section []byte
	section = append(section, EncodeULEB128(uint32(len(b.funcs)))...)

	for _, f := range b.funcs {
		section = append(section, funcType)
		section = append(section, EncodeULEB128(uint32(len(f.paramTypes)))...)
		for _, t := range f.paramTypes {
			section = append(section, ValTypeToWasm(t))
		}
		section = append(section, EncodeULEB128(uint32(len(f.resultTypes)))...)
		for _, t := range f.resultTypes {
			section = append(section, ValTypeToWasm(t))
		}
	}
	return section
}

func (b *GuestBuilder) buildImportSection() []byte {
	var section []byte
	section = append(section, EncodeULEB128(uint32(len(b.funcs)))...)

	for i, f := range b.funcs {
		section = append(section, EncodeName(b.hostModuleName)...)
		section = append(section, EncodeName(f.name)...)
		section = append(section, externFunc)
		section = append(section, EncodeULEB128(uint32(i))...)
	}
	return section
}

func (b *GuestBuilder) buildFuncSection() []byte {
	var section []byte
	section = append(section, EncodeULEB128(uint32(len(b.funcs)))...)
	for i := range b.funcs {
		section = append(section, EncodeULEB128(uint32(i))...)
	}
	return section
}

// Wrappers follow the imports in the function index space.
func (b *GuestBuilder) buildExportSection() []byte {
	var section []byte
	section = append(section, EncodeULEB128(uint32(len(b.funcs)))...)

	numImports := len(b.funcs)
	for i, f := range b.funcs {
		section = append(section, EncodeName(f.name)...)
		section = append(section, externFunc)
		section = append(section, EncodeULEB128(uint32(numImports+i))...)
	}
	return section
}

func (b *GuestBuilder) buildCodeSection() []byte {
	var section []byte
	section = append(section, EncodeULEB128(uint32(len(b.funcs)))...)

	for i, f := range b.funcs {
		funcBody := buildFuncBody(i, f)
		section = append(section, EncodeULEB128(uint32(len(funcBody)))...)
		section = append(section, funcBody...)
	}
	return section
}

func buildFuncBody(importIdx int, f guestFunc) []byte {
	var body []byte
	body = append(body, 0x00) // no locals

	for i := range f.paramTypes {
		body = append(body, opLocalGet)
		body = append(body, EncodeULEB128(uint32(i))...)
	}

	body = append(body, opCall)
	body = append(body, EncodeULEB128(uint32(importIdx))...)
	body = append(body, opEnd)

	return body
}
