package wasm

import (
	"bytes"
	"testing"

	"github.com/tetratelabs/wazero/api"
)

func TestEncodeULEB128(t *testing.T) {
	tests := []struct {
		expected []byte
		input    uint32
	}{
		{[]byte{0x00}, 0},
		{[]byte{0x01}, 1},
		{[]byte{0x7f}, 127},
		{[]byte{0x80, 0x01}, 128},
		{[]byte{0xe5, 0x8e, 0x26}, 624485},
	}

	for _, tt := range tests {
		result := EncodeULEB128(tt.input)
		if !bytes.Equal(result, tt.expected) {
			t.Errorf("EncodeULEB128(%d): expected %x, got %x", tt.input, tt.expected, result)
		}
	}
}

func TestEncodeName(t *testing.T) {
	got := EncodeName("drop")
	want := []byte{0x04, 'd', 'r', 'o', 'p'}
	if !bytes.Equal(got, want) {
		t.Errorf("EncodeName: expected %x, got %x", want, got)
	}
	if got := EncodeName(""); !bytes.Equal(got, []byte{0x00}) {
		t.Errorf("EncodeName(\"\"): got %x", got)
	}
}

func TestValTypeToWasm(t *testing.T) {
	tests := []struct {
		input    api.ValueType
		expected byte
	}{
		{api.ValueTypeI32, 0x7f},
		{api.ValueTypeI64, 0x7e},
		{api.ValueTypeF32, 0x7d},
		{api.ValueTypeF64, 0x7c},
	}
	for _, tt := range tests {
		if got := ValTypeToWasm(tt.input); got != tt.expected {
			t.Errorf("ValTypeToWasm(%v): expected 0x%02x, got 0x%02x", tt.input, tt.expected, got)
		}
	}
}
