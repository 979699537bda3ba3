package complete

import (
	"encoding/binary"
	"math"
)

// This file is the single place the byte layout of every built-in
// value is defined, so the semantic package (folding constants) and the
// evaluator package (running the program) always agree with each other
// and with the IntrinsicEval callbacks in intrinsics.go.

// ReadInt decodes an `int` value from its 8-byte little-endian
// representation.
func ReadInt(b []byte) int64 { return int64(binary.LittleEndian.Uint64(b)) }

// WriteInt encodes v into b's 8-byte little-endian representation.
func WriteInt(b []byte, v int64) { binary.LittleEndian.PutUint64(b, uint64(v)) }

// ReadFloat decodes a `float` value from its 8-byte IEEE754
// little-endian representation.
func ReadFloat(b []byte) float64 { return math.Float64frombits(binary.LittleEndian.Uint64(b)) }

// WriteFloat encodes v into b's 8-byte IEEE754 little-endian
// representation.
func WriteFloat(b []byte, v float64) { binary.LittleEndian.PutUint64(b, math.Float64bits(v)) }

// ReadBool decodes a `bool` value from its single-byte representation.
func ReadBool(b []byte) bool { return b[0] != 0 }

// WriteBool encodes v into b's single-byte representation.
func WriteBool(b []byte, v bool) {
	if v {
		b[0] = 1
	} else {
		b[0] = 0
	}
}
