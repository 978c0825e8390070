// Package endian provides byte order utilities for encoding and decoding
// artifact payloads.
//
// This package combines the ByteOrder and AppendByteOrder interfaces from
// encoding/binary into a unified EndianEngine interface, and adds float64
// helpers for the matrix payloads used by the persistence layer. All artifacts
// are written little-endian; the big-endian engine exists for completeness.
//
// # Thread Safety
//
// All functions and methods in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
	"math"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from
// encoding/binary into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian from
// the standard library, making it fully compatible with existing Go code while
// providing access to both read/write and append operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// AppendFloat64 appends the IEEE 754 binary representation of v to buf using
// the given engine and returns the extended buffer.
func AppendFloat64(engine EndianEngine, buf []byte, v float64) []byte {
	return engine.AppendUint64(buf, math.Float64bits(v))
}

// Float64 decodes an IEEE 754 float64 from the first 8 bytes of data using
// the given engine.
func Float64(engine EndianEngine, data []byte) float64 {
	return math.Float64frombits(engine.Uint64(data))
}

// AppendFloat64Slice appends every value of values to buf in order and
// returns the extended buffer.
func AppendFloat64Slice(engine EndianEngine, buf []byte, values []float64) []byte {
	for _, v := range values {
		buf = engine.AppendUint64(buf, math.Float64bits(v))
	}

	return buf
}

// Float64Slice decodes count float64 values from data. It panics if data is
// shorter than 8*count bytes; callers validate payload sizes beforehand.
func Float64Slice(engine EndianEngine, data []byte, count int) []float64 {
	values := make([]float64, count)
	for i := range values {
		values[i] = math.Float64frombits(engine.Uint64(data[i*8:]))
	}

	return values
}
