// Package hash provides xxHash64-based helpers for artifact integrity and
// bootstrap seed derivation.
package hash

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Checksum computes the xxHash64 checksum of an artifact payload.
func Checksum(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// SubSeed derives a deterministic per-repetition seed from the configured
// bootstrap seed. Each repetition gets an independent seed, so repetitions can
// run in any order (or in parallel) and still produce identical results for a
// fixed base seed.
func SubSeed(seed uint64, repetition int) uint64 {
	var buf [16]byte
	binary.LittleEndian.PutUint64(buf[0:8], seed)
	binary.LittleEndian.PutUint64(buf[8:16], uint64(repetition)) //nolint:gosec
	return xxhash.Sum64(buf[:])
}
