package srs

import (
	crand "crypto/rand"
	"encoding/binary"
	"time"
)

// cryptoSeed draws a shuffle seed from the OS entropy source, falling back
// to the clock if that fails (some sandboxed environments block it)
func cryptoSeed() int64 {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		return time.Now().UnixNano()
	}
	return int64(binary.LittleEndian.Uint64(buf[:]))
}
