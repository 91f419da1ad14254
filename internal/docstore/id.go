package docstore

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
	"time"
)

// Document ids are ULIDs: 26 Crockford Base32 characters, a 48-bit
// millisecond timestamp followed by 80 random bits. Ids created later sort
// after earlier ones.

var (
	idMu    sync.Mutex
	lastTS  uint64
	lastSeq uint16
)

const crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// NewID returns a fresh document id.
func NewID() string {
	idMu.Lock()
	defer idMu.Unlock()

	ts := uint64(time.Now().UnixMilli())
	if ts == lastTS {
		lastSeq++
	} else {
		lastTS = ts
		lastSeq = 0
	}

	var b [16]byte
	b[0] = byte(ts >> 40)
	b[1] = byte(ts >> 32)
	b[2] = byte(ts >> 24)
	b[3] = byte(ts >> 16)
	b[4] = byte(ts >> 8)
	b[5] = byte(ts)
	rand.Read(b[6:])
	// Sequence keeps ids unique and ordered within one millisecond.
	binary.BigEndian.PutUint16(b[6:8], lastSeq)

	return encodeID(b)
}

// encodeID writes 128 bits as 26 base32 characters, five bits at a time
// from the most significant end. The first character carries the top
// three bits only.
func encodeID(b [16]byte) string {
	var out [26]byte
	var acc uint32
	bits := 2 // 130 output bits for 128 input bits
	n := 0
	for _, v := range b {
		acc = acc<<8 | uint32(v)
		bits += 8
		for bits >= 5 {
			bits -= 5
			out[n] = crockford[(acc>>uint(bits))&31]
			n++
		}
	}
	return string(out[:])
}

// ValidID reports whether id looks like a document id. Only ids that pass
// are ever turned into paths.
func ValidID(id string) bool {
	if len(id) != 26 {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		if !(c >= '0' && c <= '9' || c >= 'A' && c <= 'Z') || c == 'I' || c == 'L' || c == 'O' || c == 'U' {
			return false
		}
	}
	return true
}
