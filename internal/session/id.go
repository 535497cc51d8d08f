package session

import (
	"crypto/rand"
	"encoding/binary"
	"sync"
	"time"
)

// Session ids are ULID-shaped: 48 bits of millisecond timestamp followed by
// 80 bits of randomness, Crockford base32 encoded to 26 characters. A
// per-millisecond sequence in the first random bytes keeps ids from the same
// millisecond ordered.

var (
	idMu    sync.Mutex
	lastTS  uint64
	lastSeq uint16
)

const crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

func newID() string {
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
	for i := 0; i < 6; i++ {
		b[i] = byte(ts >> (40 - 8*i))
	}
	rand.Read(b[6:])
	binary.BigEndian.PutUint16(b[6:8], lastSeq)

	return encodeID(b)
}

// encodeID writes the 128 bits of b as 26 base32 digits, most significant
// first. The leading digit carries only the top 3 bits.
func encodeID(b [16]byte) string {
	hi := binary.BigEndian.Uint64(b[:8])
	lo := binary.BigEndian.Uint64(b[8:])

	var out [26]byte
	for i := 25; i >= 0; i-- {
		out[i] = crockford[lo&31]
		lo = lo>>5 | hi<<59
		hi >>= 5
	}
	return string(out[:])
}
