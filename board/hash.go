package board

import (
	"encoding/binary"

	"github.com/cespare/xxhash"
)

// Hash fingerprints the whole position: grid, market, chips, score and the
// remaining deck order.
func (b *Board) Hash() uint64 {
	h := xxhash.New()
	var buf [8]byte
	writeInt := func(n int) {
		binary.LittleEndian.PutUint64(buf[:], uint64(int64(n)))
		h.Write(buf[:])
	}
	for _, c := range b.grid {
		if c == nil {
			h.Write([]byte{'.'})
		} else {
			h.Write([]byte(c.ID()))
		}
		h.Write([]byte{'/'})
	}
	writeInt(b.marketLen)
	for _, c := range b.market[:b.marketLen] {
		h.Write([]byte(c.ID()))
		h.Write([]byte{'/'})
	}
	for _, ct := range b.chips {
		writeInt(ct)
	}
	writeInt(b.score)
	for _, c := range b.deck.Peek() {
		h.Write([]byte(c.ID()))
		h.Write([]byte{'/'})
	}
	return h.Sum64()
}
