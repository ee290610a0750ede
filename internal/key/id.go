package key

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// ID is the digested identity of a record under a Key. It is a fixed-size
// comparable value regardless of how large the underlying field values are,
// and is meant for indexing, not security.
type ID uint64

// Root is the identity of no fields at all. Groups without a parent key file
// every record under it.
var Root = NewDigester().Sum()

func (id ID) String() string {
	return fmt.Sprintf("%016x", uint64(id))
}

// Digester accumulates (name, value) pairs into an ID.
type Digester struct {
	h   *xxhash.Digest
	buf [binary.MaxVarintLen64]byte
}

func NewDigester() *Digester {
	return &Digester{h: xxhash.New()}
}

// Add appends one pair. Each string is length-prefixed so that values
// containing separators cannot alias a different split.
func (d *Digester) Add(name, value string) *Digester {
	d.write(name)
	d.write(value)
	return d
}

func (d *Digester) write(s string) {
	n := binary.PutUvarint(d.buf[:], uint64(len(s)))
	_, _ = d.h.Write(d.buf[:n])
	_, _ = d.h.WriteString(s)
}

// Sum returns the ID of the pairs added so far.
func (d *Digester) Sum() ID {
	return ID(d.h.Sum64())
}
