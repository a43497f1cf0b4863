package tvm

import (
	"golang.org/x/crypto/sha3"
)

// merkleAccumulator builds a Merkle root over a stream of leaves while
// holding only one digest per tree level. The leaf layer is implicitly padded
// with zero digests to the next power of two.
type merkleAccumulator struct {
	peaks []Digest // peaks[k] is valid iff bit k of n is set
	n     uint64
}

func (a *merkleAccumulator) add(leaf Digest) {
	d := leaf
	k := 0
	for a.n>>k&1 == 1 {
		d = hashPair(a.peaks[k], d)
		k++
	}
	if k == len(a.peaks) {
		a.peaks = append(a.peaks, d)
	} else {
		a.peaks[k] = d
	}
	a.n++
}

func (a *merkleAccumulator) root() Digest {
	if a.n == 0 {
		return Digest{}
	}
	width := nextPow2(a.n)
	if width == a.n {
		return a.peaks[len(a.peaks)-1]
	}
	var carry, zero Digest
	have := false
	for k := 0; uint64(1)<<k < width; k++ {
		switch bit := a.n>>k&1 == 1; {
		case bit && have:
			carry = hashPair(a.peaks[k], carry)
		case bit:
			carry = hashPair(a.peaks[k], zero)
			have = true
		case have:
			carry = hashPair(carry, zero)
		}
		zero = hashPair(zero, zero)
	}
	return carry
}

func hashPair(a, b Digest) Digest {
	h := sha3.New256()
	h.Write(a[:])
	h.Write(b[:])
	var d Digest
	copy(d[:], h.Sum(nil))
	return d
}

func nextPow2(n uint64) uint64 {
	p := uint64(1)
	for p < n {
		p <<= 1
	}
	return p
}
