package boggle

import (
	"bufio"
	"fmt"
	"io"
	"math/bits"
	"os"

	"golang.org/x/exp/mmap"
)

/* FILE FORMAT
- 32 bits: total size of file in bytes
- 8 bits: format version
- 8 bits: abits, the number of bits in a node index
- 7code: number of words
- 7code: number of nodes
- for each node, in index order:
	- 1 bit: is word?
	- 5 bits: letter (0 = 'a')
	- 26 bits: child mask, bit 25 = 'a' ... bit 0 = 'z'
	- for each set bit, 'a' first:
		abits: index of the child node

We define 7code to be an unsigned that can be read the following way:

result = 0
for {
	data = next 8 bits
	result = result << 7 | data & 0x7f
	if data & 0x80 == 0 break
}
*/

const (
	snapshotVersion = 1

	headerFixedBits = 32 + 8 + 8
	nodeFixedBits   = 1 + 5 + alphabetSize
)

// Save writes the trie to disk. Returns the number of bytes written
func (t *Trie) Save(filename string) (int64, error) {
	f, err := os.Create(filename)
	if err != nil {
		return 0, err
	}

	bw := bufio.NewWriter(f)
	n, err := t.Write(bw)
	if err == nil {
		err = bw.Flush()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return n, err
}

func (t *Trie) addressBits() int {
	abits := bits.Len(uint(len(t.nodes) - 1))
	if abits == 0 {
		abits = 1
	}
	return abits
}

// Write writes the trie to an io.Writer. Returns the number of bytes written
func (t *Trie) Write(wIn io.Writer) (int64, error) {
	abits := t.addressBits()

	pos := uint64(headerFixedBits)
	pos += unsignedLength(uint64(t.numWords)) * 8
	pos += unsignedLength(uint64(len(t.nodes))) * 8
	pos += uint64(len(t.nodes)) * nodeFixedBits
	pos += uint64(t.numEdges) * uint64(abits)
	size := (pos + 7) / 8

	w := newBitWriter(wIn)
	w.WriteBits(size, 32)
	w.WriteBits(snapshotVersion, 8)
	w.WriteBits(uint64(abits), 8)
	writeUnsigned(w, uint64(t.numWords))
	writeUnsigned(w, uint64(len(t.nodes)))

	for i := range t.nodes {
		n := &t.nodes[i]
		if n.isWord {
			w.WriteBits(1, 1)
		} else {
			w.WriteBits(0, 1)
		}
		w.WriteBits(uint64(n.letter-'a'), 5)

		var mask uint64
		for _, child := range n.children {
			mask <<= 1
			if child != noEdge {
				mask |= 1
			}
		}
		w.WriteBits(mask, alphabetSize)

		for _, child := range n.children {
			if child != noEdge {
				w.WriteBits(uint64(child), abits)
			}
		}
	}

	if err := w.Flush(); err != nil {
		return w.written, err
	}
	return w.written, nil
}

// Open loads a trie snapshot written by Save. The file is memory-mapped while
// it is decoded.
func Open(filename string) (*Trie, error) {
	f, err := mmap.Open(filename)
	if err != nil {
		return nil, dictError(PhaseSnapshot, 0, "", -1, err)
	}
	defer f.Close()

	return Read(f)
}

func snapshotError(format string, args ...any) error {
	return dictError(PhaseSnapshot, 0, "", -1,
		fmt.Errorf("%w: "+format, append([]any{ErrBadSnapshot}, args...)...))
}

// Read decodes a trie snapshot from f and verifies its structure. Header
// counts are checked against the declared size before anything is
// allocated, and edges must lead forward so a snapshot cannot hold a cycle.
func Read(f io.ReaderAt) (*Trie, error) {
	r := newBitSeeker(f)

	size := r.ReadBits(32)
	version := r.ReadBits(8)
	abits := int64(r.ReadBits(8))
	numWords := readUnsigned(r)
	numNodes := readUnsigned(r)

	if r.err != nil {
		return nil, snapshotError("header: %v", r.err)
	}
	if version != snapshotVersion {
		return nil, snapshotError("version %d, want %d", version, snapshotVersion)
	}
	if abits == 0 || abits > 31 {
		return nil, snapshotError("address width %d", abits)
	}
	if numNodes < firstInternal || numNodes > size*8/nodeFixedBits {
		return nil, snapshotError("%d nodes in %d bytes", numNodes, size)
	}
	if err := checkSize(f, size); err != nil {
		return nil, err
	}

	t := &Trie{
		nodes:    make([]node, numNodes),
		numWords: int(numWords),
	}

	for i := range t.nodes {
		n := newNode(0)
		n.isWord = r.ReadBits(1) == 1

		letter := r.ReadBits(5)
		if letter >= alphabetSize {
			return nil, snapshotError("node %d: letter %d", i, letter)
		}
		n.letter = byte('a' + letter)

		mask := r.ReadBits(alphabetSize)
		if mask != 0 && i >= firstSentinel && i < firstInternal {
			return nil, snapshotError("sentinel %d has children", i)
		}
		for c := 0; c < alphabetSize; c++ {
			if mask&(1<<(alphabetSize-1-c)) == 0 {
				continue
			}
			child := r.ReadBits(abits)
			if child >= numNodes {
				return nil, snapshotError("node %d: edge '%c' to %d of %d", i, 'a'+c, child, numNodes)
			}
			if !forwardEdge(i, child) {
				return nil, snapshotError("node %d: edge '%c' points back to %d", i, 'a'+c, child)
			}
			n.children[c] = int32(child)
			t.numEdges++
		}

		if r.err != nil {
			return nil, snapshotError("node %d: %v", i, r.err)
		}
		t.nodes[i] = n
	}

	if err := t.checkLeaves(); err != nil {
		return nil, err
	}
	return t, nil
}

// checkSize makes sure f really holds the size bytes the header claims.
func checkSize(f io.ReaderAt, size uint64) error {
	if size < headerFixedBits/8 {
		return snapshotError("size %d is shorter than the header", size)
	}
	var last [1]byte
	if _, err := f.ReadAt(last[:], int64(size-1)); err != nil {
		return snapshotError("size %d: %v", size, err)
	}
	return nil
}

// forwardEdge reports whether an edge from parent to child can occur in a
// finished trie. Nodes are numbered in creation order and a child is always
// created after its parent, so edges lead to a sentinel or to a higher
// internal node. Anything else could form a cycle.
func forwardEdge(parent int, child uint64) bool {
	switch {
	case child < firstSentinel:
		return false
	case child < firstInternal:
		return true
	default:
		return child > uint64(parent)
	}
}

// Dump prints out the layout of a snapshot.
func Dump(w io.Writer, f io.ReaderAt) error {
	r := newBitSeeker(f)

	size := r.ReadBits(32)
	fmt.Fprintf(w, "[%08x] Size=%v bytes\n", r.Tell()-32, size)

	version := r.ReadBits(8)
	fmt.Fprintf(w, "[%08x] Version=%d\n", r.Tell()-8, version)

	abits := int64(r.ReadBits(8))
	fmt.Fprintf(w, "[%08x] abits=%d\n", r.Tell()-8, abits)

	wordCount := readUnsigned(r)
	fmt.Fprintf(w, "[%08x] WordCount=%v\n", r.Tell()-int64(unsignedLength(wordCount)*8), wordCount)

	nodeCount := readUnsigned(r)
	fmt.Fprintf(w, "[%08x] NodeCount=%v\n", r.Tell()-int64(unsignedLength(nodeCount)*8), nodeCount)

	if r.err != nil {
		return snapshotError("header: %v", r.err)
	}
	if version != snapshotVersion || abits == 0 || abits > 31 || nodeCount > size*8/nodeFixedBits {
		return snapshotError("unreadable header")
	}

	for i := uint64(0); i < nodeCount; i++ {
		at := r.Tell()
		final := r.ReadBits(1)
		letter := r.ReadBits(5)
		mask := r.ReadBits(alphabetSize)

		fmt.Fprintf(w, "[%08x] Node %d '%c' final=%d has %d edges\n",
			at, i, rune('a'+letter), final, bits.OnesCount64(mask))

		for c := 0; c < alphabetSize; c++ {
			if mask&(1<<(alphabetSize-1-c)) == 0 {
				continue
			}
			at = r.Tell()
			child := r.ReadBits(abits)
			fmt.Fprintf(w, "[%08x]   '%c' goto %d\n", at, rune('a'+c), child)
		}

		if r.err != nil {
			return snapshotError("node %d: %v", i, r.err)
		}
	}
	return nil
}
