package boggle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/milden6/boggle/wordlist"
)

const (
	alphabetSize  = 26
	firstSentinel = alphabetSize
	firstInternal = 2 * alphabetSize

	noEdge = -1
)

// EnumFn is called by Enumerate for every prefix in the dictionary.
type EnumFn = func(prefix []byte, final bool) EnumerationResult

// EnumerationResult is returned by the enumeration function to indicate whether
// enumeration should continue below this prefix or stop altogether
type EnumerationResult = int

const (
	// Continue enumerating all words with this prefix
	Continue EnumerationResult = iota

	// Skip will skip all words with this prefix
	Skip

	// Stop will immediately stop enumerating words
	Stop
)

type node struct {
	children [alphabetSize]int32
	letter   byte
	isWord   bool
}

func newNode(letter byte) node {
	n := node{letter: letter}
	for i := range n.children {
		n.children[i] = noEdge
	}
	return n
}

func (n *node) isLeaf() bool {
	for _, child := range n.children {
		if child != noEdge {
			return false
		}
	}
	return true
}

// Trie is a finished, read-only dictionary. Nodes live in a flat array and
// refer to each other by index. Indices 0-25 are the root anchors for 'a'-'z'
// and 26-51 are the shared terminal sentinels that every childless word end
// is folded into.
//
// A Trie is never modified after it is returned, so any number of goroutines
// may use it at once.
type Trie struct {
	nodes    []node
	numWords int
	numEdges int
}

// Builder accumulates words and produces a Trie.
type Builder struct {
	nodes    []node
	words    []string // kept until Finish for verification
	lines    []int
	finished bool
}

// NewBuilder creates an empty builder holding only the root anchors and
// terminal sentinels.
func NewBuilder() *Builder {
	return &Builder{nodes: initNodes()}
}

func initNodes() []node {
	nodes := make([]node, firstInternal, 1024)
	for i := 0; i < alphabetSize; i++ {
		letter := byte('a' + i)
		nodes[i] = newNode(letter)

		// Only word ends ever become leaves, so the node that stands in for
		// them is a word end too.
		nodes[firstSentinel+i] = newNode(letter)
		nodes[firstSentinel+i].isWord = true
	}
	return nodes
}

// CanAdd will return true if the word can be added to the builder.
func (b *Builder) CanAdd(word string) bool {
	return !b.finished && wordlist.Valid(word)
}

// Add inserts a word. Adding the same word twice is harmless.
func (b *Builder) Add(word string) error {
	return b.add(word, 0)
}

func (b *Builder) add(word string, line int) error {
	if b.finished {
		return dictError(PhaseInsert, line, word, -1, ErrFinished)
	}
	if !wordlist.Valid(word) {
		return dictError(PhaseInsert, line, word, -1, ErrMalformedWord)
	}

	cur := int32(word[0] - 'a')
	for i := 1; i < len(word); i++ {
		c := word[i] - 'a'
		next := b.nodes[cur].children[c]
		if next == noEdge {
			next = int32(len(b.nodes))
			b.nodes = append(b.nodes, newNode(word[i]))
			b.nodes[cur].children[c] = next
		}
		cur = next
	}

	if b.nodes[cur].isWord {
		return nil
	}
	b.nodes[cur].isWord = true
	b.words = append(b.words, word)
	b.lines = append(b.lines, line)
	return nil
}

// Finish compresses the trie, verifies it against every added word and
// returns it. The builder cannot be used afterwards.
func (b *Builder) Finish() (*Trie, error) {
	if b.finished {
		return nil, dictError(PhaseInsert, 0, "", -1, ErrFinished)
	}
	b.finished = true

	allocated := len(b.nodes)
	b.compress()
	nodes := b.renumber()

	t := &Trie{
		nodes:    nodes,
		numWords: len(b.words),
	}
	t.numEdges = t.countEdges()

	if err := t.verify(b.words, b.lines); err != nil {
		return nil, err
	}

	Logger().Debug("trie finished",
		zap.Int("words", t.numWords),
		zap.Int("allocated", allocated),
		zap.Int("nodes", len(t.nodes)),
		zap.Int("edges", t.numEdges))

	// no longer needed
	b.nodes = nil
	b.words = nil
	b.lines = nil

	return t, nil
}

// compress points every edge that leads to a childless node at the terminal
// sentinel for that letter.
func (b *Builder) compress() {
	stack := make([]int32, 0, 64)
	for i := alphabetSize - 1; i >= 0; i-- {
		stack = append(stack, int32(i))
	}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &b.nodes[cur]
		for c, child := range n.children {
			if child < firstInternal {
				// no edge, or already a sentinel
				continue
			}
			if b.nodes[child].isLeaf() {
				n.children[c] = int32(firstSentinel + c)
			} else {
				stack = append(stack, child)
			}
		}
	}
}

// renumber drops the leaves orphaned by compress and closes the gaps so the
// node IDs are consecutive again.
func (b *Builder) renumber() []node {
	reachable := make([]bool, len(b.nodes))
	stack := make([]int32, 0, 64)
	for i := 0; i < alphabetSize; i++ {
		stack = append(stack, int32(i))
	}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, child := range b.nodes[cur].children {
			if child >= firstInternal && !reachable[child] {
				reachable[child] = true
				stack = append(stack, child)
			}
		}
	}

	remap := make([]int32, len(b.nodes))
	next := int32(firstInternal)
	for i := range remap {
		switch {
		case i < firstInternal:
			remap[i] = int32(i)
		case reachable[i]:
			remap[i] = next
			next++
		default:
			remap[i] = noEdge
		}
	}

	nodes := make([]node, next)
	for i, n := range b.nodes {
		if remap[i] == noEdge {
			continue
		}
		for c, child := range n.children {
			if child != noEdge {
				n.children[c] = remap[child]
			}
		}
		nodes[remap[i]] = n
	}
	return nodes
}

// verify walks every word through the trie and then checks that the only
// childless nodes are root anchors and terminal sentinels.
func (t *Trie) verify(words []string, lines []int) error {
	for i, word := range words {
		cur := t.Root(word[0])
		for j := 1; j < len(word); j++ {
			next, ok := t.ChildOf(cur, word[j])
			if !ok {
				return dictError(PhaseVerify, lines[i], word, cur, ErrMissingEdge)
			}
			cur = next
		}
		if !t.IsWord(cur) {
			return dictError(PhaseVerify, lines[i], word, cur, ErrNotWord)
		}
	}

	return t.checkLeaves()
}

func (t *Trie) checkLeaves() error {
	if len(t.nodes) < firstInternal {
		return dictError(PhaseVerify, 0, "", len(t.nodes), ErrMissingEdge)
	}

	seen := make([]bool, len(t.nodes))
	stack := make([]int32, 0, 64)
	for i := 0; i < alphabetSize; i++ {
		seen[i] = true
		stack = append(stack, int32(i))
	}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := &t.nodes[cur]
		if cur >= firstInternal && n.isLeaf() {
			return dictError(PhaseVerify, 0, "", int(cur), ErrStrayLeaf)
		}
		for _, child := range n.children {
			if child == noEdge {
				continue
			}
			if child < 0 || int(child) >= len(t.nodes) {
				return dictError(PhaseVerify, 0, "", int(cur), ErrMissingEdge)
			}
			if !seen[child] {
				seen[child] = true
				stack = append(stack, child)
			}
		}
	}
	return nil
}

func (t *Trie) countEdges() int {
	edges := 0
	for i := range t.nodes {
		for _, child := range t.nodes[i].children {
			if child != noEdge {
				edges++
			}
		}
	}
	return edges
}

// Build creates a trie from a list of words.
func Build(words []string) (*Trie, error) {
	b := NewBuilder()
	for i, word := range words {
		if err := b.add(word, i+1); err != nil {
			return nil, err
		}
	}
	return b.Finish()
}

// BuildFrom creates a trie from a newline-delimited word list.
func BuildFrom(r io.Reader) (*Trie, error) {
	b := NewBuilder()
	err := wordlist.Scan(r, func(line int, word string) error {
		return b.add(word, line)
	})
	if err != nil {
		return nil, readError(err)
	}
	return b.Finish()
}

// Load builds the trie for the word list at path. Construction runs on its
// own goroutine; Load blocks until it completes or ctx is done.
func Load(ctx context.Context, path string) (*Trie, error) {
	type result struct {
		trie *Trie
		err  error
	}

	done := make(chan result, 1)
	go func() {
		t, err := loadFile(path)
		done <- result{t, err}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.trie, r.err
	}
}

func loadFile(path string) (*Trie, error) {
	start := time.Now()

	f, err := wordlist.Open(path)
	if err != nil {
		return nil, dictError(PhaseRead, 0, "", -1, err)
	}
	defer f.Close()

	b := NewBuilder()
	err = f.Each(func(line int, word string) error {
		return b.add(word, line)
	})
	if err != nil {
		return nil, readError(err)
	}

	t, err := b.Finish()
	if err != nil {
		return nil, err
	}

	Logger().Info("dictionary built",
		zap.String("path", path),
		zap.Int("words", t.NumWords()),
		zap.Int("nodes", t.NumNodes()),
		zap.Duration("elapsed", time.Since(start)))

	return t, nil
}

// readError passes builder errors through and wraps everything else
// (I/O errors, malformed lines) as a read failure.
func readError(err error) error {
	var de *DictError
	if errors.As(err, &de) {
		return de
	}
	var le *wordlist.LineError
	if errors.As(err, &le) {
		return dictError(PhaseRead, le.Line, le.Text, -1, err)
	}
	return dictError(PhaseRead, 0, "", -1, err)
}

// Root returns the root anchor for a letter in 'a'-'z'.
func (t *Trie) Root(letter byte) int {
	return int(letter - 'a')
}

// ChildOf returns the node reached from node by letter.
func (t *Trie) ChildOf(node int, letter byte) (int, bool) {
	if letter < 'a' || letter > 'z' || node < 0 || node >= len(t.nodes) {
		return 0, false
	}
	child := t.nodes[node].children[letter-'a']
	if child == noEdge {
		return 0, false
	}
	return int(child), true
}

// IsWord reports whether the path to node spells a dictionary word.
func (t *Trie) IsWord(node int) bool {
	return node >= 0 && node < len(t.nodes) && t.nodes[node].isWord
}

// Letter returns the letter a node was reached by.
func (t *Trie) Letter(node int) byte {
	return t.nodes[node].letter
}

// IsSentinel reports whether node is one of the shared terminal sentinels.
func (t *Trie) IsSentinel(node int) bool {
	return node >= firstSentinel && node < firstInternal
}

func (t *Trie) walk(s string) (int, bool) {
	if s == "" || s[0] < 'a' || s[0] > 'z' {
		return 0, false
	}
	cur := t.Root(s[0])
	for i := 1; i < len(s); i++ {
		next, ok := t.ChildOf(cur, s[i])
		if !ok {
			return 0, false
		}
		cur = next
	}
	return cur, true
}

// Contains reports whether word is in the dictionary.
func (t *Trie) Contains(word string) bool {
	node, ok := t.walk(word)
	return ok && t.IsWord(node)
}

// HasPrefix reports whether some dictionary word starts with prefix.
func (t *Trie) HasPrefix(prefix string) bool {
	node, ok := t.walk(prefix)
	if !ok {
		return false
	}
	return t.IsWord(node) || !t.nodes[node].isLeaf()
}

// NumWords returns the number of distinct words added
func (t *Trie) NumWords() int {
	return t.numWords
}

// NumNodes returns the number of nodes, including root anchors and sentinels.
func (t *Trie) NumNodes() int {
	return len(t.nodes)
}

// NumEdges returns the number of edges in the trie.
func (t *Trie) NumEdges() int {
	return t.numEdges
}

// Enumerate will call the given method, passing it every non-empty prefix in
// the dictionary in alphabetical order.
// Return Continue to continue enumeration, Skip to skip this branch, or Stop to stop enumeration.
func (t *Trie) Enumerate(fn EnumFn) {
	prefix := make([]byte, 1, 16)
	for i := 0; i < alphabetSize; i++ {
		if t.nodes[i].isLeaf() && !t.nodes[i].isWord {
			continue
		}
		prefix[0] = byte('a' + i)
		if t.enumerate(i, prefix, fn) == Stop {
			return
		}
	}
}

func (t *Trie) enumerate(cur int, prefix []byte, fn EnumFn) EnumerationResult {
	n := &t.nodes[cur]

	result := fn(prefix, n.isWord)
	if result != Continue {
		return result
	}

	l := len(prefix)
	prefix = append(prefix, 0)

	for c, child := range n.children {
		if child == noEdge {
			continue
		}
		prefix[l] = byte('a' + c)
		if t.enumerate(int(child), prefix, fn) == Stop {
			return Stop
		}
	}

	return Continue
}

// Words returns every word in the dictionary in alphabetical order.
func (t *Trie) Words() []string {
	words := make([]string, 0, t.numWords)
	t.Enumerate(func(prefix []byte, final bool) EnumerationResult {
		if final {
			words = append(words, string(prefix))
		}
		return Continue
	})
	return words
}

// Print writes the node table to w, one node per line.
func (t *Trie) Print(w io.Writer) {
	for i := range t.nodes {
		n := &t.nodes[i]
		mark := ' '
		if n.isWord {
			mark = '*'
		}
		fmt.Fprintf(w, "%d %c%c |", i, n.letter-'a'+'A', mark)
		for c, child := range n.children {
			if child != noEdge {
				fmt.Fprintf(w, " '%c' at %d,", 'a'+c, child)
			}
		}
		fmt.Fprintln(w)
	}
}
