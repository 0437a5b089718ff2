package boggle

import (
	"fmt"
)

// BoardSize is the width and height of a board.
const BoardSize = 4

const boardCells = BoardSize * BoardSize

// Position identifies a board cell.
type Position struct {
	X int
	Y int
}

// PositionOf returns the position of a row-major cell index.
func PositionOf(index int) Position {
	return Position{X: index % BoardSize, Y: index / BoardSize}
}

// Index returns the row-major cell index of p.
func (p Position) Index() int {
	return p.Y*BoardSize + p.X
}

// InBounds reports whether p lies on the board.
func (p Position) InBounds() bool {
	return p.X >= 0 && p.X < BoardSize && p.Y >= 0 && p.Y < BoardSize
}

// Adjacent reports whether q is one king move away from p.
func (p Position) Adjacent(q Position) bool {
	dx, dy := p.X-q.X, p.Y-q.Y
	return p != q && dx >= -1 && dx <= 1 && dy >= -1 && dy <= 1
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

var offsets = [8]Position{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// Neighbors returns the cells one king move away from p that lie on the board.
func (p Position) Neighbors() []Position {
	positions := make([]Position, 0, len(offsets))
	for _, off := range offsets {
		n := Position{p.X + off.X, p.Y + off.Y}
		if n.InBounds() {
			positions = append(positions, n)
		}
	}
	return positions
}

// neighbors holds Neighbors for every cell so the search does not allocate
// per step.
var neighbors = func() (table [boardCells][]Position) {
	for i := range table {
		table[i] = PositionOf(i).Neighbors()
	}
	return table
}()

// Board is a 4x4 grid of letters in row-major order.
type Board [boardCells]byte

// ParseBoard checks that s is exactly 16 letters a-z and returns it as a Board.
func ParseBoard(s string) (Board, error) {
	var b Board
	if len(s) != boardCells {
		return b, &BoardError{Board: s, Reason: fmt.Sprintf("want %d letters, got %d", boardCells, len(s))}
	}
	copy(b[:], s)
	if err := b.validate(); err != nil {
		return Board{}, err
	}
	return b, nil
}

func (b Board) validate() error {
	for i, c := range b {
		if c < 'a' || c > 'z' {
			return &BoardError{
				Board:  b.String(),
				Reason: fmt.Sprintf("cell %v holds %q, want a-z", PositionOf(i), c),
			}
		}
	}
	return nil
}

// At returns the letter at p.
func (b Board) At(p Position) byte {
	return b[p.Index()]
}

func (b Board) String() string {
	return string(b[:])
}

type searcher struct {
	trie    *Trie
	board   Board
	path    []Position
	visited uint16
	word    []byte
	seen    map[string]struct{}
	found   []string
}

// Search returns every dictionary word that can be spelled on the board by
// moving between adjacent cells without reusing one. Words are listed once,
// in the order they were first found. A word must span at least two cells.
func (t *Trie) Search(b Board) ([]string, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}

	s := &searcher{
		trie:  t,
		board: b,
		path:  make([]Position, 0, boardCells),
		word:  make([]byte, 0, boardCells),
		seen:  make(map[string]struct{}),
		found: make([]string, 0),
	}

	for i := 0; i < boardCells; i++ {
		p := PositionOf(i)
		s.push(p)
		s.descend(p, t.Root(b[i]))
		s.pop()
	}

	return s.found, nil
}

func (s *searcher) push(p Position) {
	s.path = append(s.path, p)
	s.visited |= 1 << p.Index()
	s.word = append(s.word, s.board.At(p))
}

func (s *searcher) pop() {
	p := s.path[len(s.path)-1]
	s.path = s.path[:len(s.path)-1]
	s.visited &^= 1 << p.Index()
	s.word = s.word[:len(s.word)-1]
}

func (s *searcher) descend(p Position, node int) {
	for _, n := range neighbors[p.Index()] {
		if s.visited&(1<<n.Index()) != 0 {
			continue
		}

		child, ok := s.trie.ChildOf(node, s.board.At(n))
		if !ok {
			continue
		}

		s.push(n)
		if s.trie.IsWord(child) {
			s.record()
		}
		s.descend(n, child)
		s.pop()
	}
}

func (s *searcher) record() {
	if _, ok := s.seen[string(s.word)]; ok {
		return
	}
	word := string(s.word)
	s.seen[word] = struct{}{}
	s.found = append(s.found, word)
}

// Trace returns a path of distinct adjacent cells that spells word on the
// board, or false if there is none.
func Trace(b Board, word string) ([]Position, bool) {
	if word == "" || len(word) > boardCells {
		return nil, false
	}

	path := make([]Position, 0, len(word))
	var visited uint16

	var step func(p Position, i int) bool
	step = func(p Position, i int) bool {
		if b.At(p) != word[i] {
			return false
		}
		path = append(path, p)
		visited |= 1 << p.Index()
		if i == len(word)-1 {
			return true
		}
		for _, n := range neighbors[p.Index()] {
			if visited&(1<<n.Index()) == 0 && step(n, i+1) {
				return true
			}
		}
		path = path[:len(path)-1]
		visited &^= 1 << p.Index()
		return false
	}

	for i := 0; i < boardCells; i++ {
		if step(PositionOf(i), 0) {
			return path, true
		}
	}
	return nil, false
}
