package boggle

import (
	"errors"
	"fmt"
	"strings"
)

// Phase names the stage of dictionary construction that failed.
type Phase string

const (
	PhaseRead     Phase = "read"     // reading the word list
	PhaseInsert   Phase = "insert"   // adding words to the builder
	PhaseVerify   Phase = "verify"   // post-construction checks
	PhaseSnapshot Phase = "snapshot" // reading or writing a snapshot
)

var (
	// ErrMalformedWord is returned for empty words or words with bytes outside a-z.
	ErrMalformedWord = errors.New("malformed word")

	// ErrFinished is returned when adding to a builder after Finish.
	ErrFinished = errors.New("builder already finished")

	// ErrMissingEdge means a dictionary word could not be walked through the trie.
	ErrMissingEdge = errors.New("missing edge")

	// ErrNotWord means a dictionary word ended on a node that is not marked as a word.
	ErrNotWord = errors.New("word not marked")

	// ErrStrayLeaf means a childless node is neither a root anchor nor a terminal sentinel.
	ErrStrayLeaf = errors.New("stray leaf")

	// ErrBadSnapshot is returned for truncated or inconsistent snapshot data.
	ErrBadSnapshot = errors.New("bad snapshot")

	// ErrInvalidBoard is returned for boards that are not 16 letters a-z.
	ErrInvalidBoard = errors.New("invalid board")
)

// DictError describes why a dictionary could not be built or loaded.
type DictError struct {
	Err   error
	Phase Phase
	Word  string
	Line  int // 1-based, 0 when unknown
	Node  int // -1 when not applicable
}

func (e *DictError) Error() string {
	var b strings.Builder
	b.WriteString("dictionary ")
	b.WriteString(string(e.Phase))
	b.WriteString(" failed")

	if e.Line > 0 {
		fmt.Fprintf(&b, " at line %d", e.Line)
	}

	if e.Word != "" {
		fmt.Fprintf(&b, " (word %q)", e.Word)
	}

	if e.Node >= 0 {
		fmt.Fprintf(&b, " (node %d)", e.Node)
	}

	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}

	return b.String()
}

func (e *DictError) Unwrap() error {
	return e.Err
}

func dictError(phase Phase, line int, word string, node int, err error) *DictError {
	return &DictError{
		Phase: phase,
		Line:  line,
		Word:  word,
		Node:  node,
		Err:   err,
	}
}

// BoardError reports a board that fails the 4x4 lowercase precondition.
type BoardError struct {
	Board  string
	Reason string
}

func (e *BoardError) Error() string {
	return fmt.Sprintf("%s %q: %s", ErrInvalidBoard, e.Board, e.Reason)
}

func (e *BoardError) Unwrap() error {
	return ErrInvalidBoard
}
