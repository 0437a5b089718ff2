package boggle_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milden6/boggle"
)

var snapshotWords = []string{"act", "bee", "bees", "cat", "coat", "cog", "dog", "goat", "god", "tag", "zoo"}

func sameTrie(t *testing.T, want, got *boggle.Trie) {
	t.Helper()
	require.Equal(t, want.NumNodes(), got.NumNodes())
	assert.Equal(t, want.NumWords(), got.NumWords())
	assert.Equal(t, want.NumEdges(), got.NumEdges())

	for n := 0; n < want.NumNodes(); n++ {
		assert.Equal(t, want.IsWord(n), got.IsWord(n), "node %d", n)
		assert.Equal(t, want.Letter(n), got.Letter(n), "node %d", n)
		for c := byte('a'); c <= 'z'; c++ {
			wc, wok := want.ChildOf(n, c)
			gc, gok := got.ChildOf(n, c)
			assert.Equal(t, wok, gok, "node %d '%c'", n, c)
			assert.Equal(t, wc, gc, "node %d '%c'", n, c)
		}
	}
	assert.Equal(t, want.Words(), got.Words())
}

func TestSaveOpen(t *testing.T) {
	trie, err := boggle.Build(snapshotWords)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "words.trie")
	n, err := trie.Save(path)
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, info.Size(), n)

	loaded, err := boggle.Open(path)
	require.NoError(t, err)
	sameTrie(t, trie, loaded)

	board, err := boggle.ParseBoard("catdogxxxxxxxxxx")
	require.NoError(t, err)
	want, _ := trie.Search(board)
	got, err := loaded.Search(board)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestWriteRead(t *testing.T) {
	trie, err := boggle.Build(snapshotWords)
	require.NoError(t, err)

	var buf bytes.Buffer
	n, err := trie.Write(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	loaded, err := boggle.Read(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	sameTrie(t, trie, loaded)
}

func TestReadBadSnapshot(t *testing.T) {
	trie, err := boggle.Build(snapshotWords)
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = trie.Write(&buf)
	require.NoError(t, err)
	data := buf.Bytes()

	badVersion := bytes.Clone(data)
	badVersion[4] = 9

	sizePastEnd := bytes.Clone(data)
	copy(sizePastEnd, []byte{0xff, 0xff, 0xff, 0xff})

	// size 0xffffffff, version 1, abits 8, no words, 1<<59 nodes
	hugeNodeCount := []byte{
		0xff, 0xff, 0xff, 0xff, 0x01, 0x08, 0x00,
		0x88, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x00,
	}

	tests := map[string][]byte{
		"empty":           {},
		"header only":     data[:6],
		"truncated":       data[:len(data)/2],
		"bad version":     badVersion,
		"size past end":   sizePastEnd,
		"huge node count": hugeNodeCount,
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := boggle.Read(bytes.NewReader(input))
			assert.ErrorIs(t, err, boggle.ErrBadSnapshot)

			var de *boggle.DictError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, boggle.PhaseSnapshot, de.Phase)
		})
	}
}

func TestOpenMissing(t *testing.T) {
	_, err := boggle.Open(filepath.Join(t.TempDir(), "missing.trie"))
	var de *boggle.DictError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, boggle.PhaseSnapshot, de.Phase)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDump(t *testing.T) {
	trie, err := boggle.Build([]string{"ox"})
	require.NoError(t, err)

	var buf bytes.Buffer
	_, err = trie.Write(&buf)
	require.NoError(t, err)

	var out strings.Builder
	require.NoError(t, boggle.Dump(&out, bytes.NewReader(buf.Bytes())))

	dump := out.String()
	assert.Contains(t, dump, "Version=1")
	assert.Contains(t, dump, "WordCount=1")
	assert.Contains(t, dump, "NodeCount=52")
	assert.Contains(t, dump, "Node 14 'o' final=0 has 1 edges")
	assert.Contains(t, dump, "'x' goto 49")

	err = boggle.Dump(&out, bytes.NewReader(buf.Bytes()[:3]))
	assert.ErrorIs(t, err, boggle.ErrBadSnapshot)

	huge := []byte{
		0xff, 0xff, 0xff, 0xff, 0x01, 0x08, 0x00,
		0x88, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x80, 0x00,
	}
	err = boggle.Dump(&out, bytes.NewReader(huge))
	assert.ErrorIs(t, err, boggle.ErrBadSnapshot)
}
