/*
Package boggle finds the dictionary words hidden in a 4x4 letter grid.

A word is any path through the grid that moves between horizontally,
vertically or diagonally adjacent cells, never visits a cell twice, and spells
an entry of the dictionary.

The dictionary is a Trie. It is built once, from a word list with one lowercase
word per line, and is read-only afterwards. Nodes are kept in a flat array and
point at each other by index. The first 26 nodes are the roots, one per
starting letter. The next 26 are terminal sentinels: every word end that
nothing extends past is folded into the sentinel for its last letter, so a
dictionary full of words ending in 's' shares one 's' leaf instead of keeping
thousands.

In general, to use it you first create a builder using NewBuilder(). You can
then add words in any order. After all the words are added, call Finish(),
which compresses the trie, checks every word against it and returns a *Trie.
Build, BuildFrom and Load wrap these steps for slices, readers and files.

	trie, err := boggle.Load(ctx, "word-list.txt")
	board, err := boggle.ParseBoard("catdogxxxxxxxxxx")
	words, err := trie.Search(board)

A finished trie may be written to disk using Save() and opened again later
with Open(), which memory-maps the file while decoding it. A summary of the
data format is found at the top of disk.go.
*/
package boggle
