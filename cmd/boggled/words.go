package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/milden6/boggle"
)

var wordsCmd = &cobra.Command{
	Use:   "words",
	Short: "List the words in the dictionary",
	Long: `List dictionary words in alphabetical order.

Examples:
  boggled words
  boggled words --prefix ca`,
	Args: cobra.NoArgs,
	RunE: runWords,
}

func init() {
	rootCmd.AddCommand(wordsCmd)

	wordsCmd.Flags().String("prefix", "", "Only list words starting with this prefix")
}

func runWords(cmd *cobra.Command, _ []string) error {
	trie, err := loadDictionary(cmd.Context())
	if err != nil {
		return err
	}

	prefix, _ := cmd.Flags().GetString("prefix")
	out := cmd.OutOrStdout()
	trie.Enumerate(func(p []byte, final bool) boggle.EnumerationResult {
		n := min(len(p), len(prefix))
		if string(p[:n]) != prefix[:n] {
			return boggle.Skip
		}
		if final && len(p) >= len(prefix) {
			fmt.Fprintln(out, string(p))
		}
		return boggle.Continue
	})
	return nil
}
