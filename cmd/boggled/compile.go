package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/milden6/boggle"
)

var compileCmd = &cobra.Command{
	Use:   "compile <out>",
	Short: "Build the dictionary and write it as a snapshot",
	Long: `Build the trie from the word list and save it to <out>. Pass the file
to --snapshot (or set dictionary.snapshot) to skip rebuilding at startup.`,
	Args: cobra.ExactArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)
}

func runCompile(cmd *cobra.Command, args []string) error {
	trie, err := boggle.Load(cmd.Context(), cfg.Dictionary.Path)
	if err != nil {
		logDictionaryError(err)
		return err
	}

	n, err := trie.Save(args[0])
	if err != nil {
		return fmt.Errorf("save %s: %w", args[0], err)
	}

	logger.Info("snapshot written",
		zap.String("file", args[0]),
		zap.Int64("bytes", n),
		zap.Int("words", trie.NumWords()),
		zap.Int("nodes", trie.NumNodes()))
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %d bytes (%d words, %d nodes) to %s\n",
		n, trie.NumWords(), trie.NumNodes(), args[0])
	return nil
}
