package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/milden6/boggle"
)

var solveCmd = &cobra.Command{
	Use:   "solve <board>",
	Short: "Print the words on one board",
	Long: `Print every word found on a board given as 16 letters in row-major
order, in the order they were found.

Examples:
  boggled solve catdogxxxxxxxxxx
  boggled solve --paths CATDOGXXXXXXXXXX`,
	Args: cobra.ExactArgs(1),
	RunE: runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)

	solveCmd.Flags().Bool("paths", false, "Print the cells that spell each word")
}

func runSolve(cmd *cobra.Command, args []string) error {
	board, err := boggle.ParseBoard(strings.ToLower(args[0]))
	if err != nil {
		return err
	}

	trie, err := loadDictionary(cmd.Context())
	if err != nil {
		return err
	}

	words, err := trie.Search(board)
	if err != nil {
		return err
	}

	showPaths, _ := cmd.Flags().GetBool("paths")
	out := cmd.OutOrStdout()
	for _, word := range words {
		if !showPaths {
			fmt.Fprintln(out, word)
			continue
		}
		path, _ := boggle.Trace(board, word)
		steps := make([]string, len(path))
		for i, p := range path {
			steps[i] = p.String()
		}
		fmt.Fprintf(out, "%s\t%s\n", word, strings.Join(steps, " "))
	}
	return nil
}
