package main

import (
	"fmt"

	"github.com/shouni/gemini-tryon-kit/pkg/prompt"
	"github.com/spf13/cobra"
)

var promptCmd = &cobra.Command{
	Use:   "prompt",
	Short: "指定した調整で送信される指示文を表示します",
	Long:  `送信される指示文をそのまま表示します。調整を指定しなければ毎回同じ内容になります。`,
	RunE:  runPrompt,
}

func init() {
	addAdjustmentFlags(promptCmd)
}

func runPrompt(cmd *cobra.Command, _ []string) error {
	adj, err := adjustmentsFromFlags(cmd.Flags())
	if err != nil {
		return err
	}
	if err := adj.Validate(); err != nil {
		return err
	}
	_, err = fmt.Fprint(cmd.OutOrStdout(), prompt.Build(adj))
	return err
}
