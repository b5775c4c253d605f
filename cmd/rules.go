package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	tt "github.com/gnolang/pycheck/internal/types"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the rule codes and their messages",
	Run: func(cmd *cobra.Command, args []string) {
		printRules(cmd.OutOrStdout())
	},
}

func printRules(w io.Writer) {
	for _, code := range tt.AllCodes {
		fmt.Fprintf(w, "%s %s\n", code, strings.ReplaceAll(code.Template(), "%s", "<name>"))
	}
}
