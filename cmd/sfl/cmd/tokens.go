package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	mdwerror "github.com/msto63/sfl/foundation/core/error"
)

var tokensPositions bool

var tokensCmd = &cobra.Command{
	Use:   "tokens DATEI",
	Short: "Zeigt die Token einer Datei",
	Long: `Zerlegt eine Datei mit dem gewählten Lexer und gibt ein Token pro
Zeile aus. Nützlich, um zu sehen, wie der Legacy-Lexer Bezeichner
mit Schlüsselwörtern zerteilt.

Beispiele:
  sfl tokens prog.sf
  sfl tokens --positions --lexer scanning prog.sf`,
	Args: cobra.ExactArgs(1),
	RunE: runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
	tokensCmd.Flags().BoolVarP(&tokensPositions, "positions", "p", false, "Zeile und Spalte mit ausgeben")
}

func runTokens(cmd *cobra.Command, args []string) error {
	rt, err := loadSession(cmd)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(args[0])
	if err != nil {
		return mdwerror.Wrap(err, "failed to read source").
			WithCode(mdwerror.CodeReadFailed).
			WithDetail("path", args[0])
	}

	out := cmd.OutOrStdout()
	for _, tok := range rt.engine.Tokens(string(content)) {
		if tokensPositions {
			fmt.Fprintf(out, "%d:%d\t%s\n", tok.Line, tok.Column, tok.Value)
			continue
		}
		fmt.Fprintln(out, tok.Value)
	}
	return nil
}
