package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newExtractCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract [file]",
		Short: "Run the field extractor over recognized text",
		Long: "Reads recognized receipt text from a file (or stdin) and prints the\n" +
			"extracted payer identifier and amount. A debugging tool for tuning\n" +
			"the patterns in resibo.yaml.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var text []byte
			var err error
			if len(args) > 0 {
				text, err = os.ReadFile(args[0])
			} else {
				text, err = io.ReadAll(cmd.InOrStdin())
			}
			if err != nil {
				return fmt.Errorf("reading text: %w", err)
			}
			return runExtract(cmd, string(text))
		},
	}
	return cmd
}

func runExtract(cmd *cobra.Command, text string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	eng, err := buildEngine(cfg)
	if err != nil {
		return err
	}

	receipt := eng.Extract(text)
	out := cmd.OutOrStdout()
	if receipt.IdentifierFound {
		fmt.Fprintf(out, "identifier: %s\n", receipt.Identifier)
	} else {
		fmt.Fprintln(out, "identifier: (not found)")
	}
	if receipt.AmountFound {
		fmt.Fprintf(out, "amount: %s\n", receipt.Amount.StringFixed(2))
	} else {
		fmt.Fprintln(out, "amount: (not found)")
	}
	return nil
}
