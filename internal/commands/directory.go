package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newDirectoryCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "directory",
		Short: "Print the payer directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			eng, err := buildEngine(cfg)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), eng.RenderDirectory(eng.OnDirectoryCommand()))
			return nil
		},
	}
}
