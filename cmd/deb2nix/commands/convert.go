package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/deb2nix/internal/app"
)

func (c *CLI) newConvertCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <url-or-path>",
		Short: "Convert a .deb archive into a Nix expression",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			output, _ := cmd.Flags().GetString("output")
			return c.app.Convert(cmd.Context(), app.ConvertOptions{
				Source:     args[0],
				ConfigPath: configPath,
				OutputPath: output,
			})
		},
	}
	cmd.Flags().StringP("output", "o", "", "Write the expression here instead of the configured path")
	return cmd
}
