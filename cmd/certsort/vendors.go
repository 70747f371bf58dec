package main

import (
	"fmt"

	"github.com/Veraticus/certificate-sorter/internal/cli"
	"github.com/Veraticus/certificate-sorter/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func vendorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "vendors",
		Short: "Show the vendor keywords and exclusions",
		Long: `Print the effective keyword table in evaluation order. The first vendor
with a matching keyword wins, and any exclusion keyword overrides every vendor.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table, err := config.LoadKeywordTable(viper.GetViper())
			if err != nil {
				return err
			}
			if _, err := newMatcher(table); err != nil {
				return err
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.RenderKeywordTable(table))
			return err
		},
	}
}
