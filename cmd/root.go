package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sitepress",
	Short: "draft and published content publishing tool",
	Example: `sitepress db migrate
sitepress publish collection -c <collection-id>
sitepress publish collection -c <collection-id> -i <item-id> -i <item-id>
sitepress publish site -s <site-id>
sitepress status -s <site-id>
sitepress gc`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(dbCmd)
	rootCmd.AddCommand(publishCmd)
	rootCmd.AddCommand(statusCmd())
	rootCmd.AddCommand(gcCmd())
	rootCmd.SetHelpCommand(&cobra.Command{Use: "no-help", Hidden: true})

	rootCmd.CompletionOptions.HiddenDefaultCmd = true
	cobra.EnableCommandSorting = false
}
