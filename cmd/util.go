package cmd

import (
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func checkMissingFlags(cmd *cobra.Command, required []string) bool {
	var missing []string
	for _, flag := range required {
		if !cmd.Flags().Changed(flag) {
			missing = append(missing, flag)
		}
	}

	if len(missing) > 0 {
		color.Red("missing: --%s", strings.Join(missing, ", --"))
		return true
	}

	return false
}
