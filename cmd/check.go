// Package cmd implements the command-line interface for anilens.
package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/anilens-cli/anilens/animeflv"
	"github.com/anilens-cli/anilens/icon"
	"github.com/anilens-cli/anilens/key"
	"github.com/anilens-cli/anilens/style"
	"github.com/anilens-cli/anilens/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

// checkCmd probes the upstream catalog API through the configured relay proxy.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Probe the catalog API and report reachability",
	Run: func(cmd *cobra.Command, args []string) {
		target := viper.GetString(key.APIBaseURL)
		if viper.GetBool(key.APIProxyEnabled) {
			target = fmt.Sprintf("%s (via %s)", target, viper.GetString(key.APIProxy))
		}

		erase := util.PrintErasable(fmt.Sprintf("%s Probing %s...", icon.Get(icon.Progress), target))
		start := time.Now()
		err := animeflv.Ping()
		elapsed := time.Since(start).Round(time.Millisecond)
		erase()

		if err != nil {
			fmt.Printf("%s %s unreachable: %v\n", icon.Get(icon.Fail), target, err)
			os.Exit(1)
		}

		fmt.Printf("%s %s reachable %s\n", icon.Get(icon.Success), target, style.Faint(elapsed.String()))
	},
}
