// Package cmd implements the command-line interface for anilens.
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/anilens-cli/anilens/color"
	"github.com/anilens-cli/anilens/constant"
	"github.com/anilens-cli/anilens/icon"
	"github.com/anilens-cli/anilens/key"
	"github.com/anilens-cli/anilens/log"
	"github.com/anilens-cli/anilens/style"
	"github.com/anilens-cli/anilens/tui"
	"github.com/anilens-cli/anilens/util"
	"github.com/anilens-cli/anilens/version"
	"github.com/anilens-cli/anilens/where"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")
	rootCmd.Flags().StringP("search", "s", "", "Skip the home view and search immediately")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, plain)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().String("proxy", "", "Override the relay proxy prefix for catalog requests")
	lo.Must0(viper.BindPFlag(key.APIProxy, rootCmd.PersistentFlags().Lookup("proxy")))

	rootCmd.PersistentFlags().Bool("no-proxy", false, "Contact the catalog API directly, without the relay proxy")

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})

	// Cleanup of localized temporary files on application startup.
	go func() {
		_ = util.Delete(where.Temp())
	}()
}

// rootCmd defines the entry point for the anilens application.
var rootCmd = &cobra.Command{
	Use:   constant.Anilens,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("no-proxy")) {
			viper.Set(key.APIProxyEnabled, false)
		}
	},
	Short: "A terminal viewer for the AnimeFLV catalog",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - A terminal viewer for the AnimeFLV catalog"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		options := tui.Options{
			Query: lo.Must(cmd.Flags().GetString("search")),
		}
		handleErr(tui.Run(&options))
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
