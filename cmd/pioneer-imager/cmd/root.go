// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package cmd implements the pioneer-imager command.
package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/headunit-tools/pioneer-imager/pkg/cli"
	"github.com/headunit-tools/pioneer-imager/pkg/imager"
	"github.com/headunit-tools/pioneer-imager/pkg/imager/profile"
	"github.com/headunit-tools/pioneer-imager/pkg/reporter"
)

var cmdFlags struct {
	Variant int
	Verbose bool
}

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "pioneer-imager <image-path> <platform> <update-path> <extdata-path> <cache-path>",
	Short: "Assemble a flashable Pioneer head unit firmware image.",
	Long: `Assemble a flashable firmware disk image for a Pioneer head unit from a
firmware update archive (.zip) and two filesystem seed trees.

Supported platforms: ` + strings.Join(profile.Names(), ", ") + `.`,
	Args:          cobra.ExactArgs(5),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.WithContext(context.Background(), func(ctx context.Context) error {
			report := reporter.New(reporter.WithVerbose(cmdFlags.Verbose))

			prof := profile.Profile{
				Platform:    args[1],
				Variant:     cmdFlags.Variant,
				UpdatePath:  args[2],
				ExtDataPath: args[3],
				CachePath:   args[4],
			}

			img, err := imager.New(prof)
			if err != nil {
				return err
			}

			if err = img.Execute(ctx, args[0], report); err != nil {
				report.Report(reporter.Update{
					Message: err.Error(),
					Status:  reporter.StatusError,
				})

				return err
			}

			fmt.Println("OK")

			return nil
		})
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().IntVar(&cmdFlags.Variant, "variant", 1, "Hardware variant selector for variant-specific archive entries")
	rootCmd.PersistentFlags().BoolVarP(&cmdFlags.Verbose, "verbose", "v", false, "Print progress updates and output of executed commands")
}
