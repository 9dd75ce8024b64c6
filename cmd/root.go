/*
Copyright © 2020 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version is the release version reported by --version
const Version = "0.1.0"

var cfgFile string

// rootCmd represents the base command when called without any subcommands.
// For compatibility with the classic single-command tool, bare positional
// arguments (inputs... output) run a join directly.
var rootCmd = &cobra.Command{
	Use:     "meshjoin [inputs...] [output]",
	Short:   "Join multiple mesh partition files into one",
	Version: Version,
	// bare positionals must reach RunE instead of failing subcommand lookup
	Args: cobra.ArbitraryArgs,
	Long: `
Joins multiple mesh partition files into a single mesh with deduplicated
nodes, unified element blocks and merged time-varying nodal variables.

meshjoin left.mesh right.mesh joined.mesh`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) < 3 {
			return cmd.Help()
		}
		return runJoin(args[:len(args)-1], args[len(args)-1], joinOptions{})
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.meshjoin.yaml)")
	rootCmd.SilenceUsage = true
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".meshjoin" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".meshjoin")
	}

	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}
