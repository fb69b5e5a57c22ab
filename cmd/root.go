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
	"go.uber.org/zap"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gojabber",
	Short: "Acoustic wave field synthesis on a uniform base flow",
	Long: `Synthesizes planar acoustic waves from single waves, wave lists or a power
spectral density, and evaluates the density, momentum and energy perturbation
they impose on a uniform base flow at a cloud of points.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.gojabber.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "development logging and a printout of the input parameters")
	rootCmd.PersistentFlags().IntP("procLimit", "p", 0, "goroutines used by Compute when the input file does not set ProcLimit, 0 uses every CPU")
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("procLimit", rootCmd.PersistentFlags().Lookup("procLimit"))
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
		// Search config in home directory with name ".gojabber" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".gojabber")
	}
	viper.SetEnvPrefix("GOJABBER")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newLogger returns a JSON production logger on stderr, or a development logger when verbose
func newLogger(verbose bool) (logger *zap.Logger, err error) {
	var (
		config = zap.NewProductionConfig()
	)
	if verbose {
		config = zap.NewDevelopmentConfig()
	}
	config.OutputPaths = []string{"stderr"}
	return config.Build()
}

// procLimit prefers the input file, then the flag, environment or global config
func procLimit(fromInput int) int {
	if fromInput > 0 {
		return fromInput
	}
	return viper.GetInt("procLimit")
}

func exitOnError(logger *zap.Logger, err error) {
	if err == nil {
		return
	}
	if logger != nil {
		logger.Error("command failed", zap.Error(err))
		_ = logger.Sync()
	}
	fmt.Fprintf(os.Stderr, "error: %s\n", err.Error())
	os.Exit(1)
}
