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

	"github.com/go-logr/logr"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/notargets/airfoilgrid/logging"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "airfoilgrid",
	Short: "Structured and unstructured grid generation around 2D airfoils",
	Long: `
Generates body fitted grids around NACA 4-digit airfoils. The OGrid command
solves the elliptic generation equations for a structured O-grid, the
Unstructured command triangulates the same region.

airfoilgrid OGrid -a NACA2412 -o naca2412.su2`,
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
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.airfoilgrid.yaml)")
	rootCmd.PersistentFlags().IntP("verbosity", "v", logging.DEFAULT, "log verbosity, 2 = default, 3 = verbose, 4 = debug")
	rootCmd.PersistentFlags().String("profile", "", "write a profile to the current directory: cpu or mem")
	rootCmd.PersistentFlags().Bool("perf", false, "count CPU instructions used by the grid generation (Linux only)")
	for _, name := range []string{"verbosity", "profile", "perf"} {
		if err := viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name)); err != nil {
			panic(err)
		}
	}
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
		// Search config in home directory with name ".airfoilgrid" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".airfoilgrid")
	}
	viper.SetEnvPrefix("AIRFOILGRID")
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}
}

func newLogger() (logger logr.Logger) {
	var err error
	if logger, err = logging.NewLogger(viper.GetInt("verbosity")); err != nil {
		fmt.Printf("unable to build logger, logging disabled: %s\n", err.Error())
	}
	return
}

// startProfile returns the function that stops profiling
func startProfile(logger logr.Logger) (stop func()) {
	var p interface{ Stop() }
	switch mode := viper.GetString("profile"); mode {
	case "":
		return func() {}
	case "cpu":
		p = profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook, profile.Quiet)
	case "mem":
		p = profile.Start(profile.MemProfile, profile.ProfilePath("."), profile.NoShutdownHook, profile.Quiet)
	default:
		logger.Info("unknown profile mode, profiling disabled", "profile", mode)
		return func() {}
	}
	return p.Stop
}

// measure runs f, counting its CPU instructions when --perf is set
func measure(logger logr.Logger, label string, f func() error) error {
	if !viper.GetBool("perf") {
		return f()
	}
	var ran bool
	count, err := countInstructions(func() error {
		ran = true
		return f()
	})
	if !ran {
		logger.Info("instruction counting unavailable", "error", err.Error())
		return f()
	}
	if err != nil {
		return err
	}
	fmt.Printf("%s: %d CPU instructions\n", label, count)
	return nil
}
