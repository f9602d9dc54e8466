// Package cli is for command line interactions with the hgtscan engine.
package cli

import (
	"log"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/phazegen/hgtscan/internal/catalog"
	"github.com/phazegen/hgtscan/internal/engine"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use: "hgtscan",
	Short: `Scan nucleotide sequences for horizontal gene transfer risk markers:
plasmid replicons, transposable elements and resistance genes`,
	Version: "1.0.0",
}

func init() {
	RootCmd.PersistentFlags().StringP("catalog", "c", "", "path to a signature catalog yaml (default: built-in)")
	viper.BindPFlag("catalog", RootCmd.PersistentFlags().Lookup("catalog"))
	viper.SetEnvPrefix("hgtscan")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

// loadEngine builds a detection engine from --catalog / HGTSCAN_CATALOG,
// falling back to the embedded catalog.
func loadEngine() (*engine.Engine, error) {
	path := viper.GetString("catalog")
	if path == "" {
		return engine.New(catalog.Default()), nil
	}
	cat, err := catalog.Load(path)
	if err != nil {
		return nil, err
	}
	return engine.New(cat), nil
}
