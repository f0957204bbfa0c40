package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "hotel-catalog",
	Short: "Browse, filter and price a hotel's rooms, spa services, events and meeting halls",
	Long: `hotel-catalog reads the hotel catalog and availability from the hotel API (or the
rendered website), filters it by date window, party size and text, pages the results
and prices room combinations. A PostgreSQL snapshot keeps pages usable when the API is down.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.hotel-catalog.yaml)")

	flags := rootCmd.PersistentFlags()
	flags.String("api-url", "", "Hotel API base URL")
	flags.String("source", "", "Catalog source: rest or browser")
	flags.String("site-url", "", "Hotel website URL for the browser source")
	flags.Int("page-size", 0, "Items per page")
	flags.String("log-level", "", "Log level: debug, info, warn, error")
	flags.Bool("snapshot", false, "Fall back to the PostgreSQL snapshot when the API fails")

	bindings := map[string]string{
		"catalog_api_url":  "api-url",
		"catalog_source":   "source",
		"site_url":         "site-url",
		"page_size":        "page-size",
		"log_level":        "log-level",
		"snapshot_enabled": "snapshot",
	}
	for key, flag := range bindings {
		_ = viper.BindPFlag(key, flags.Lookup(flag))
	}

	rootCmd.AddCommand(searchCmd, quoteCmd, reportCmd, syncCmd, optionsCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".hotel-catalog")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
