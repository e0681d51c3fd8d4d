package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/timeplus-io/chameleon/locsync/pipeline"

	"github.com/timeplus-io/chameleon/locsync/config"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:           "locsync",
	Short:         "push a GpsGate user position to a VP Desk resource",
	Long:          ``,
	RunE:          pipeline.Run,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	config.Conf.ApplyToCobra(rootCmd)

	for arg := range config.Conf {
		viper.BindPFlag(arg, rootCmd.Flags().Lookup(arg))
	}

	if err := rootCmd.Execute(); err != nil {
		if msg := exitMessage(err); msg != "" {
			fmt.Println(msg)
		}
		os.Exit(1)
	}
}

// exitMessage is what gets printed before exiting on err. A failed sync has
// already printed its verdict.
func exitMessage(err error) string {
	if errors.Is(err, pipeline.ErrSyncFailed) {
		return ""
	}
	return err.Error()
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.locsync.yaml)")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".locsync" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".locsync")
	}

	// LOCSYNC_GPSGATE_TOKEN, LOCSYNC_VPDESK_APIKEY, ...
	viper.SetEnvPrefix("locsync")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		log.Infof("using config file:%s", viper.ConfigFileUsed())
	}
}
