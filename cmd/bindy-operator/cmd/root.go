// Package cmd implements the CLI interface for the bindy operator binary.
// It provides the run subcommand that starts the controller manager.
package cmd

import (
	"flag"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	ctrl "sigs.k8s.io/controller-runtime"
	"sigs.k8s.io/controller-runtime/pkg/log/zap"
)

var (
	cfgFile string
	zapOpts *zap.Options
	rootCmd = &cobra.Command{
		Use:   "bindy-operator",
		Short: "Kubernetes control plane for BIND9 DNS clusters",
		Long: `bindy-operator watches DNSZone, Bind9Cluster, Bind9Instance and the
eight record kinds, reconciling them against a fleet of BIND9 pods it
manages and the zones/records those pods serve.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if level := viper.GetString("log_level"); level != "" {
				var lvl zapcore.Level
				if err := lvl.UnmarshalText([]byte(level)); err == nil {
					zapOpts.Level = lvl
				}
			}
			ctrl.SetLogger(zap.New(zap.UseFlagOptions(zapOpts)))
		},
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.bindy-operator.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	zapfs := flag.NewFlagSet("zap", flag.ExitOnError)
	zapOpts = &zap.Options{}
	zapOpts.BindFlags(zapfs)
	rootCmd.PersistentFlags().AddGoFlagSet(zapfs)

	rootCmd.AddCommand(runCmd)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".bindy-operator")
	}
	viper.AutomaticEnv()
	if err := viper.ReadInConfig(); err == nil {
		ctrl.Log.Info("loaded configuration", "config-file", viper.ConfigFileUsed())
	}
}
