package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	logLevel string

	rootCmd = &cobra.Command{
		Use:   "udp-inject",
		Short: "udp-inject crafts Ethernet+IPv4+UDP frames and sends them on raw sockets",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logrus.ParseLevel(logLevel)
			if err != nil {
				return fmt.Errorf("error parsing log level: %w", err)
			}
			logrus.SetLevel(level)
			return nil
		},
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", logrus.InfoLevel.String(), "logrus level (trace, debug, info, warn, error)")
}

func Execute() error {
	return rootCmd.Execute()
}
