package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/matheuscscp/udp-inject/config"
	"github.com/matheuscscp/udp-inject/frame"
	"github.com/matheuscscp/udp-inject/hostnetwork"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

type (
	sendConfig struct {
		Frame       frame.Config                  `yaml:"frame"`
		Transmitter hostnetwork.TransmitterConfig `yaml:"transmitter"`
	}

	sendFlags struct {
		configFile      string
		iface           string
		srcIPAddress    string
		dstIPAddress    string
		srcPort         uint16
		dstPort         uint16
		srcMACAddress   string
		dstMACAddress   string
		stdio           bool
		file            string
		print           bool
		strict          bool
		dryRun          bool
		metricsTextfile string
	}
)

// newSendCmd creates the send command with its own flag values.
func newSendCmd() *cobra.Command {
	var opts sendFlags
	cmd := &cobra.Command{
		Use:   "send [flags] [payload words...]",
		Short: "Craft a UDP datagram and send it on a raw link-layer socket",
		Long: `Craft an Ethernet+IPv4+UDP frame, compute its checksums and send it
through the given interface to the broadcast link-layer address.

The payload is read from stdin (--stdio), from a file (--file) or, when
neither is given, from the positional arguments, which are appended one
after the other without separators.

Flags override the values of the YAML config file (--config). Sending
requires root or CAP_NET_RAW.`,
		Example: `  # send "ping" from 10.0.0.1:1234 to 10.0.0.2:53 through eth0
  udp-inject send -n eth0 -s 10.0.0.1 -i 10.0.0.2 -o 1234 -p 53 ping

  # send a file as payload and dump the frame before sending
  udp-inject send -n eth0 -i 10.0.0.2 -p 9 -f payload.bin -e`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return send(cmd, args, &opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.configFile, "config", "c", "", "YAML file with frame and transmitter configs")
	flags.StringVarP(&opts.iface, "interface", "n", "", "outbound network interface")
	flags.StringVarP(&opts.srcIPAddress, "ip-source", "s", "", "src IPv4 address")
	flags.StringVarP(&opts.dstIPAddress, "ip-destination", "i", "", "dst IPv4 address")
	flags.Uint16VarP(&opts.srcPort, "port-source", "o", 0, "src UDP port")
	flags.Uint16VarP(&opts.dstPort, "port-destination", "p", 0, "dst UDP port")
	flags.StringVarP(&opts.srcMACAddress, "mac-address-source", "a", "", "src MAC address")
	flags.StringVarP(&opts.dstMACAddress, "mac-address-destination", "m", "", "dst MAC address (default broadcast)")
	flags.BoolVarP(&opts.stdio, "stdio", "w", false, "read the payload from stdin")
	flags.StringVarP(&opts.file, "file", "f", "", "read the payload from a file")
	flags.BoolVarP(&opts.print, "print", "e", false, "dump the frame before sending")
	flags.BoolVar(&opts.strict, "strict", false, "fail instead of truncating payloads larger than the capacity")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "seal and dump the frame without sending")
	flags.StringVar(&opts.metricsTextfile, "metrics-textfile", "", "write prometheus metrics to this file after sending")
	cmd.MarkFlagsMutuallyExclusive("stdio", "file")

	return cmd
}

func init() {
	rootCmd.AddCommand(newSendCmd())
}

func send(cmd *cobra.Command, args []string, opts *sendFlags) error {
	var conf sendConfig
	if opts.configFile != "" {
		if err := config.ReadYAMLFileAndUnmarshal(opts.configFile, &conf); err != nil {
			return fmt.Errorf("error reading yaml send config file: %w", err)
		}
	}
	if opts.strict {
		conf.Frame.StrictOverflow = true
	}

	f, err := newFrame(cmd, args, opts, conf.Frame)
	if err != nil {
		return err
	}
	l := logrus.
		WithField("interface", f.Interface()).
		WithField("dst_ip_address", f.DstIP().String()).
		WithField("dst_port", f.DstPort())

	if opts.print || opts.dryRun {
		if err := dumpFrame(cmd.OutOrStdout(), f); err != nil {
			return err
		}
	}
	if opts.dryRun {
		return nil
	}

	if opts.metricsTextfile != "" {
		defer func() {
			if err := prometheus.WriteToTextfile(opts.metricsTextfile, prometheus.DefaultGatherer); err != nil {
				l.
					WithError(err).
					WithField("metrics_textfile", opts.metricsTextfile).
					Error("error writing metrics")
			}
		}()
	}

	transmitter, err := hostnetwork.NewTransmitter(conf.Transmitter)
	if err != nil {
		return err
	}
	defer func() {
		if err := transmitter.Close(); err != nil {
			l.
				WithError(err).
				Error("error closing transmitter")
		}
	}()

	ctx, cancel := contextWithCancelOnInterrupt(context.Background())
	defer cancel()
	if err := transmitter.Send(ctx, f); err != nil {
		return err
	}
	l.
		WithField("bytes", f.WireLength()).
		Info("frame sent")

	return nil
}

// newFrame builds the frame from the config file, then the flags that
// were explicitly set, then the payload source.
func newFrame(cmd *cobra.Command, args []string, opts *sendFlags, conf frame.Config) (*frame.Frame, error) {
	f, err := frame.NewFromConfig(conf)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	err = f.Apply(frame.Config{
		Interface:     changedOrEmpty(flags.Changed("interface"), opts.iface),
		SrcIPAddress:  changedOrEmpty(flags.Changed("ip-source"), opts.srcIPAddress),
		DstIPAddress:  changedOrEmpty(flags.Changed("ip-destination"), opts.dstIPAddress),
		SrcMACAddress: changedOrEmpty(flags.Changed("mac-address-source"), opts.srcMACAddress),
		DstMACAddress: changedOrEmpty(flags.Changed("mac-address-destination"), opts.dstMACAddress),
	})
	if err != nil {
		return nil, err
	}
	// port 0 is a valid explicit value, so it cannot go through Apply()
	if flags.Changed("port-source") {
		if err := f.SetSrcPort(opts.srcPort); err != nil {
			return nil, err
		}
	}
	if flags.Changed("port-destination") {
		if err := f.SetDstPort(opts.dstPort); err != nil {
			return nil, err
		}
	}

	if err := readPayload(cmd.InOrStdin(), args, opts, f); err != nil {
		return nil, err
	}
	return f, nil
}

func readPayload(stdin io.Reader, args []string, opts *sendFlags, f *frame.Frame) error {
	switch {
	case opts.stdio:
		_, err := f.ReadFrom(stdin)
		if errors.Is(err, frame.ErrCapacityExceeded) && f.OverflowPolicy() == frame.OverflowTruncate {
			logrus.
				WithError(err).
				Warn("payload truncated to frame capacity")
			err = nil
		}
		if err != nil {
			return fmt.Errorf("error reading payload from stdin: %w", err)
		}
	case opts.file != "":
		if _, err := f.ReadFile(opts.file); err != nil {
			return fmt.Errorf("error reading payload from file: %w", err)
		}
	default:
		for _, arg := range args {
			n, err := f.AppendData([]byte(arg))
			if err != nil {
				return fmt.Errorf("error appending payload argument: %w", err)
			}
			if n < len(arg) {
				logrus.
					WithField("dropped_bytes", len(arg)-n).
					Warn("payload truncated to frame capacity")
			}
		}
	}
	return nil
}

func changedOrEmpty(changed bool, value string) string {
	if changed {
		return value
	}
	return ""
}
