package hostnetwork

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/matheuscscp/udp-inject/frame"
	"github.com/matheuscscp/udp-inject/layers/link"
	"github.com/matheuscscp/udp-inject/observability"
	pkgio "github.com/matheuscscp/udp-inject/pkg/io"

	"github.com/google/gopacket"
	gplayers "github.com/google/gopacket/layers"
	"github.com/google/gopacket/pcapgo"
	"github.com/hashicorp/go-multierror"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

const (
	// ResolverIoctl resolves interface indexes with SIOCGIFINDEX on the
	// raw socket itself.
	ResolverIoctl = "ioctl"

	// ResolverNetlink resolves interface indexes with an RTM_GETLINK
	// netlink request.
	ResolverNetlink = "netlink"
)

type (
	// Transmitter sends frames on the host network through raw
	// link-layer sockets. Each Send() seals the frame, opens a socket,
	// resolves the frame's interface, transmits exactly the frame's
	// wire bytes to the broadcast link-layer address and closes the
	// socket. No retries are made.
	Transmitter interface {
		Send(ctx context.Context, f *frame.Frame) error
		Close() error
	}

	// TransmitterConfig contains the configs for the concrete
	// implementation of Transmitter.
	TransmitterConfig struct {
		// Resolver is one of ResolverIoctl (default) or ResolverNetlink.
		Resolver     string         `yaml:"resolver"`
		Capture      *CaptureConfig `yaml:"capture"`
		MetricLabels struct {
			StackName string `yaml:"stackName"`
		} `yaml:"metricLabels"`
	}

	// CaptureConfig allows specifying configurations for capturing
	// sent frames in the pcapng format.
	CaptureConfig struct {
		Filename string `yaml:"filename"`
	}

	// TransmitterOption customizes a Transmitter.
	TransmitterOption func(t *transmitter)

	transmitter struct {
		conf          *TransmitterConfig
		l             logrus.FieldLogger
		openSocket    SocketOpener
		stackName     string
		captureFile   *os.File
		captureWriter *pcapgo.NgWriter
	}

	flushCloser struct {
		w *pcapgo.NgWriter
	}
)

var (
	ErrSocket            = errors.New("socket error")
	ErrInterfaceNotFound = errors.New("interface not found")
	ErrSend              = errors.New("send error")
)

// WithSocketOpener replaces OpenPacketSocket.
func WithSocketOpener(o SocketOpener) TransmitterOption {
	return func(t *transmitter) {
		t.openSocket = o
	}
}

// WithLogger replaces the logrus standard logger.
func WithLogger(l logrus.FieldLogger) TransmitterOption {
	return func(t *transmitter) {
		t.l = l
	}
}

// NewTransmitter creates a Transmitter from config.
func NewTransmitter(conf TransmitterConfig, opts ...TransmitterOption) (Transmitter, error) {
	switch conf.Resolver {
	case "":
		conf.Resolver = ResolverIoctl
	case ResolverIoctl, ResolverNetlink:
	default:
		return nil, fmt.Errorf("unknown interface resolver '%s'", conf.Resolver)
	}
	stackName := conf.MetricLabels.StackName
	if stackName == "" {
		stackName = observability.DefaultStackName
	}
	t := &transmitter{
		conf:       &conf,
		l:          logrus.StandardLogger(),
		openSocket: OpenPacketSocket,
		stackName:  stackName,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.l = t.l.WithField("resolver", conf.Resolver)

	if conf.Capture != nil {
		captureFile, err := os.Create(conf.Capture.Filename)
		if err != nil {
			return nil, fmt.Errorf("error creating capture file %s: %w", conf.Capture.Filename, err)
		}
		captureWriter, err := pcapgo.NewNgWriter(captureFile, gplayers.LinkTypeEthernet)
		if err != nil {
			captureFile.Close()
			return nil, fmt.Errorf("error creating pcapng writer: %w", err)
		}
		t.captureFile = captureFile
		t.captureWriter = captureWriter
	}

	return t, nil
}

func (t *transmitter) Send(ctx context.Context, f *frame.Frame) (err error) {
	iface := f.Interface()
	// the name may be cut mid-rune, prometheus rejects invalid utf-8
	metricLabels := prometheus.Labels{
		observability.StackName: t.stackName,
		labelNameInterface:      strings.ToValidUTF8(iface, "\uFFFD"),
	}
	l := t.l.WithField("interface", iface)

	if err := ctx.Err(); err != nil {
		sendFailures.With(withReason(metricLabels, reasonCanceled)).Inc()
		return err
	}

	t0 := time.Now()
	var sent bool
	var reason string
	defer func() {
		sendLatencyNs.With(metricLabels).Observe(float64(time.Since(t0).Nanoseconds()))
		if sent {
			f.Finish(nil)
			return
		}
		f.Finish(err)
		sendFailures.With(withReason(metricLabels, reason)).Inc()
		l.
			WithError(err).
			Debug("error sending frame")
	}()

	// checksums are recomputed on every send
	b := f.Seal()

	sock, err := t.openSocket()
	if err != nil {
		reason = reasonSocket
		return fmt.Errorf("%w: error opening raw socket (root or CAP_NET_RAW is required): %w", ErrSocket, err)
	}
	defer func() {
		if cErr := sock.Close(); cErr != nil {
			err = multierror.Append(err, fmt.Errorf("%w: error closing raw socket: %w", ErrSocket, cErr))
		}
	}()

	ifindex, err := t.interfaceIndex(sock, iface)
	if err != nil {
		reason = reasonInterfaceNotFound
		return fmt.Errorf("%w: '%s': %w", ErrInterfaceNotFound, iface, err)
	}
	l = l.WithField("ifindex", ifindex)

	if err := sock.SendTo(b, ifindex, link.BroadcastMACAddress()); err != nil {
		reason = reasonSend
		return fmt.Errorf("%w: %w", ErrSend, err)
	}
	sent = true

	sentFrames.With(metricLabels).Inc()
	sentBytes.With(metricLabels).Add(float64(len(b)))
	t.capture(l, b)
	l.
		WithField("bytes", len(b)).
		Debug("frame sent")

	return nil
}

func (t *transmitter) interfaceIndex(sock RawSocket, name string) (int, error) {
	if t.conf.Resolver == ResolverNetlink {
		return netlinkInterfaceIndex(name)
	}
	return sock.InterfaceIndex(name)
}

func (t *transmitter) capture(l logrus.FieldLogger, b []byte) {
	if t.captureWriter == nil {
		return
	}
	err := t.captureWriter.WritePacket(gopacket.CaptureInfo{
		Timestamp:     time.Now(),
		CaptureLength: len(b),
		Length:        len(b),
	}, b)
	if err != nil {
		l.
			WithError(err).
			Error("error capturing frame")
		return
	}
	if err := t.captureWriter.Flush(); err != nil {
		l.
			WithError(err).
			Error("error flushing capture")
	}
}

func (t *transmitter) Close() error {
	if t.captureFile == nil {
		return nil
	}
	f, w := t.captureFile, t.captureWriter
	t.captureFile, t.captureWriter = nil, nil
	return pkgio.Close(flushCloser{w}, f)
}

func (f flushCloser) Close() error {
	return f.w.Flush()
}

func withReason(labels prometheus.Labels, reason string) prometheus.Labels {
	l := make(prometheus.Labels, len(labels)+1)
	for k, v := range labels {
		l[k] = v
	}
	l[labelNameFailureReason] = reason
	return l
}
