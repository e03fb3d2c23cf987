package hostnetwork

import (
	"github.com/matheuscscp/udp-inject/observability"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	promNamespace          = "hostnetwork"
	promSubsystemTransmit  = "raw_transmitter"
	labelNameInterface     = "interface"
	labelNameFailureReason = "reason"

	reasonCanceled          = "canceled"
	reasonSocket            = "socket"
	reasonInterfaceNotFound = "interface_not_found"
	reasonSend              = "send"
)

var (
	metricLabelsTransmit = []string{
		observability.StackName,
		labelNameInterface,
	}
	sentFrames = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: promNamespace,
		Subsystem: promSubsystemTransmit,
		Name:      "sent_frames",
		Help:      "Total number of frames sent.",
	}, metricLabelsTransmit)
	sentBytes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: promNamespace,
		Subsystem: promSubsystemTransmit,
		Name:      "sent_bytes",
		Help:      "Total number of bytes sent, Ethernet header included.",
	}, metricLabelsTransmit)
	sendFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: promNamespace,
		Subsystem: promSubsystemTransmit,
		Name:      "send_failures",
		Help:      "Total number of failed calls to Transmitter.Send() by reason.",
	}, append(metricLabelsTransmit, labelNameFailureReason))
	sendLatencyNs = promauto.NewSummaryVec(prometheus.SummaryOpts{
		Namespace: promNamespace,
		Subsystem: promSubsystemTransmit,
		Name:      "send_latency_ns",
		Help:      "Latency in nanoseconds of Transmitter.Send().",
	}, metricLabelsTransmit)
)
