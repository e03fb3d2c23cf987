package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/matheuscscp/udp-inject/frame"

	"github.com/google/gopacket"
	gplayers "github.com/google/gopacket/layers"
)

// dumpFrame seals the frame and renders every field through the frame
// accessors, followed by gopacket's layer dump of the wire bytes.
func dumpFrame(w io.Writer, f *frame.Frame) error {
	b := f.Seal()

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	rows := []struct {
		name  string
		value interface{}
	}{
		{"interface", f.Interface()},
		{"mac source", f.SrcMAC()},
		{"mac destination", f.DstMAC()},
		{"ip source", f.SrcIP()},
		{"ip destination", f.DstIP()},
		{"ip total length", f.IPTotalLength()},
		{"ip ttl", f.TTL()},
		{"ip checksum", fmt.Sprintf("0x%04x", f.IPChecksum())},
		{"port source", f.SrcPort()},
		{"port destination", f.DstPort()},
		{"udp length", f.UDPLength()},
		{"udp checksum", fmt.Sprintf("0x%04x", f.UDPChecksum())},
		{"payload length", fmt.Sprintf("%d/%d (%s)", f.PayloadLen(), f.Capacity(), f.OverflowPolicy())},
		{"wire length", len(b)},
	}
	for _, row := range rows {
		if _, err := fmt.Fprintf(tw, "%s:\t%v\n", row.name, row.value); err != nil {
			return fmt.Errorf("error writing frame dump: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("error writing frame dump: %w", err)
	}

	pkt := gopacket.NewPacket(b, gplayers.LayerTypeEthernet, gopacket.Default)
	if _, err := fmt.Fprintln(w, pkt.Dump()); err != nil {
		return fmt.Errorf("error writing frame dump: %w", err)
	}
	return nil
}
