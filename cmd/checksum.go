package cmd

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/matheuscscp/udp-inject/pkg/checksum"

	"github.com/spf13/cobra"
)

var checksumCmd = &cobra.Command{
	Use:   "checksum <hex-bytes>...",
	Short: "Compute the Internet checksum (RFC 1071) of hex-encoded bytes",
	Long: `Compute the Internet checksum of the concatenation of the given
hex-encoded arguments. Spaces and colons inside arguments are ignored.

To check a header that already carries its checksum, look at the
"valid" line: the complement of the folded sum must be zero.`,
	Example: `  udp-inject checksum 4500 0073 0000 4000 4011 0000 c0a8 0001 c0a8 00c7`,
	Args:    cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := strings.NewReplacer(" ", "", ":", "").Replace(strings.Join(args, ""))
		b, err := hex.DecodeString(s)
		if err != nil {
			return fmt.Errorf("error decoding hex input: %w", err)
		}
		sum := checksum.Sum(b)
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "sum:      0x%08x\n", sum)
		fmt.Fprintf(w, "folded:   0x%04x\n", checksum.Fold(sum))
		fmt.Fprintf(w, "checksum: 0x%04x\n", checksum.Compute(sum))
		fmt.Fprintf(w, "valid:    %t\n", checksum.Valid(sum))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checksumCmd)
}
