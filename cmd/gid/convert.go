package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Lzww0608/gid"
)

var (
	decodeFrom   string
	encodeFrom   string
	encodeFormat string
	inspectJSON  bool
)

var decodeCmd = &cobra.Command{
	Use:   "decode <text>",
	Short: "Decode an identifier and print its decimal value",
	Long: `Decode an identifier and print its decimal value.

Without --from the format is auto-detected in this order: "0x" prefix (hex),
digits only (decimal), digits and lowercase letters (base36), anything else in
0-9a-zA-Z_- (base64, decoded lowercased). Pass --from when the format is known.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := decodeArg(args[0], decodeFrom)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), id)
		return nil
	},
}

var encodeCmd = &cobra.Command{
	Use:   "encode <text>",
	Short: "Re-encode an identifier in another format",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		id, err := decodeArg(args[0], encodeFrom)
		if err != nil {
			return err
		}
		format, err := outputFormat(encodeFormat, cfg)
		if err != nil {
			return err
		}
		text, err := gid.Encode(id, format)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
		return nil
	},
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <text>",
	Short: "Show every rendering of an identifier and its time-ordered fields",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := decodeArg(args[0], decodeFrom)
		if err != nil {
			return err
		}
		view := gid.ConvertAll(id)
		out := cmd.OutOrStdout()

		if inspectJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				gid.View
				Timestamp uint64 `json:"timestamp"`
				Offset    uint16 `json:"offset"`
			}{view, id.Timestamp(), id.Offset()})
		}

		fmt.Fprintf(out, "value:     %s\n", view.Value)
		fmt.Fprintf(out, "base36:    %s\n", view.Base36)
		fmt.Fprintf(out, "base64:    %s\n", view.Base64)
		fmt.Fprintf(out, "hex:       %s\n", view.Hex)
		fmt.Fprintf(out, "timestamp: %d (%s)\n", id.Timestamp(), id.Time().UTC().Format("2006-01-02T15:04:05.000Z07:00"))
		fmt.Fprintf(out, "offset:    %d\n", id.Offset())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd, encodeCmd, inspectCmd)

	decodeCmd.Flags().StringVar(&decodeFrom, "from", "auto", "input format: auto, decimal, base36, base64, hex")
	inspectCmd.Flags().StringVar(&decodeFrom, "from", "auto", "input format: auto, decimal, base36, base64, hex")
	inspectCmd.Flags().BoolVar(&inspectJSON, "json", false, "print as JSON")
	encodeCmd.Flags().StringVar(&encodeFrom, "from", "auto", "input format: auto, decimal, base36, base64, hex")
	encodeCmd.Flags().StringVarP(&encodeFormat, "format", "f", "", "output format: decimal, base36, base64, hex (default from config)")
}

func decodeArg(text, from string) (gid.ID, error) {
	format, err := gid.ParseFormat(from)
	if err != nil {
		return gid.Nil, err
	}
	return gid.Decode(text, format)
}
