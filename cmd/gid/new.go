package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Lzww0608/gid"
	"github.com/Lzww0608/gid/internal/config"
)

var (
	newKind   string
	newFormat string
	newCount  int
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Generate identifiers",
	Long: `Generate one or more identifiers and print them, one per line.

Examples:
  gid new
  gid new --kind random --format base64
  gid new -n 10 --format hex`,
	Args: cobra.NoArgs,
	RunE: runNew,
}

func init() {
	rootCmd.AddCommand(newCmd)

	newCmd.Flags().StringVar(&newKind, "kind", "", "identifier kind: time or random (default from config)")
	newCmd.Flags().StringVarP(&newFormat, "format", "f", "", "output format: decimal, base36, base64, hex (default from config)")
	newCmd.Flags().IntVarP(&newCount, "count", "n", 1, "number of identifiers to generate")
}

func runNew(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	kind := newKind
	if kind == "" {
		kind = cfg.IDs.DefaultKind
	}
	if err := config.ValidateKind(kind); err != nil {
		return err
	}

	format, err := outputFormat(newFormat, cfg)
	if err != nil {
		return err
	}
	if newCount < 1 {
		return fmt.Errorf("count must be positive, got %d", newCount)
	}

	gen := gid.New
	if kind == config.KindRandom {
		gen = gid.NewRandom
	}

	out := cmd.OutOrStdout()
	for i := 0; i < newCount; i++ {
		id, err := gen()
		if err != nil {
			return err
		}
		text, err := gid.Encode(id, format)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, text)
	}
	return nil
}

// outputFormat resolves a --format flag, falling back to the configured default.
func outputFormat(name string, cfg *config.Config) (gid.Format, error) {
	format, err := gid.ParseFormat(name)
	if err != nil {
		return format, err
	}
	if format == gid.FormatAuto {
		format = cfg.IDs.DefaultFormat
	}
	return format, nil
}
