// Command lcdump reads a HAT light-curve file and prints a summary, the full
// record as JSON, or the known-column table.
package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hatsurveys/lightcurve/pkg/hatlc"
	"github.com/hatsurveys/lightcurve/pkg/logger"
	"github.com/hatsurveys/lightcurve/pkg/schema"
)

var version = "0.1.0"

func main() {
	var (
		asJSON   bool
		logLevel string
	)

	root := &cobra.Command{
		Use:   "lcdump <lightcurve-file>",
		Short: "Inspect HAT light-curve files",
		Long: `lcdump reads a light curve produced by the old HAT light-curve server
(FITS binary table or delimited text, optionally compressed) and prints its
object metadata and columns. Compression and format are inferred from the
file name, so files must keep the server's naming convention.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logger.Init(logger.Config{
				Level:    logLevel,
				Encoding: "console",
			})
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			lc, err := hatlc.Read(args[0])
			if err != nil {
				return err
			}

			if asJSON {
				out, err := lc.JSON()
				if err != nil {
					return err
				}
				fmt.Println(string(out))
				return nil
			}

			fmt.Printf("object:      %s\n", lc.ObjectID)
			fmt.Printf("2MASS:       %s\n", lc.CrossMatchID)
			fmt.Printf("RA, Dec:     %.5f, %.5f deg\n", lc.RA, lc.Dec)
			fmt.Printf("V,R,I,J,H,K: %.2f %.2f %.2f %.2f %.2f %.2f\n",
				lc.Magnitudes[0], lc.Magnitudes[1], lc.Magnitudes[2],
				lc.Magnitudes[3], lc.Magnitudes[4], lc.Magnitudes[5])
			fmt.Printf("detections:  %d\n", lc.DetectionCount)
			fmt.Printf("stations:    %v\n", lc.Stations)
			fmt.Printf("filters:     %v\n", lc.Filters)
			fmt.Println("columns:")
			for _, code := range lc.Columns {
				if spec, ok := schema.Lookup(code); ok {
					fmt.Printf("  %-6s %s\n", code, spec.Description)
				} else {
					fmt.Printf("  %-6s (no schema entry)\n", code)
				}
			}
			return nil
		},
	}

	root.Flags().BoolVar(&asJSON, "json", false, "print the full record as JSON")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(&cobra.Command{
		Use:   "columns",
		Short: "List all known light-curve columns",
		Run: func(cmd *cobra.Command, args []string) {
			for _, spec := range schema.All() {
				fmt.Printf("%-6s %-4s %-8s %s\n",
					spec.Code, spec.BinaryType, spec.TextFormat, spec.Description)
			}
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("lcdump v%s\n", version)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})

	if err := root.Execute(); err != nil {
		logger.Error("read failed", zap.Error(err))
		_ = logger.Sync()
		os.Exit(1)
	}
	_ = logger.Sync()
}
