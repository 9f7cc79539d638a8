// Command oui-indexer rebuilds the oui.idx/iab.idx sidecar files described
// in spec §6 from a bundled IEEE flat-file registry (oui.txt or iab.txt),
// walking the source once and recording, per prefix, the byte offset and
// length of its first record and its registration count. The registry
// package's own lookups (OUIRegistrations, IABRegistrations) do not read
// the sidecar: they parse the embedded file into an in-memory map.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/ipalg/ipalg/registry"
)

var (
	inputPath  string
	outputPath string
	hexDigits  int
)

func main() {
	root := &cobra.Command{
		Use:   "oui-indexer",
		Short: "Rebuild an oui.idx/iab.idx sidecar from a bundled IEEE flat-file registry",
		RunE:  run,
	}

	flags := root.Flags()
	flags.StringVarP(&inputPath, "input", "i", "", "path to the source oui.txt or iab.txt file (required)")
	flags.StringVarP(&outputPath, "output", "o", "", "path to write the sidecar index file (required)")
	flags.IntVar(&hexDigits, "hex-digits", 6, "hex-digit width of the prefix column (6 for OUI, 9 for IAB)")

	if err := root.Execute(); err != nil {
		log.Fatal(err)
	}
}

func run(cmd *cobra.Command, args []string) error {
	if inputPath == "" || outputPath == "" {
		return fmt.Errorf("oui-indexer: both --input and --output are required")
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("oui-indexer: reading %s: %w", inputPath, err)
	}

	records := registry.BuildSidecar(data, hexDigits)

	out, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("oui-indexer: creating %s: %w", outputPath, err)
	}
	defer out.Close()

	if err := registry.WriteSidecar(out, records); err != nil {
		return fmt.Errorf("oui-indexer: writing %s: %w", outputPath, err)
	}

	log.Printf("oui-indexer: wrote %d prefix records from %s to %s", len(records), inputPath, outputPath)
	return nil
}
