package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	v1 "github.com/carlsburger/gastrocore/gastrocore/v1"
	"github.com/carlsburger/gastrocore/posimport"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Parse a POS export and submit it for matching",
	Long: `Parse a POS terminal export (.xlsx, .xls or .csv), group and dedupe the
ticket lines, and submit them as import batches.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, cfg, err := newClient()
		if err != nil {
			fail(err)
			return
		}
		log := newLogger(cfg)

		file, err := os.Open(args[0])
		if err != nil {
			fail(err)
			return
		}
		defer file.Close()

		records, err := posimport.ParseWorkbook(file, args[0])
		if err != nil {
			fail(err)
			return
		}
		fmt.Printf("Parsed %d ticket lines\n", len(records))

		for _, g := range posimport.GroupRecords(records) {
			fmt.Printf("  register %s, %s: %d lines, gross %d.%02d €\n",
				g.Register, g.BusinessDay, len(g.Records),
				g.GrossCents/100, g.GrossCents%100)
		}

		submitter := &posimport.Submitter{
			Service:  client.Imports,
			Reporter: newReporter(cfg, log),
			Log:      log,
		}
		batches, err := submitter.Submit(cmd.Context(), filepath.Base(args[0]), records)
		if err != nil {
			fail(err)
			return
		}
		for _, b := range batches {
			fmt.Printf("Batch %s: %d records, %d duplicates, status %s\n",
				b.ID, b.RecordCount, b.DuplicateCount, b.Status)
		}
	},
}

var importsCmd = &cobra.Command{
	Use:   "imports",
	Short: "List recent POS import batches",
	Run: func(cmd *cobra.Command, args []string) {
		client, cfg, err := newClient()
		if err != nil {
			fail(err)
			return
		}
		status, _ := cmd.Flags().GetString("status")

		ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Timeout())
		defer cancel()

		result, err := client.Imports.Search(ctx, v1.ImportSearchRequest{Status: status, Take: 20})
		if err != nil {
			fail(err)
			return
		}
		if len(result.Data) == 0 {
			fmt.Println("No import batches")
			return
		}
		for _, b := range result.Data {
			line := fmt.Sprintf("%s  %-10s %4d records  %s",
				b.CreatedAt.Format("2006-01-02 15:04"), b.Status, b.RecordCount, b.Source)
			if b.Error != "" {
				line += "  (" + b.Error + ")"
			}
			fmt.Println(line)
		}
	},
}

func init() {
	importsCmd.Flags().String("status", "", "filter by status (received, matched, failed)")
}
