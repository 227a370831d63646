package export

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"meeting-scribe/internal/app/export"
	"meeting-scribe/internal/app/repository/sqlite"
	"meeting-scribe/internal/config"
)

var (
	outputFilePath string
	format         string
	limit          int
)

func init() {
	Cmd.Flags().StringVarP(&outputFilePath, "outputFilePath", "o", "", "set outputFilePath")
	Cmd.Flags().StringVarP(&format, "format", "f", "xlsx", "output format: xlsx or json")
	Cmd.Flags().IntVarP(&limit, "limit", "l", 0, "number of recent analyses to export (default 50)")

	Cmd.MarkFlagRequired("outputFilePath")
}

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export recent analyses to excel or JSON",
	Run: func(cmd *cobra.Command, args []string) {
		settings := config.Load()

		db, err := sqlite.Open(settings.DBPath)
		if err != nil {
			log.Fatal(err)
		}
		dao := sqlite.NewAnalysisDB(db)
		defer dao.Close()

		records, err := dao.FindRecent(context.Background(), limit)
		if err != nil {
			log.Fatal(err)
		}

		out, err := os.Create(outputFilePath)
		if err != nil {
			log.Fatal(err)
		}
		defer out.Close()

		switch format {
		case "json":
			encoder := json.NewEncoder(out)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(records); err != nil {
				log.Fatal(err)
			}
		case "xlsx":
			if err := export.ToExcel(records, out); err != nil {
				log.Fatal(err)
			}
		default:
			log.Fatalf("unknown format %q, expected xlsx or json", format)
		}
		fmt.Printf("export finished, exported file path: %v\n", outputFilePath)
	},
}
