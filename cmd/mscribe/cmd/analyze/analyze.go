package analyze

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"meeting-scribe/internal/api/v1/services"
	"meeting-scribe/internal/app/export"
	"meeting-scribe/internal/app/repository/sqlite"
	"meeting-scribe/internal/config"
)

var (
	targetLanguage string
	analysisModel  string
	backend        string
	outputPath     string
	docxPath       string
)

func init() {
	Cmd.Flags().StringVarP(&targetLanguage, "target-language", "t", "", "translation target language")
	Cmd.Flags().StringVarP(&analysisModel, "model", "m", "", "analysis model name")
	Cmd.Flags().StringVarP(&backend, "backend", "b", "", "analysis backend (openai or gemini)")
	Cmd.Flags().StringVarP(&outputPath, "output", "o", "", "write result JSON to file instead of stdout")
	Cmd.Flags().StringVarP(&docxPath, "docx", "d", "", "additionally render the minutes as a docx file")
}

// Cmd represents the analyze command
var Cmd = &cobra.Command{
	Use:   "analyze <audio-file>",
	Short: "Run the model-driven analysis pipeline on one recording",
	Long: `Transcribe one recording through the OpenAI audio API, rebuild it
into a verified conversation, and persist the result. Prints the analysis
as JSON.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := config.Load()
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

		db, err := sqlite.Open(settings.DBPath)
		if err != nil {
			return err
		}
		dao := sqlite.NewAnalysisDB(db)
		defer dao.Close()

		service := services.NewAnalysisService(settings, dao, nil, logger)
		response, err := service.Analyze(cmd.Context(), &services.AnalyzeRequest{
			AudioPath:      args[0],
			FileName:       filepath.Base(args[0]),
			TargetLanguage: targetLanguage,
			AnalysisModel:  analysisModel,
			Backend:        backend,
		})
		if err != nil {
			return err
		}

		if docxPath != "" {
			if err := export.WriteDocx(response.Analysis, response.FileName, docxPath); err != nil {
				return err
			}
			fmt.Printf("minutes written to %s\n", docxPath)
		}

		encoded, err := json.MarshalIndent(response, "", "  ")
		if err != nil {
			return err
		}
		if outputPath != "" {
			if err := os.WriteFile(outputPath, encoded, 0o644); err != nil {
				return err
			}
			fmt.Printf("analysis %d written to %s\n", response.ID, outputPath)
			return nil
		}
		fmt.Println(string(encoded))
		return nil
	},
}
