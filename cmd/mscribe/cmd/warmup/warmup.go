package warmup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"meeting-scribe/internal/config"
)

var (
	serverURL string
	translate bool
	parallel  int
)

func init() {
	Cmd.Flags().StringVarP(&serverURL, "server", "s", "http://localhost:8000", "base URL of a running mscribe server")
	Cmd.Flags().BoolVarP(&translate, "translate", "t", false, "request translation for each file")
	Cmd.Flags().IntVarP(&parallel, "parallel", "p", 1, "number of concurrent uploads")
}

// Cmd represents the warmup command
var Cmd = &cobra.Command{
	Use:   "warmup <paths...>",
	Short: "Replay recordings against a running server",
	Long: `Upload recordings (files or directories of files) to a running
server's transcription endpoint. The first request loads the models, so
this doubles as a cache warmer and a smoke test.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := config.Load()

		files, err := collectAudioFiles(args, settings)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Println("no supported recordings found")
			return nil
		}

		progress := mpb.New(
			mpb.WithOutput(os.Stderr),
			mpb.WithRefreshRate(120*time.Millisecond),
		)
		bar := progress.AddBar(int64(len(files)),
			mpb.PrependDecorators(
				decor.Name("Warming up ", decor.WC{W: 11, C: decor.DindentRight}),
				decor.CountersNoUnit("(%d/%d)", decor.WCSyncWidth),
			),
			mpb.AppendDecorators(
				decor.NewPercentage("%.1f", decor.WCSyncSpace),
			),
		)

		if parallel < 1 {
			parallel = 1
		}
		var wg sync.WaitGroup
		sem := make(chan bool, parallel)

		for _, file := range files {
			wg.Add(1)
			go func(file string) {
				defer wg.Done()
				defer bar.Increment()

				sem <- true
				result, err := uploadFile(serverURL, file, translate)
				<-sem

				if err != nil {
					log.Printf("warmup failed for %s: %v", filepath.Base(file), err)
					return
				}
				log.Printf("%s: language=%s speakers=%d summary_sentences=%d",
					filepath.Base(file), result.Language, result.speakerCount(), len(result.Summary.Sentences))
			}(file)
		}
		wg.Wait()
		progress.Wait()
		return nil
	},
}

type warmupResult struct {
	Language   string `json:"language"`
	Transcript []struct {
		Speaker string `json:"speaker"`
	} `json:"transcript"`
	Summary struct {
		Sentences []string `json:"sentences"`
	} `json:"summary"`
}

func (r *warmupResult) speakerCount() int {
	seen := map[string]bool{}
	for _, segment := range r.Transcript {
		seen[segment.Speaker] = true
	}
	return len(seen)
}

func collectAudioFiles(paths []string, settings *config.Settings) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			ext := filepath.Ext(entry.Name())
			if ext != "" && settings.ExtensionAllowed(ext[1:]) {
				files = append(files, filepath.Join(path, entry.Name()))
			}
		}
	}
	return files, nil
}

func uploadFile(baseURL, path string, translate bool) (*warmupResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, err
	}
	src, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, src); err != nil {
		src.Close()
		return nil, err
	}
	src.Close()
	if err := writer.WriteField("translate", strconv.FormatBool(translate)); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	resp, err := http.Post(baseURL+"/api/v1/transcribe", writer.FormDataContentType(), &body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, payload)
	}

	var result warmupResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, err
	}
	return &result, nil
}
