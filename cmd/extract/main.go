// Command extract runs a single extraction against the Chunkr API without the
// server or database: it reads a PDF from a local path or URL and prints the
// normalized rate sheet JSON to stdout.
// Usage: go run ./cmd/extract -file rates.pdf
//        go run ./cmd/extract -url https://example.com/rates.pdf
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path"
	"time"

	"github.com/codebuster009/chunkr-pdf-extraction/internal/chunkr"
	"github.com/codebuster009/chunkr-pdf-extraction/internal/config"
	"github.com/codebuster009/chunkr-pdf-extraction/internal/extract"
	"github.com/codebuster009/chunkr-pdf-extraction/internal/port"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	filePath := flag.String("file", "", "path to a local PDF file")
	fileURL := flag.String("url", "", "URL of a PDF document")
	flag.Parse()

	if (*filePath == "") == (*fileURL == "") {
		return fmt.Errorf("exactly one of -file or -url is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if cfg.Chunkr.APIKey == "" {
		return fmt.Errorf("CHUNKR_API_KEY is not set")
	}

	var fileBytes []byte
	var filename string
	if *filePath != "" {
		fileBytes, err = os.ReadFile(*filePath)
		if err != nil {
			return fmt.Errorf("reading %s: %w", *filePath, err)
		}
		filename = path.Base(*filePath)
	} else {
		fileBytes, filename, err = fetchURL(*fileURL)
		if err != nil {
			return fmt.Errorf("fetching %s: %w", *fileURL, err)
		}
	}

	client := chunkr.NewClient(&cfg.Chunkr)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	out, err := client.Extract(ctx, port.ExtractInput{FileBytes: fileBytes, Filename: filename})
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	sheet := extract.AssembleRateSheet(out.Fields)
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(sheet)
}

func fetchURL(docURL string) ([]byte, string, error) {
	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Get(docURL)
	if err != nil {
		return nil, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", err
	}

	filename := path.Base(resp.Request.URL.Path)
	if filename == "" || filename == "/" || filename == "." {
		filename = "document.pdf"
	}
	return body, filename, nil
}
