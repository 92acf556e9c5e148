package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"visapath/visa-advisor/internal/config"
	"visapath/visa-advisor/internal/services"
)

// Parses local resumes (.pdf or .docx) with the same pipeline as
// POST /parse-resume and prints the structured fields.
//
//	go run ./scripts [-extract-only] resume.pdf cv.docx
func main() {
	extractOnly := flag.Bool("extract-only", false, "print extracted text without calling the model")
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		log.Fatalf("usage: %s [-extract-only] <resume.pdf|resume.docx>...", filepath.Base(os.Args[0]))
	}

	log.Println("🚀 Starting resume parsing...")

	cfg := config.Load()
	logger, err := config.NewLogger(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	parser := services.NewDocumentParserService()

	var advisor services.AdvisorService
	if !*extractOnly {
		advisor, err = newAdvisor(cfg, parser, logger)
		if err != nil {
			log.Fatalf("❌ Failed to initialize advisor: %v", err)
		}
	}

	ctx := context.Background()
	successCount := 0
	failCount := 0

	for _, path := range paths {
		log.Printf("\n📄 Processing: %s", path)

		if !parser.SupportedExtension(path) {
			log.Printf("   ⚠️  Unsupported file type, skipping...")
			failCount++
			continue
		}

		if *extractOnly {
			content, err := parser.ExtractTextFromFile(path)
			if err != nil {
				log.Printf("   ❌ Failed to extract text: %v", err)
				failCount++
				continue
			}
			log.Printf("   ✅ Extracted %d pages, %d characters", content.PageCount, len(content.Text))
			fmt.Println(services.CleanText(content.Text))
			successCount++
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("   ⚠️  Failed to read file: %v", err)
			failCount++
			continue
		}

		fields, err := advisor.ParseResume(ctx, data, filepath.Base(path))
		if err != nil {
			log.Printf("   ❌ Failed to parse resume: %v", err)
			failCount++
			continue
		}

		out, err := json.MarshalIndent(fields, "", "  ")
		if err != nil {
			log.Printf("   ❌ Failed to encode result: %v", err)
			failCount++
			continue
		}
		fmt.Println(string(out))
		successCount++
	}

	// Summary
	log.Println("\n" + strings.Repeat("=", 60))
	log.Printf("📊 Parsing Summary:")
	log.Printf("   ✅ Successful: %d documents", successCount)
	log.Printf("   ❌ Failed: %d documents", failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		os.Exit(1)
	}
}

func newAdvisor(cfg *config.Config, parser services.DocumentParserService, logger *zap.Logger) (services.AdvisorService, error) {
	generator, err := services.NewTextGenerator(context.Background(), cfg.LLM.Provider, cfg.LLM.APIKey(), logger)
	if err != nil {
		return nil, err
	}

	schemas, err := services.NewResponseSchemas()
	if err != nil {
		return nil, err
	}

	completion := services.NewCompletionClient(generator, services.RetryPolicy{
		MaxAttempts:    cfg.LLM.RetryMaxAttempts,
		Delay:          cfg.LLM.RetryDelay,
		AttemptTimeout: cfg.LLM.RequestTimeout,
	}, cfg.LLM.RateLimit, logger)

	return services.NewAdvisorService(parser, completion, schemas, services.AdvisorOptions{
		Model: cfg.LLM.Model,
		Resume: services.SamplingParams{
			MaxTokens:   cfg.Resume.MaxTokens,
			Temperature: cfg.Resume.Temperature,
		},
	}, logger), nil
}
