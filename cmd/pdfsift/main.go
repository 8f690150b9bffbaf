package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdfsift/pdfsift/internal/config"
	"github.com/pdfsift/pdfsift/internal/mcp"
	"github.com/pdfsift/pdfsift/internal/output"
	"github.com/pdfsift/pdfsift/internal/pattern"
	"github.com/pdfsift/pdfsift/internal/reconstruct"
	"github.com/pdfsift/pdfsift/internal/scraper"
	"github.com/pdfsift/pdfsift/internal/source"
)

var (
	version   = "dev"     // This will be set by build flags
	buildTime = "unknown" // This will be set by build flags
	gitCommit = "unknown" // This will be set by build flags
)

func main() {
	for _, arg := range os.Args[1:] {
		if arg == "-version" || arg == "--version" {
			printVersion()
			return
		}
	}

	cfg, files, err := config.LoadFromFlags()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.SetOutput(os.Stderr)

	if version != "dev" {
		cfg.Version = version
	}

	if cfg.Verbose {
		log.Printf("Starting with configuration: %s", cfg.String())
	}

	os.Exit(run(cfg, files))
}

func run(cfg *config.Config, files []string) int {
	provider, err := source.NewProvider(source.Config{
		Provider:     cfg.Source,
		Reconstruct:  reconstructConfig(cfg),
		SmartSpacing: cfg.SmartSpacing,
		MaxFileSize:  cfg.MaxFileSize,
	})
	if err != nil {
		log.Printf("Error: %v", err)
		return 1
	}

	service := scraper.NewService(provider, cfg.Verbose)

	if cfg.IsServeMode() {
		server, err := mcp.NewServer(cfg, service)
		if err != nil {
			log.Printf("Failed to create MCP server: %v", err)
			return 1
		}
		if err := server.Run(context.Background()); err != nil {
			log.Printf("Server error: %v", err)
			return 1
		}
		return 0
	}

	paths := scraper.ExpandPaths(files)
	if len(paths) == 0 {
		log.Printf("Error: no PDF files found")
		return 1
	}
	if cfg.Verbose {
		log.Printf("Found %d PDF files to process", len(paths))
	}

	if cfg.TextDumpMode() {
		return runDump(cfg, service, paths)
	}
	return runScrape(cfg, service, paths)
}

// reconstructConfig maps CLI spacing options onto the reconstructor's
// tagged threshold configuration. Ratio mode wins unless a fixed distance
// was explicitly set.
func reconstructConfig(cfg *config.Config) reconstruct.Config {
	var thresholds reconstruct.Thresholds
	if cfg.UseAbsoluteSpacing() {
		thresholds = reconstruct.AbsoluteThresholds(cfg.AddSpaceDistance, cfg.MinSpaceDistance)
	} else {
		thresholds = reconstruct.RatioThresholds(cfg.AddSpaceRatio, cfg.MinSpaceRatio)
	}
	return reconstruct.Config{
		Thresholds:    thresholds,
		LineTolerance: cfg.LineTolerance,
	}
}

func runScrape(cfg *config.Config, service *scraper.Service, paths []string) int {
	rules, err := loadRules(cfg)
	if err != nil {
		log.Printf("Error: %v", err)
		return 1
	}

	writer := output.NewTSVWriter()

	if cfg.SplitOutput {
		processed := 0
		for _, path := range paths {
			result, err := service.ScrapeBatch([]string{path}, rules, cfg.Headers)
			if err != nil {
				log.Printf("Error: %v", err)
				return 1
			}
			if len(result.Rows) == 0 {
				continue
			}
			outFile := splitOutputName(path)
			if err := writer.Write(outFile, result.Headers, result.Rows); err != nil {
				log.Printf("Error: %v", err)
				continue
			}
			if cfg.Verbose {
				log.Printf("  Wrote %d rows to %s", len(result.Rows), outFile)
			}
			processed++
		}
		if processed == 0 {
			log.Printf("No files could be processed")
			return 1
		}
		return 0
	}

	result, err := service.ScrapeBatch(paths, rules, cfg.Headers)
	if err != nil {
		log.Printf("Error: %v", err)
		return 1
	}
	if len(result.Rows) == 0 {
		log.Printf("No data extracted from any files")
		return 1
	}
	if err := writer.Write(cfg.Output, result.Headers, result.Rows); err != nil {
		log.Printf("Error: %v", err)
		return 1
	}
	if cfg.Verbose {
		log.Printf("Pattern extraction completed: %d rows, %d failed files", len(result.Rows), len(result.Failed))
		log.Printf("Results written to: %s", cfg.Output)
	}
	return 0
}

func runDump(cfg *config.Config, service *scraper.Service, paths []string) int {
	writer := output.NewTSVWriter()

	if cfg.SplitOutput {
		processed := 0
		for _, path := range paths {
			result, err := service.DumpBatch([]string{path})
			if err != nil {
				log.Printf("Error: %v", err)
				return 1
			}
			if len(result.Rows) == 0 {
				continue
			}
			outFile := splitOutputName(path)
			if err := writer.Write(outFile, result.Headers, result.Rows); err != nil {
				log.Printf("Error: %v", err)
				continue
			}
			if cfg.Verbose {
				log.Printf("  Wrote %d pages to %s", len(result.Rows), outFile)
			}
			processed++
		}
		if processed == 0 {
			log.Printf("No files could be processed")
			return 1
		}
		return 0
	}

	result, err := service.DumpBatch(paths)
	if err != nil {
		log.Printf("Error: %v", err)
		return 1
	}
	if len(result.Rows) == 0 {
		log.Printf("No text could be extracted from any files")
		return 1
	}
	if err := writer.Write(cfg.Output, result.Headers, result.Rows); err != nil {
		log.Printf("Error: %v", err)
		return 1
	}
	if cfg.Verbose {
		log.Printf("Text dump completed: %d pages extracted", len(result.Rows))
		log.Printf("Results written to: %s", cfg.Output)
	}
	return 0
}

// loadRules reads rules from --pattern flags or the patterns file.
// Malformed file lines are reported and skipped; inline patterns must all
// parse.
func loadRules(cfg *config.Config) ([]pattern.Rule, error) {
	if len(cfg.Patterns) > 0 {
		return pattern.ParseAll(cfg.Patterns)
	}

	rules, parseErrs, err := pattern.ParseFile(cfg.PatternsFile)
	if err != nil {
		return nil, err
	}
	for _, pe := range parseErrs {
		log.Printf("Error in patterns file %s: %v", cfg.PatternsFile, pe)
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("no valid patterns in %s", cfg.PatternsFile)
	}
	return rules, nil
}

// splitOutputName maps an input PDF path to its per-file TSV name in the
// current directory: dir/invoice.pdf -> invoice.tsv
func splitOutputName(pdfPath string) string {
	base := filepath.Base(pdfPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".tsv"
}

func printVersion() {
	fmt.Printf("pdfsift %s\n", version)
	fmt.Printf("  build time: %s\n", buildTime)
	fmt.Printf("  git commit: %s\n", gitCommit)
}
