package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/docwriter/internal/config"
	"github.com/jonathan/docwriter/internal/enhance"
	"github.com/jonathan/docwriter/internal/export"
	"github.com/jonathan/docwriter/internal/record"
	"github.com/jonathan/docwriter/internal/report"
	"github.com/jonathan/docwriter/internal/template"
)

var (
	generateCSVPath      string
	generateTemplateID   string
	generateFormat       string
	generateOutDir       string
	generateStakeholders string
	generateInstructions string
	generateUseAI        bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate report documents from a CSV file",
	Long: `Generate one report per CSV row against a template and export each as a
document, without starting the HTTP server.`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&generateCSVPath, "csv", "", "Path to the application data CSV file")
	generateCmd.Flags().StringVarP(&generateTemplateID, "template", "t", "application_profile", "Template id to generate from")
	generateCmd.Flags().StringVarP(&generateFormat, "format", "f", export.FormatPDF, "Export format (pdf or docx)")
	generateCmd.Flags().StringVarP(&generateOutDir, "out", "o", ".", "Directory to write documents to")
	generateCmd.Flags().StringVar(&generateStakeholders, "stakeholders", "", "Comma separated stakeholder audience")
	generateCmd.Flags().StringVar(&generateInstructions, "instructions", "", "Custom instructions forwarded to AI enhancement")
	generateCmd.Flags().BoolVar(&generateUseAI, "ai", false, "Enhance section content with AI (requires an API key)")
	_ = generateCmd.MarkFlagRequired("csv")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := config.InitLogger(cfg.Log); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger := zap.L()
	defer func() { _ = logger.Sync() }()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	file, err := os.Open(generateCSVPath)
	if err != nil {
		return fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	records, err := record.ParseCSV(file)
	if err != nil {
		return fmt.Errorf("failed to parse CSV: %w", err)
	}
	if len(records) == 0 {
		return fmt.Errorf("no valid application data found in %s", generateCSVPath)
	}

	templates, err := template.NewStore(cfg.Server.TemplateDir)
	if err != nil {
		return fmt.Errorf("failed to open template store: %w", err)
	}
	tmpl, err := templates.Load(generateTemplateID)
	if err != nil {
		return fmt.Errorf("failed to load template %q: %w", generateTemplateID, err)
	}

	var generationEnhancer report.Enhancer
	if generateUseAI {
		if cfg.Gemini.APIKey == "" {
			return fmt.Errorf("--ai requires a Gemini API key in the configuration")
		}
		capability, err := enhance.NewGeminiCapability(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			return fmt.Errorf("failed to create text generation client: %w", err)
		}
		defer func() { _ = capability.Close() }()
		generationEnhancer = enhance.NewEnhancer(capability, cfg.Enhance.Timeout(), logger)
	}

	var stakeholders []string
	for _, part := range strings.Split(generateStakeholders, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			stakeholders = append(stakeholders, trimmed)
		}
	}

	assembler := report.NewAssembler(generationEnhancer, logger)
	result := assembler.AssembleBatch(ctx, tmpl, records, report.AssembleOptions{
		Stakeholders:       stakeholders,
		CustomInstructions: generateInstructions,
	})
	for _, assembleErr := range result.Errors {
		logger.Warn("report skipped", zap.Error(assembleErr))
	}
	if len(result.Reports) == 0 {
		return fmt.Errorf("no reports could be generated from %s", generateCSVPath)
	}

	if err := os.MkdirAll(generateOutDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	exporter := export.NewExporter(cfg.Export.ChromeTimeout(), cfg.Export.DefaultLogoPath, logger)
	opts := export.Options{
		Format:             generateFormat,
		Stakeholders:       stakeholders,
		CustomInstructions: generateInstructions,
	}

	for _, rep := range result.Reports {
		data, err := exporter.Export(ctx, rep, opts)
		if err != nil {
			return fmt.Errorf("failed to export %q: %w", rep.ApplicationName, err)
		}

		path := filepath.Join(generateOutDir, outputFilename(rep.ApplicationName, generateFormat))
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		fmt.Printf("Wrote %s (%d bytes)\n", path, len(data))
	}

	fmt.Printf("Generated %d of %d reports\n", len(result.Reports), len(records))
	return nil
}

func outputFilename(applicationName, format string) string {
	var b strings.Builder
	for _, r := range applicationName {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	name := b.String()
	if name == "" {
		name = "report"
	}
	return name + "_Report." + format
}
