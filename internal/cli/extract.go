package cli

import (
	"fmt"
	"os"

	"cvoptimera/internal/common"
	"cvoptimera/internal/extractor"

	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract [job-url]",
	Short: "Extract job posting content from a URL",
	Long: `Extract the text content of a job posting from a public listing URL.
The command takes one argument: the job posting URL. The page is fetched
through the configured relay chain, cleaned of HTML chrome and checked for
actual job content. When an AI API key is configured the extracted text is
additionally refined.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if extractConfig.OutputFormat == "" {
			extractConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(extractConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runExtract,
}

var extractConfig common.CommandConfig

func init() {
	extractCmd.Flags().StringVarP(&extractConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	extractCmd.Flags().StringVar(&extractConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	// Add completion for format flag
	_ = extractCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	// Create extraction service with the refinement model configuration
	extractAIConfig := cfg.GetExtractConfig()
	service, err := extractor.NewService(&cfg.Extractor, &extractAIConfig, logger)
	if err != nil {
		return fmt.Errorf("failed to create extraction service: %w", err)
	}
	defer func() {
		if err := service.Close(); err != nil {
			logger.Warn("Failed to close extraction service", "error", err.Error())
		}
	}()

	jobURL := args[0]
	logger.Info("Starting job content extraction",
		"url", jobURL,
		"relay_count", len(cfg.Extractor.Relays),
		"fallback_mode", service.FallbackMode(),
		"output_format", extractConfig.OutputFormat)

	result, tokenUsage, err := service.Extract(cmd.Context(), jobURL)
	if err != nil {
		return fmt.Errorf("failed to extract job content: %w", err)
	}

	// Report token usage
	if tokenUsage != nil {
		if logger != nil {
			logger.Info("AI token usage", "input_tokens", tokenUsage.InputTokens, "output_tokens", tokenUsage.OutputTokens, "total_tokens", tokenUsage.TotalTokens)
		} else {
			fmt.Fprintf(os.Stderr, "AI token usage: input=%d, output=%d, total=%d\n", tokenUsage.InputTokens, tokenUsage.OutputTokens, tokenUsage.TotalTokens)
		}
	}

	outputHandler := common.NewOutputHandler(logger)
	if err := outputHandler.HandleOutput(result, extractConfig); err != nil {
		return err
	}

	logger.Info("Job content extraction completed successfully",
		"source", result.Source,
		"content_chars", len(result.Content))
	return nil
}
