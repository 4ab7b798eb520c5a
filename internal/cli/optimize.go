package cli

import (
	"context"
	"fmt"

	"cvoptimera/internal/common"
	"cvoptimera/internal/optimizer"
	"cvoptimera/internal/parser"
	"cvoptimera/internal/types"

	"github.com/spf13/cobra"
)

var optimizeCmd = &cobra.Command{
	Use:   "optimize [resume-file] [job-description-file]",
	Short: "Optimize a resume for a specific job description",
	Long: `Optimize your resume for a specific job description.
The command takes two arguments: the path to your resume file and the path
to the job description file. The resume is parsed from free text (or PDF)
into structured form before optimization. When an AI API key is configured
the optimization is AI assisted; otherwise a deterministic rewrite is used.`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if optimizeConfig.OutputFormat == "" {
			optimizeConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(optimizeConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runOptimize,
}

var optimizeConfig common.CommandConfig

func init() {
	optimizeCmd.Flags().StringVarP(&optimizeConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	optimizeCmd.Flags().StringVar(&optimizeConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	// Add completion for format flag
	_ = optimizeCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runOptimize(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())
	optimizeConfig.MaxFileSize = int64(cfg.App.MaxFileSize)

	// Create optimization service for the optimize operation
	optimizeAIConfig := cfg.GetOptimizeConfig()
	service, err := optimizer.NewService(&optimizeAIConfig, logger)
	if err != nil {
		return fmt.Errorf("failed to create optimization service: %w", err)
	}

	createInput := func(contents []string) (types.OptimizeResumeInput, error) {
		if len(contents) != 2 {
			return types.OptimizeResumeInput{}, fmt.Errorf("expected 2 file paths, got %d", len(contents))
		}
		return types.OptimizeResumeInput{
			Resume:         parser.Parse(contents[0]),
			JobDescription: contents[1],
		}, nil
	}

	logDetails := func(input types.OptimizeResumeInput, cfg common.CommandConfig) {
		logger.Info("Starting resume optimization",
			"experience_entries", len(input.Resume.Experience),
			"skills", len(input.Resume.Skills),
			"job_chars", len(input.JobDescription),
			"fallback_mode", service.FallbackMode(),
			"output_format", cfg.OutputFormat)
	}

	optimizeOperation := func(ctx context.Context, input types.OptimizeResumeInput) (types.OptimizeResumeOutput, *optimizer.TokenUsage, error) {
		return service.Optimize(ctx, input)
	}

	err = common.RunCommand(
		cmd.Context(),
		logger,
		optimizeConfig,
		args,
		createInput,
		optimizeOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to optimize resume: %w", err)
	}
	logger.Info("Resume optimization completed successfully")
	return nil
}
