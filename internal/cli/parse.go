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

var parseCmd = &cobra.Command{
	Use:   "parse [resume-file]",
	Short: "Parse free-text resume content into structured data",
	Long: `Parse a free-text resume file into structured resume data.
The command takes one argument: the path to the resume file (plain text or
PDF). Parsing is heuristic and never calls AI; fields that cannot be
recovered from the text are left empty.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if parseConfig.OutputFormat == "" {
			parseConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(parseConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runParse,
}

var parseConfig common.CommandConfig

func init() {
	parseCmd.Flags().StringVarP(&parseConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	parseCmd.Flags().StringVar(&parseConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	// Add completion for format flag
	_ = parseCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())
	parseConfig.MaxFileSize = int64(cfg.App.MaxFileSize)

	createInput := func(contents []string) (types.ParseResumeInput, error) {
		if len(contents) != 1 {
			return types.ParseResumeInput{}, fmt.Errorf("expected 1 file path, got %d", len(contents))
		}
		return types.ParseResumeInput{ResumeText: contents[0]}, nil
	}

	logDetails := func(input types.ParseResumeInput, cfg common.CommandConfig) {
		logger.Info("Starting resume parsing",
			"resume_chars", len(input.ResumeText),
			"output_format", cfg.OutputFormat)
	}

	parseOperation := func(ctx context.Context, input types.ParseResumeInput) (types.ResumeData, *optimizer.TokenUsage, error) {
		return parser.Parse(input.ResumeText), nil, nil
	}

	err := common.RunCommand(
		cmd.Context(),
		logger,
		parseConfig,
		args,
		createInput,
		parseOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to parse resume: %w", err)
	}
	logger.Info("Resume parsing completed successfully")
	return nil
}
