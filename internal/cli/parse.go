package cli

import (
	"context"
	"fmt"

	"fairhire360/internal/common"
	"fairhire360/internal/parser"
	"fairhire360/internal/types"

	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [resume-file]",
	Short: "Parse a resume document into structured fields",
	Long: `Parse a resume document (.txt, .md, .pdf or .docx) into structured
fields: candidate name, contact details, skills, education, experience,
projects and languages, plus a parse confidence score.`,
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

type parseInput struct {
	fileName string
	data     []byte
}

func runParse(cmd *cobra.Command, args []string) error {
	logger := getLoggerFromContext(cmd.Context())

	createInput := func(contents [][]byte) (parseInput, error) {
		if len(contents) != 1 {
			return parseInput{}, fmt.Errorf("expected 1 file, got %d", len(contents))
		}
		return parseInput{fileName: args[0], data: contents[0]}, nil
	}

	logDetails := func(input parseInput, cfg common.CommandConfig) {
		logger.Info("Starting resume parsing",
			"file", input.fileName,
			"bytes", len(input.data),
			"output_format", cfg.OutputFormat)
	}

	parseOperation := func(ctx context.Context, input parseInput) (types.ParsedResume, error) {
		parsed, err := parser.ParseDocument(input.fileName, input.data)
		if err != nil {
			return types.ParsedResume{}, err
		}
		return *parsed, nil
	}

	err := common.RunFileCommand(
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
