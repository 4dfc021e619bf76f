package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fairhire360/internal/common"
	"fairhire360/internal/engine"
	"fairhire360/internal/parser"
	"fairhire360/internal/types"

	"github.com/spf13/cobra"
)

var matchCmd = &cobra.Command{
	Use:   "match [resume-file] [jd-file]",
	Short: "Match a resume against a job description",
	Long: `Match a parsed resume against a job description and report the
overall score, matched and missing skills, partial matches and the
experience classification.

The job description file is JSON with roleTitle, requiredSkills,
experienceRange, languageRequirements and skillsWeight fields.`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if matchConfig.OutputFormat == "" {
			matchConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(matchConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runMatch,
}

var matchConfig common.CommandConfig

func init() {
	matchCmd.Flags().StringVarP(&matchConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	matchCmd.Flags().StringVar(&matchConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	_ = matchCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

type matchInput struct {
	resumeFile string
	resumeData []byte
	jdData     []byte
}

func runMatch(cmd *cobra.Command, args []string) error {
	logger := getLoggerFromContext(cmd.Context())

	createInput := func(contents [][]byte) (matchInput, error) {
		if len(contents) != 2 {
			return matchInput{}, fmt.Errorf("expected 2 files, got %d", len(contents))
		}
		return matchInput{resumeFile: args[0], resumeData: contents[0], jdData: contents[1]}, nil
	}

	logDetails := func(input matchInput, cfg common.CommandConfig) {
		logger.Info("Starting resume matching",
			"resume_file", input.resumeFile,
			"output_format", cfg.OutputFormat)
	}

	matchOperation := func(ctx context.Context, input matchInput) (types.JDMatchResult, error) {
		resume, err := parser.ParseDocument(input.resumeFile, input.resumeData)
		if err != nil {
			return types.JDMatchResult{}, fmt.Errorf("failed to parse resume: %w", err)
		}

		jd, err := loadJDFromJSON(input.jdData)
		if err != nil {
			return types.JDMatchResult{}, err
		}

		return *parser.MatchResumeToJD(resume, jd), nil
	}

	err := common.RunFileCommand(
		cmd.Context(),
		logger,
		matchConfig,
		args,
		createInput,
		matchOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to match resume: %w", err)
	}
	logger.Info("Resume matching completed successfully")
	return nil
}

// loadJDFromJSON builds a validated job description from a JSON input file
func loadJDFromJSON(data []byte) (*types.JobDescription, error) {
	var input engine.JobDescriptionInput
	if err := json.Unmarshal(data, &input); err != nil {
		return nil, fmt.Errorf("failed to parse job description JSON: %w", err)
	}
	jd, err := engine.NewJobDescription(&input, time.Now())
	if err != nil {
		return nil, fmt.Errorf("invalid job description: %w", err)
	}
	return jd, nil
}
