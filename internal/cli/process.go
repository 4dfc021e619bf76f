package cli

import (
	"fmt"

	"fairhire360/internal/common"
	"fairhire360/internal/engine"
	"fairhire360/internal/parser"
	"fairhire360/internal/store"
	"fairhire360/internal/types"

	"github.com/spf13/cobra"
)

var processCmd = &cobra.Command{
	Use:   "process [jd-file]",
	Short: "Run the bias-aware scoring pipeline for candidates",
	Long: `Process candidates against a job description: detect bias factors,
correct the score, derive per-modality breakdowns, explanations and
counterfactual scenarios, and persist the results in the candidate store.

With --samples the built-in demo roster of six candidates is processed.
Otherwise --name is required; --resume attaches a resume document and
--modalities selects the input channels (resume, video, audio).

The job description file is JSON with roleTitle, requiredSkills,
experienceRange, languageRequirements and skillsWeight fields.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if processConfig.OutputFormat == "" {
			processConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(processConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runProcess,
}

var (
	processConfig     common.CommandConfig
	processSamples    bool
	processName       string
	processPosition   string
	processModalities []string
	processResumeFile string
)

func init() {
	processCmd.Flags().StringVarP(&processConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	processCmd.Flags().StringVar(&processConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	processCmd.Flags().BoolVar(&processSamples, "samples", false, "Process the built-in demo roster")
	processCmd.Flags().StringVar(&processName, "name", "", "Candidate name")
	processCmd.Flags().StringVar(&processPosition, "position", "", "Candidate's stated position")
	processCmd.Flags().StringSliceVar(&processModalities, "modalities", []string{"resume"}, "Input channels: resume, video, audio")
	processCmd.Flags().StringVar(&processResumeFile, "resume", "", "Resume document to parse and attach")

	_ = processCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runProcess(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := getConfigFromContext(ctx)
	logger := getLoggerFromContext(ctx)

	fileProcessor := common.NewFileProcessor(logger)
	outputHandler := common.NewOutputHandler(logger)

	jdData, err := fileProcessor.ReadFile(args[0])
	if err != nil {
		return err
	}
	jd, err := loadJDFromJSON(jdData)
	if err != nil {
		return err
	}

	inputs, err := buildProcessInputs(fileProcessor)
	if err != nil {
		return err
	}

	eng, err := newEngineFromConfig(cfg)
	if err != nil {
		return err
	}

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			logger.LogError(closeErr, "Failed to close candidate store")
		}
	}()

	if err := st.SaveJD(ctx, *jd); err != nil {
		return fmt.Errorf("failed to save job description: %w", err)
	}

	logger.Info("Starting candidate processing",
		"jd_id", jd.ID,
		"candidates", len(inputs),
		"output_format", processConfig.OutputFormat)

	processed := make([]types.Candidate, 0, len(inputs))
	for i := range inputs {
		inputs[i].EnsureMatch(jd)
		slot, err := st.CandidateCount(ctx, jd.ID)
		if err != nil {
			return err
		}

		c := eng.ProcessCandidate(&inputs[i], jd, slot)
		if err := st.SaveCandidate(ctx, *c, slot); err != nil {
			return fmt.Errorf("failed to save candidate %q: %w", c.Name, err)
		}
		processed = append(processed, *c)
	}

	logger.Info("Candidate processing completed successfully",
		"jd_id", jd.ID,
		"processed", len(processed))

	if len(processed) == 1 {
		return outputHandler.HandleOutput(processed[0], processConfig)
	}
	for _, c := range processed {
		if err := outputHandler.HandleOutput(c, processConfig); err != nil {
			return err
		}
	}
	return nil
}

// buildProcessInputs expands the flags into engine inputs
func buildProcessInputs(fileProcessor *common.FileProcessor) ([]engine.CandidateInput, error) {
	if processSamples {
		return engine.SampleCandidates(), nil
	}

	if processName == "" {
		return nil, fmt.Errorf("--name is required unless --samples is set")
	}

	modalities := make([]types.Modality, 0, len(processModalities))
	for _, m := range processModalities {
		switch mod := types.Modality(m); mod {
		case types.ModalityResume, types.ModalityVideo, types.ModalityAudio:
			modalities = append(modalities, mod)
		default:
			return nil, fmt.Errorf("unknown modality %q (must be resume, video or audio)", m)
		}
	}

	in := engine.CandidateInput{
		Name:       processName,
		Position:   processPosition,
		Modalities: modalities,
	}

	if processResumeFile != "" {
		data, err := fileProcessor.ReadFile(processResumeFile)
		if err != nil {
			return nil, err
		}
		parsed, err := parser.ParseDocument(processResumeFile, data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse resume: %w", err)
		}
		in.ParsedResume = parsed
		in.ResumeFileName = processResumeFile
	}

	return []engine.CandidateInput{in}, nil
}
