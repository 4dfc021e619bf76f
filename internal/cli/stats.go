package cli

import (
	"fmt"

	"fairhire360/internal/common"
	"fairhire360/internal/engine"
	"fairhire360/internal/store"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show dashboard statistics over processed candidates",
	Long: `Derive dashboard statistics from the candidate store: candidates
analyzed, fairness score, number of bias corrections and the average
score change. Use --jd to restrict the stats to one job description.`,
	Args: cobra.NoArgs,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		if statsConfig.OutputFormat == "" {
			statsConfig.OutputFormat = cfg.App.DefaultFormat
		}
		return common.ValidateOutputFormat(statsConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runStats,
}

var (
	statsConfig common.CommandConfig
	statsJDID   string
)

func init() {
	statsCmd.Flags().StringVarP(&statsConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	statsCmd.Flags().StringVar(&statsConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	statsCmd.Flags().StringVar(&statsJDID, "jd", "", "Restrict stats to one job description id")
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := getConfigFromContext(ctx)
	logger := getLoggerFromContext(ctx)

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			logger.LogError(closeErr, "Failed to close candidate store")
		}
	}()

	candidates, err := st.ListCandidates(ctx, statsJDID, "")
	if err != nil {
		return fmt.Errorf("failed to load candidates: %w", err)
	}

	stats := engine.CalculateStats(candidates)

	outputHandler := common.NewOutputHandler(logger)
	return outputHandler.HandleOutput(stats, statsConfig)
}
