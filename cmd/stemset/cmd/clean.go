package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/blackmindsinstem/stemset"
	"github.com/blackmindsinstem/stemset/pkg/classify"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Deduplicate the raw program tables and write the cleaned dataset",
	Long: `Clean loads every CSV under the data directories, applies any human
review decision files, resolves duplicates, and writes the cleaned table
plus removal, review, and audit artifacts to the output directory.`,
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)

	cleanCmd.Flags().StringSlice("data-dir", []string{"data"}, "directories containing source CSV files")
	cleanCmd.Flags().String("out", "output", "directory for cleaned data and reports")
	cleanCmd.Flags().String("vocab", "", "keyword vocabulary YAML (default: embedded)")
	cleanCmd.Flags().String("non-k12-decisions", "", "reviewed non-K-12 flags CSV (KEEP rows retained)")
	cleanCmd.Flags().String("educator-decisions", "", "educator-resource flags CSV (all rows removed)")

	defaults := classify.DefaultThresholds()
	cleanCmd.Flags().Float64("exact-name", defaults.ExactName, "name similarity floor for exact duplicates")
	cleanCmd.Flags().Float64("exact-description", defaults.ExactDescription, "description similarity floor for exact duplicates")
	cleanCmd.Flags().Float64("ambiguous-name", defaults.AmbiguousName, "name similarity floor for review flagging")

	cobra.CheckErr(viper.BindPFlags(cleanCmd.Flags()))
}

func runClean(cmd *cobra.Command, _ []string) error {
	opts := []stemset.Option{
		stemset.WithDataDirs(viper.GetStringSlice("data-dir")...),
		stemset.WithOutputDir(viper.GetString("out")),
		stemset.WithThresholds(classify.Thresholds{
			ExactName:        viper.GetFloat64("exact-name"),
			ExactDescription: viper.GetFloat64("exact-description"),
			AmbiguousName:    viper.GetFloat64("ambiguous-name"),
		}),
	}
	if path := viper.GetString("vocab"); path != "" {
		opts = append(opts, stemset.WithVocabularyFile(path))
	}
	if path := viper.GetString("non-k12-decisions"); path != "" {
		opts = append(opts, stemset.WithNonK12Decisions(path))
	}
	if path := viper.GetString("educator-decisions"); path != "" {
		opts = append(opts, stemset.WithEducatorDecisions(path))
	}

	pipeline, err := stemset.New(opts...)
	if err != nil {
		return err
	}
	_, err = pipeline.Run(cmd.Context())
	return err
}
