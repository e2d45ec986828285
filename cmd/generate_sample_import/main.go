package main

import (
	"commission-central/internal/repository"
	"commission-central/internal/service"
	"commission-central/internal/utils"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		outputPath string
		blank      bool
	)

	cmd := &cobra.Command{
		Use:   "generate_sample_import",
		Short: "Write an example commission import workbook",
		Long: "Writes a workbook in the layout the import dialog accepts, " +
			"pre-filled with the sample team unless --blank is given.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := utils.GetLogger()

			data, err := repository.NewSampleCommissionRepository().LoadCommissionData(context.Background())
			if err != nil {
				return err
			}
			members := data.TeamMembers
			if blank {
				members = nil
			}

			if dir := filepath.Dir(outputPath); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("failed to create output directory: %w", err)
				}
			}

			if err := service.NewExcelService().SaveImportTemplate(members, outputPath); err != nil {
				log.WithError(err).Error("Failed to write sample import")
				return err
			}

			log.WithField("path", outputPath).Infof("Sample import created with %d rows", len(members))
			return nil
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", filepath.Join("storage", "samples", "commission_import.xlsx"), "output file path")
	cmd.Flags().BoolVar(&blank, "blank", false, "write headers and instructions only")

	return cmd
}
