package main

import (
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/mech-api/internal/errors"
	"github.com/KirkDiggler/mech-api/internal/repositories/pilots"
)

var doctorRepair bool

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Scan redis pilot records for broken invariants",
	Long: `doctor walks every pilot:* key, decodes it and checks skill, wound and XP
invariants plus index membership. With --repair it fixes index sets; damaged
documents are only reported.`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorRepair, "repair", false, "fix index membership problems")
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	client, err := application.redisClient(cmd.Context())
	if err != nil {
		return err
	}

	out, err := pilots.Diagnose(cmd.Context(), client, pilots.DiagnoseInput{Repair: doctorRepair})
	if err != nil {
		return report(cmd, "", nil, err)
	}
	if err := report(cmd, "", out, nil); err != nil {
		return err
	}

	for _, issue := range out.Issues {
		if !issue.Repaired {
			return errors.FailedPreconditionf("%d pilot record issues found", len(out.Issues))
		}
	}
	return nil
}
