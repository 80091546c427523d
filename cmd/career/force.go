package main

import (
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/mech-api/internal/entities"
	"github.com/KirkDiggler/mech-api/internal/repositories/forces"
)

// Forces are normally written by the force builder; these commands let an
// operator seed or inspect the stats encounters snapshot.
var forceCmd = &cobra.Command{
	Use:   "force",
	Short: "Inspect and seed force stats",
}

var (
	forceName    string
	forceBV      int
	forceUnits   int
	forceTonnage int
)

func init() {
	save := &cobra.Command{
		Use:   "save <force-id>",
		Short: "Create or replace a force",
		Args:  cobra.ExactArgs(1),
		RunE:  runForceSave,
	}
	save.Flags().StringVar(&forceName, "name", "", "force name")
	save.Flags().IntVar(&forceBV, "bv", 0, "total battle value")
	save.Flags().IntVar(&forceUnits, "units", 0, "assigned units")
	save.Flags().IntVar(&forceTonnage, "tonnage", 0, "total tonnage")
	_ = save.MarkFlagRequired("name")

	forceCmd.AddCommand(
		save,
		&cobra.Command{
			Use:   "get <force-id>",
			Short: "Show a force",
			Args:  cobra.ExactArgs(1),
			RunE:  runForceGet,
		},
		&cobra.Command{
			Use:   "list",
			Short: "List forces",
			Args:  cobra.NoArgs,
			RunE:  runForceList,
		},
	)
}

func runForceSave(cmd *cobra.Command, args []string) error {
	repo, err := application.forceRepo(cmd.Context())
	if err != nil {
		return err
	}

	out, err := repo.Save(cmd.Context(), forces.SaveInput{Force: &entities.Force{
		ID:   args[0],
		Name: forceName,
		Stats: entities.ForceStats{
			TotalBV:       forceBV,
			AssignedUnits: forceUnits,
			TotalTonnage:  forceTonnage,
		},
	}})
	if err != nil {
		return report(cmd, args[0], nil, err)
	}
	return report(cmd, args[0], out.Force, nil)
}

func runForceGet(cmd *cobra.Command, args []string) error {
	repo, err := application.forceRepo(cmd.Context())
	if err != nil {
		return err
	}

	out, err := repo.Get(cmd.Context(), forces.GetInput{ID: args[0]})
	if err != nil {
		return report(cmd, args[0], nil, err)
	}
	return report(cmd, args[0], out.Force, nil)
}

func runForceList(cmd *cobra.Command, _ []string) error {
	repo, err := application.forceRepo(cmd.Context())
	if err != nil {
		return err
	}

	out, err := repo.List(cmd.Context(), forces.ListInput{})
	if err != nil {
		return report(cmd, "", nil, err)
	}
	return report(cmd, "", out.Forces, nil)
}
