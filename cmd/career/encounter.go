package main

import (
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/mech-api/internal/entities"
	"github.com/KirkDiggler/mech-api/internal/orchestrators/encounter"
)

var encounterCmd = &cobra.Command{
	Use:   "encounter",
	Short: "Configure and launch encounters",
}

var (
	encounterName        string
	encounterDescription string
	encounterTemplate    string
	encounterStatus      string
	encounterRadius      int
	encounterTerrain     string
)

func init() {
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a draft encounter",
		Args:  cobra.NoArgs,
		RunE:  runEncounterCreate,
	}
	create.Flags().StringVar(&encounterName, "name", "", "encounter name")
	create.Flags().StringVar(&encounterDescription, "description", "", "description")
	create.Flags().StringVar(&encounterTemplate, "template", "", "duel, skirmish or battle")

	list := &cobra.Command{
		Use:   "list",
		Short: "List encounters",
		Args:  cobra.NoArgs,
		RunE:  runEncounterList,
	}
	list.Flags().StringVar(&encounterStatus, "status", "", "filter by draft, ready, launched or completed")

	update := &cobra.Command{
		Use:   "update <encounter-id>",
		Short: "Update name, description or map",
		Args:  cobra.ExactArgs(1),
		RunE:  runEncounterUpdate,
	}
	update.Flags().StringVar(&encounterName, "name", "", "encounter name")
	update.Flags().StringVar(&encounterDescription, "description", "", "description, empty clears it")
	update.Flags().IntVar(&encounterRadius, "radius", 0, "map radius in hexes")
	update.Flags().StringVar(&encounterTerrain, "terrain", "", "map terrain")

	clone := &cobra.Command{
		Use:   "clone <encounter-id>",
		Short: "Copy an encounter's configuration into a new draft",
		Args:  cobra.ExactArgs(1),
		RunE:  runEncounterClone,
	}
	clone.Flags().StringVar(&encounterName, "name", "", "name of the copy")
	_ = clone.MarkFlagRequired("name")

	encounterCmd.AddCommand(
		create,
		list,
		update,
		clone,
		&cobra.Command{
			Use:   "get <encounter-id>",
			Short: "Show an encounter",
			Args:  cobra.ExactArgs(1),
			RunE:  runEncounterGet,
		},
		&cobra.Command{
			Use:   "delete <encounter-id>",
			Short: "Delete an encounter that is not in play",
			Args:  cobra.ExactArgs(1),
			RunE:  runEncounterDelete,
		},
		&cobra.Command{
			Use:   "set-player <encounter-id> <force-id>",
			Short: "Assign the player force",
			Args:  cobra.ExactArgs(2),
			RunE:  runEncounterSetPlayer,
		},
		&cobra.Command{
			Use:   "set-opponent <encounter-id> <force-id>",
			Short: "Assign an explicit opponent force",
			Args:  cobra.ExactArgs(2),
			RunE:  runEncounterSetOpponent,
		},
		&cobra.Command{
			Use:   "clear-opponent <encounter-id>",
			Short: "Remove the opponent force",
			Args:  cobra.ExactArgs(1),
			RunE:  runEncounterClearOpponent,
		},
		&cobra.Command{
			Use:   "apply-template <encounter-id> <template>",
			Short: "Replace map and victory conditions with a scenario template",
			Args:  cobra.ExactArgs(2),
			RunE:  runEncounterApplyTemplate,
		},
		&cobra.Command{
			Use:   "validate <encounter-id>",
			Short: "List launch blockers and warnings",
			Args:  cobra.ExactArgs(1),
			RunE:  runEncounterValidate,
		},
		&cobra.Command{
			Use:   "launch <encounter-id>",
			Short: "Launch a ready encounter",
			Args:  cobra.ExactArgs(1),
			RunE:  runEncounterLaunch,
		},
		&cobra.Command{
			Use:   "complete <encounter-id>",
			Short: "Mark a launched encounter completed",
			Args:  cobra.ExactArgs(1),
			RunE:  runEncounterComplete,
		},
	)
}

func runEncounterCreate(cmd *cobra.Command, _ []string) error {
	svc, err := application.encounterService(cmd.Context())
	if err != nil {
		return err
	}

	out, err := svc.CreateEncounter(cmd.Context(), &encounter.CreateEncounterInput{
		Name:        encounterName,
		Description: encounterDescription,
		Template:    entities.ScenarioTemplateType(encounterTemplate),
	})
	if err != nil {
		return report(cmd, "", nil, err)
	}
	return report(cmd, out.Encounter.ID, out.Encounter, nil)
}

func runEncounterGet(cmd *cobra.Command, args []string) error {
	svc, err := application.encounterService(cmd.Context())
	if err != nil {
		return err
	}

	out, err := svc.GetEncounter(cmd.Context(), &encounter.GetEncounterInput{EncounterID: args[0]})
	if err != nil {
		return report(cmd, args[0], nil, err)
	}
	return report(cmd, args[0], out.Encounter, nil)
}

func runEncounterList(cmd *cobra.Command, _ []string) error {
	svc, err := application.encounterService(cmd.Context())
	if err != nil {
		return err
	}

	out, err := svc.ListEncounters(cmd.Context(), &encounter.ListEncountersInput{
		Status: entities.EncounterStatus(encounterStatus),
	})
	if err != nil {
		return report(cmd, "", nil, err)
	}
	return report(cmd, "", out.Encounters, nil)
}

func runEncounterUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	svc, err := application.encounterService(ctx)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	input := &encounter.UpdateEncounterInput{
		EncounterID: args[0],
		Description: stringPatch(cmd, "description", encounterDescription),
	}
	if flags.Changed("name") {
		input.Name = &encounterName
	}

	if flags.Changed("radius") || flags.Changed("terrain") {
		current, err := svc.GetEncounter(ctx, &encounter.GetEncounterInput{EncounterID: args[0]})
		if err != nil {
			return report(cmd, args[0], nil, err)
		}
		mapConfig := current.Encounter.MapConfig
		if flags.Changed("radius") {
			mapConfig.Radius = encounterRadius
		}
		if flags.Changed("terrain") {
			mapConfig.Terrain = entities.TerrainType(encounterTerrain)
		}
		input.MapConfig = &mapConfig
	}

	out, err := svc.UpdateEncounter(ctx, input)
	if err != nil {
		return report(cmd, args[0], nil, err)
	}
	return report(cmd, args[0], out.Encounter, nil)
}

func runEncounterDelete(cmd *cobra.Command, args []string) error {
	svc, err := application.encounterService(cmd.Context())
	if err != nil {
		return err
	}

	_, err = svc.DeleteEncounter(cmd.Context(), &encounter.DeleteEncounterInput{EncounterID: args[0]})
	return report(cmd, args[0], nil, err)
}

func runEncounterSetPlayer(cmd *cobra.Command, args []string) error {
	svc, err := application.encounterService(cmd.Context())
	if err != nil {
		return err
	}

	out, err := svc.SetPlayerForce(cmd.Context(), &encounter.SetForceInput{EncounterID: args[0], ForceID: args[1]})
	if err != nil {
		return report(cmd, args[0], nil, err)
	}
	return report(cmd, args[0], out.Encounter, nil)
}

func runEncounterSetOpponent(cmd *cobra.Command, args []string) error {
	svc, err := application.encounterService(cmd.Context())
	if err != nil {
		return err
	}

	out, err := svc.SetOpponentForce(cmd.Context(), &encounter.SetForceInput{EncounterID: args[0], ForceID: args[1]})
	if err != nil {
		return report(cmd, args[0], nil, err)
	}
	return report(cmd, args[0], out.Encounter, nil)
}

func runEncounterClearOpponent(cmd *cobra.Command, args []string) error {
	svc, err := application.encounterService(cmd.Context())
	if err != nil {
		return err
	}

	out, err := svc.ClearOpponentForce(cmd.Context(), &encounter.ClearOpponentForceInput{EncounterID: args[0]})
	if err != nil {
		return report(cmd, args[0], nil, err)
	}
	return report(cmd, args[0], out.Encounter, nil)
}

func runEncounterApplyTemplate(cmd *cobra.Command, args []string) error {
	svc, err := application.encounterService(cmd.Context())
	if err != nil {
		return err
	}

	out, err := svc.ApplyTemplate(cmd.Context(), &encounter.ApplyTemplateInput{
		EncounterID: args[0],
		Template:    entities.ScenarioTemplateType(args[1]),
	})
	if err != nil {
		return report(cmd, args[0], nil, err)
	}
	return report(cmd, args[0], out.Encounter, nil)
}

func runEncounterValidate(cmd *cobra.Command, args []string) error {
	svc, err := application.encounterService(cmd.Context())
	if err != nil {
		return err
	}

	out, err := svc.ValidateEncounter(cmd.Context(), &encounter.ValidateEncounterInput{EncounterID: args[0]})
	if err != nil {
		return report(cmd, args[0], nil, err)
	}
	return report(cmd, args[0], out, nil)
}

func runEncounterLaunch(cmd *cobra.Command, args []string) error {
	svc, err := application.encounterService(cmd.Context())
	if err != nil {
		return err
	}

	out, err := svc.LaunchEncounter(cmd.Context(), &encounter.LaunchEncounterInput{EncounterID: args[0]})
	if err != nil {
		return report(cmd, args[0], nil, err)
	}
	return report(cmd, args[0], out, nil)
}

func runEncounterComplete(cmd *cobra.Command, args []string) error {
	svc, err := application.encounterService(cmd.Context())
	if err != nil {
		return err
	}

	out, err := svc.CompleteEncounter(cmd.Context(), &encounter.CompleteEncounterInput{EncounterID: args[0]})
	if err != nil {
		return report(cmd, args[0], nil, err)
	}
	return report(cmd, args[0], out.Encounter, nil)
}

func runEncounterClone(cmd *cobra.Command, args []string) error {
	svc, err := application.encounterService(cmd.Context())
	if err != nil {
		return err
	}

	out, err := svc.CloneEncounter(cmd.Context(), &encounter.CloneEncounterInput{
		EncounterID: args[0],
		NewName:     encounterName,
	})
	if err != nil {
		return report(cmd, args[0], nil, err)
	}
	return report(cmd, out.Encounter.ID, out.Encounter, nil)
}
