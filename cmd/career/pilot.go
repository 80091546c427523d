package main

import (
	"github.com/spf13/cobra"

	"github.com/KirkDiggler/mech-api/internal/entities"
	"github.com/KirkDiggler/mech-api/internal/errors"
	"github.com/KirkDiggler/mech-api/internal/orchestrators/pilot"
	"github.com/KirkDiggler/mech-api/internal/pkg/patch"
)

var pilotCmd = &cobra.Command{
	Use:   "pilot",
	Short: "Manage career pilots",
}

var (
	pilotIdentity entities.Identity
	pilotGunnery  int
	pilotPiloting int
	newGunnery    int
	newPiloting   int
	pilotXP       int
	pilotRank     string
	pilotTemplate string
	pilotRandom   bool
	pilotStatus   string

	missionGame       string
	missionName       string
	missionOutcome    string
	missionKills      int
	missionFirstBlood bool
	missionHigherBV   bool

	killTarget     string
	killTargetName string
	killWeapon     string

	abilityGame string
)

func init() {
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a pilot from explicit skills, a template or random rolls",
		RunE:  runPilotCreate,
	}
	identityFlags(create)
	create.Flags().IntVar(&pilotGunnery, "gunnery", 4, "gunnery skill (lower is better)")
	create.Flags().IntVar(&pilotPiloting, "piloting", 5, "piloting skill (lower is better)")
	create.Flags().IntVar(&pilotXP, "xp", 0, "starting XP")
	create.Flags().StringVar(&pilotRank, "rank", "", "starting rank")
	create.Flags().StringVar(&pilotTemplate, "template", "", "green, regular, veteran or elite")
	create.Flags().BoolVar(&pilotRandom, "random", false, "roll skills instead of setting them")
	create.MarkFlagsMutuallyExclusive("template", "random")

	list := &cobra.Command{
		Use:   "list",
		Short: "List pilots",
		Args:  cobra.NoArgs,
		RunE:  runPilotList,
	}
	list.Flags().StringVar(&pilotStatus, "status", "", "filter by active, injured, mia or kia")

	update := &cobra.Command{
		Use:   "update <pilot-id>",
		Short: "Update a pilot's identity or skills",
		Args:  cobra.ExactArgs(1),
		RunE:  runPilotUpdate,
	}
	identityFlags(update)
	update.Flags().IntVar(&newGunnery, "gunnery", 0, "gunnery skill")
	update.Flags().IntVar(&newPiloting, "piloting", 0, "piloting skill")

	mission := &cobra.Command{
		Use:   "mission <pilot-id>",
		Short: "Record a completed mission and award XP",
		Args:  cobra.ExactArgs(1),
		RunE:  runPilotMission,
	}
	mission.Flags().StringVar(&missionGame, "game", "", "game session ID")
	mission.Flags().StringVar(&missionName, "name", "", "mission name")
	mission.Flags().StringVar(&missionOutcome, "outcome", "", "victory, defeat or draw")
	mission.Flags().IntVar(&missionKills, "kills", 0, "kills scored")
	mission.Flags().BoolVar(&missionFirstBlood, "first-blood", false, "scored the first kill")
	mission.Flags().BoolVar(&missionHigherBV, "higher-bv", false, "beat a higher-BV opponent")
	_ = mission.MarkFlagRequired("outcome")

	kill := &cobra.Command{
		Use:   "kill <pilot-id>",
		Short: "Record a kill",
		Args:  cobra.ExactArgs(1),
		RunE:  runPilotKill,
	}
	kill.Flags().StringVar(&killTarget, "target", "", "target unit ID")
	kill.Flags().StringVar(&killTargetName, "target-name", "", "target unit name")
	kill.Flags().StringVar(&killWeapon, "weapon", "", "weapon used")
	kill.Flags().StringVar(&missionGame, "game", "", "game session ID")
	_ = kill.MarkFlagRequired("target")

	grant := &cobra.Command{
		Use:   "grant-ability <pilot-id> <ability-id>",
		Short: "Grant a special pilot ability",
		Args:  cobra.ExactArgs(2),
		RunE:  runPilotGrant,
	}
	grant.Flags().StringVar(&abilityGame, "game", "", "game the ability was earned in")

	pilotCmd.AddCommand(
		create,
		list,
		update,
		mission,
		kill,
		grant,
		&cobra.Command{
			Use:   "get <pilot-id>",
			Short: "Show a pilot",
			Args:  cobra.ExactArgs(1),
			RunE:  runPilotGet,
		},
		&cobra.Command{
			Use:   "delete <pilot-id>",
			Short: "Delete a pilot",
			Args:  cobra.ExactArgs(1),
			RunE:  runPilotDelete,
		},
		&cobra.Command{
			Use:   "improve <pilot-id> <gunnery|piloting>",
			Short: "Spend XP to lower a skill by one",
			Args:  cobra.ExactArgs(2),
			RunE:  runPilotImprove,
		},
		&cobra.Command{
			Use:   "revoke-ability <pilot-id> <ability-id>",
			Short: "Remove a special pilot ability",
			Args:  cobra.ExactArgs(2),
			RunE:  runPilotRevoke,
		},
		&cobra.Command{
			Use:   "wound <pilot-id>",
			Short: "Apply one wound",
			Args:  cobra.ExactArgs(1),
			RunE:  runPilotWound,
		},
		&cobra.Command{
			Use:   "heal <pilot-id>",
			Short: "Heal all wounds",
			Args:  cobra.ExactArgs(1),
			RunE:  runPilotHeal,
		},
	)
}

func identityFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&pilotIdentity.Name, "name", "", "pilot name")
	cmd.Flags().StringVar(&pilotIdentity.Callsign, "callsign", "", "callsign")
	cmd.Flags().StringVar(&pilotIdentity.Affiliation, "affiliation", "", "faction or unit affiliation")
	cmd.Flags().StringVar(&pilotIdentity.Portrait, "portrait", "", "portrait URL")
	cmd.Flags().StringVar(&pilotIdentity.Background, "background", "", "background text")
}

func runPilotCreate(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	svc, err := application.pilotService(ctx)
	if err != nil {
		return err
	}

	var created *entities.Pilot
	switch {
	case pilotTemplate != "":
		var out *pilot.CreateFromTemplateOutput
		out, err = svc.CreateFromTemplate(ctx, &pilot.CreateFromTemplateInput{
			Level:    entities.SkillTemplate(pilotTemplate),
			Identity: pilotIdentity,
		})
		if out != nil {
			created = out.Pilot
		}
	case pilotRandom:
		var out *pilot.CreateRandomOutput
		out, err = svc.CreateRandom(ctx, &pilot.CreateRandomInput{Identity: pilotIdentity})
		if out != nil {
			created = out.Pilot
		}
	default:
		var out *pilot.CreatePilotOutput
		out, err = svc.CreatePilot(ctx, &pilot.CreatePilotInput{
			Identity:   pilotIdentity,
			Skills:     &entities.Skills{Gunnery: pilotGunnery, Piloting: pilotPiloting},
			StartingXP: pilotXP,
			Rank:       pilotRank,
		})
		if out != nil {
			created = out.Pilot
		}
	}

	id := ""
	if created != nil {
		id = created.ID
	}
	return report(cmd, id, created, err)
}

func runPilotGet(cmd *cobra.Command, args []string) error {
	svc, err := application.pilotService(cmd.Context())
	if err != nil {
		return err
	}

	out, err := svc.GetPilot(cmd.Context(), &pilot.GetPilotInput{PilotID: args[0]})
	if err != nil {
		return report(cmd, args[0], nil, err)
	}
	return report(cmd, args[0], out.Pilot, nil)
}

func runPilotList(cmd *cobra.Command, _ []string) error {
	svc, err := application.pilotService(cmd.Context())
	if err != nil {
		return err
	}

	out, err := svc.ListPilots(cmd.Context(), &pilot.ListPilotsInput{
		Status: entities.PilotStatus(pilotStatus),
	})
	if err != nil {
		return report(cmd, "", nil, err)
	}
	return report(cmd, "", out.Pilots, nil)
}

func runPilotUpdate(cmd *cobra.Command, args []string) error {
	svc, err := application.pilotService(cmd.Context())
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	input := &pilot.UpdatePilotInput{PilotID: args[0]}
	if flags.Changed("name") {
		input.Name = &pilotIdentity.Name
	}
	input.Callsign = stringPatch(cmd, "callsign", pilotIdentity.Callsign)
	input.Affiliation = stringPatch(cmd, "affiliation", pilotIdentity.Affiliation)
	input.Portrait = stringPatch(cmd, "portrait", pilotIdentity.Portrait)
	input.Background = stringPatch(cmd, "background", pilotIdentity.Background)

	if flags.Changed("gunnery") || flags.Changed("piloting") {
		current, err := svc.GetPilot(cmd.Context(), &pilot.GetPilotInput{PilotID: args[0]})
		if err != nil {
			return report(cmd, args[0], nil, err)
		}
		skills := current.Pilot.Skills
		if flags.Changed("gunnery") {
			skills.Gunnery = newGunnery
		}
		if flags.Changed("piloting") {
			skills.Piloting = newPiloting
		}
		input.Skills = &skills
	}

	out, err := svc.UpdatePilot(cmd.Context(), input)
	if err != nil {
		return report(cmd, args[0], nil, err)
	}
	return report(cmd, args[0], out.Pilot, nil)
}

// stringPatch maps an untouched flag to Unchanged and an empty value to Clear
func stringPatch(cmd *cobra.Command, name, value string) patch.Field[string] {
	if !cmd.Flags().Changed(name) {
		return patch.Unchanged[string]()
	}
	if value == "" {
		return patch.Clear[string]()
	}
	return patch.Set(value)
}

func runPilotDelete(cmd *cobra.Command, args []string) error {
	svc, err := application.pilotService(cmd.Context())
	if err != nil {
		return err
	}

	_, err = svc.DeletePilot(cmd.Context(), &pilot.DeletePilotInput{PilotID: args[0]})
	return report(cmd, args[0], nil, err)
}

func runPilotImprove(cmd *cobra.Command, args []string) error {
	svc, err := application.pilotService(cmd.Context())
	if err != nil {
		return err
	}

	input := &pilot.ImproveSkillInput{PilotID: args[0]}
	var out *pilot.ImproveSkillOutput
	switch args[1] {
	case "gunnery":
		out, err = svc.ImproveGunnery(cmd.Context(), input)
	case "piloting":
		out, err = svc.ImprovePiloting(cmd.Context(), input)
	default:
		err = errors.InvalidArgumentf("unknown skill %q, expected gunnery or piloting", args[1])
	}
	if err != nil {
		return report(cmd, args[0], nil, err)
	}
	return report(cmd, args[0], out, nil)
}

func runPilotMission(cmd *cobra.Command, args []string) error {
	svc, err := application.pilotService(cmd.Context())
	if err != nil {
		return err
	}

	out, err := svc.AwardMissionXP(cmd.Context(), &pilot.AwardMissionXPInput{
		PilotID:     args[0],
		GameID:      missionGame,
		MissionName: missionName,
		Outcome:     entities.MissionOutcome(missionOutcome),
		Kills:       missionKills,
		Bonuses: pilot.MissionBonuses{
			FirstBlood:       missionFirstBlood,
			HigherBVOpponent: missionHigherBV,
		},
	})
	if err != nil {
		return report(cmd, args[0], nil, err)
	}
	return report(cmd, args[0], out, nil)
}

func runPilotKill(cmd *cobra.Command, args []string) error {
	svc, err := application.pilotService(cmd.Context())
	if err != nil {
		return err
	}

	out, err := svc.RecordKill(cmd.Context(), &pilot.RecordKillInput{
		PilotID:    args[0],
		TargetID:   killTarget,
		TargetName: killTargetName,
		WeaponUsed: killWeapon,
		GameID:     missionGame,
	})
	if err != nil {
		return report(cmd, args[0], nil, err)
	}
	return report(cmd, args[0], out.Pilot, nil)
}

func runPilotGrant(cmd *cobra.Command, args []string) error {
	svc, err := application.pilotService(cmd.Context())
	if err != nil {
		return err
	}

	out, err := svc.GrantAbility(cmd.Context(), &pilot.AbilityInput{
		PilotID:   args[0],
		AbilityID: args[1],
		GameID:    abilityGame,
	})
	if err != nil {
		return report(cmd, args[0], nil, err)
	}
	return report(cmd, args[0], out.Pilot, nil)
}

func runPilotRevoke(cmd *cobra.Command, args []string) error {
	svc, err := application.pilotService(cmd.Context())
	if err != nil {
		return err
	}

	out, err := svc.RevokeAbility(cmd.Context(), &pilot.AbilityInput{PilotID: args[0], AbilityID: args[1]})
	if err != nil {
		return report(cmd, args[0], nil, err)
	}
	return report(cmd, args[0], out.Pilot, nil)
}

func runPilotWound(cmd *cobra.Command, args []string) error {
	svc, err := application.pilotService(cmd.Context())
	if err != nil {
		return err
	}

	out, err := svc.ApplyWound(cmd.Context(), &pilot.WoundInput{PilotID: args[0]})
	if err != nil {
		return report(cmd, args[0], nil, err)
	}
	return report(cmd, args[0], out.Pilot, nil)
}

func runPilotHeal(cmd *cobra.Command, args []string) error {
	svc, err := application.pilotService(cmd.Context())
	if err != nil {
		return err
	}

	out, err := svc.HealWounds(cmd.Context(), &pilot.WoundInput{PilotID: args[0]})
	if err != nil {
		return report(cmd, args[0], nil, err)
	}
	return report(cmd, args[0], out.Pilot, nil)
}
