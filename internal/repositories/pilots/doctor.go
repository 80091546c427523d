package pilots

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/KirkDiggler/mech-api/internal/entities"
	"github.com/KirkDiggler/mech-api/internal/errors"
	redisclient "github.com/KirkDiggler/mech-api/internal/redis"
)

// Issue is one problem found in stored pilot data
type Issue struct {
	Key      string `json:"key"`
	PilotID  string `json:"pilot_id,omitempty"`
	Problem  string `json:"problem"`
	Repaired bool   `json:"repaired"`
}

// DiagnoseInput controls a scan of the Redis pilot keyspace
type DiagnoseInput struct {
	// Repair fixes index membership. Corrupted documents are only reported.
	Repair bool
}

// DiagnoseOutput summarizes a scan
type DiagnoseOutput struct {
	Checked int     `json:"checked"`
	Issues  []Issue `json:"issues"`
}

// Diagnose scans every pilot document and index set and reports records
// that break the career invariants.
func Diagnose(ctx context.Context, client redisclient.Client, input DiagnoseInput) (*DiagnoseOutput, error) {
	if client == nil {
		return nil, errors.InvalidArgument("client cannot be nil")
	}

	out := &DiagnoseOutput{Issues: []Issue{}}
	seen := map[string]bool{}

	iter := client.Scan(ctx, 0, KeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		out.Checked++

		data, err := client.Get(ctx, key).Result()
		if err != nil {
			if redisclient.IsNil(err) {
				continue
			}
			return nil, errors.Wrapf(err, "failed to read %s", key)
		}

		id := strings.TrimPrefix(key, KeyPrefix)
		seen[id] = true

		var pilot entities.Pilot
		if err := json.Unmarshal([]byte(data), &pilot); err != nil {
			out.Issues = append(out.Issues, Issue{Key: key, PilotID: id, Problem: "corrupted JSON"})
			continue
		}
		for _, problem := range checkPilot(id, &pilot) {
			out.Issues = append(out.Issues, Issue{Key: key, PilotID: id, Problem: problem})
		}

		issues, err := checkIndexes(ctx, client, key, id, pilot.Status, input.Repair)
		if err != nil {
			return nil, err
		}
		out.Issues = append(out.Issues, issues...)
	}
	if err := iter.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to scan pilots")
	}

	dangling, err := checkDangling(ctx, client, seen, input.Repair)
	if err != nil {
		return nil, err
	}
	out.Issues = append(out.Issues, dangling...)

	slog.InfoContext(ctx, "pilot diagnosis complete",
		"checked", out.Checked,
		"issues", len(out.Issues),
		"repair", input.Repair)

	return out, nil
}

// checkPilot returns the invariant violations of a decoded pilot
func checkPilot(id string, p *entities.Pilot) []string {
	var problems []string

	if p.ID != id {
		problems = append(problems, fmt.Sprintf("stored id %q does not match key", p.ID))
	}
	if strings.TrimSpace(p.Name) == "" {
		problems = append(problems, "name is empty")
	}
	if p.Skills.Gunnery < entities.MinSkillValue || p.Skills.Gunnery > entities.MaxSkillValue {
		problems = append(problems, fmt.Sprintf("gunnery %d out of range", p.Skills.Gunnery))
	}
	if p.Skills.Piloting < entities.MinSkillValue || p.Skills.Piloting > entities.MaxSkillValue {
		problems = append(problems, fmt.Sprintf("piloting %d out of range", p.Skills.Piloting))
	}
	if p.Wounds < 0 || p.Wounds > entities.MaxWounds {
		problems = append(problems, fmt.Sprintf("wounds %d out of range", p.Wounds))
	}
	if p.Wounds >= entities.MaxWounds && p.Status != entities.PilotStatusKIA {
		problems = append(problems, fmt.Sprintf("%d wounds but status %s", p.Wounds, p.Status))
	}
	if !slices.Contains(entities.AllPilotStatuses, p.Status) {
		problems = append(problems, fmt.Sprintf("unknown status %q", p.Status))
	}

	if p.Career == nil {
		problems = append(problems, "persistent pilot has no career")
		return problems
	}
	if p.Career.XP < 0 {
		problems = append(problems, fmt.Sprintf("negative XP %d", p.Career.XP))
	}
	if p.Career.XP > p.Career.TotalXPEarned {
		problems = append(problems, fmt.Sprintf("XP %d exceeds total earned %d", p.Career.XP, p.Career.TotalXPEarned))
	}
	if p.Career.TotalKills != len(p.Career.KillRecords) {
		problems = append(problems, fmt.Sprintf("total kills %d but %d kill records",
			p.Career.TotalKills, len(p.Career.KillRecords)))
	}
	if p.Career.MissionsCompleted != len(p.Career.MissionHistory) {
		problems = append(problems, fmt.Sprintf("missions completed %d but %d mission records",
			p.Career.MissionsCompleted, len(p.Career.MissionHistory)))
	}
	return problems
}

func checkIndexes(
	ctx context.Context,
	client redisclient.Client,
	key, id string,
	status entities.PilotStatus,
	repair bool,
) ([]Issue, error) {
	var issues []Issue

	indexes := []string{allIndexKey}
	if status != "" {
		indexes = append(indexes, statusKey(status))
	}
	for _, index := range indexes {
		member, err := client.SIsMember(ctx, index, id).Result()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to check index %s", index)
		}
		if member {
			continue
		}

		issue := Issue{Key: key, PilotID: id, Problem: "missing from " + index}
		if repair {
			if err := client.SAdd(ctx, index, id).Err(); err != nil {
				return nil, errors.Wrapf(err, "failed to repair index %s", index)
			}
			issue.Repaired = true
		}
		issues = append(issues, issue)
	}

	for _, other := range entities.AllPilotStatuses {
		if other == status {
			continue
		}
		index := statusKey(other)
		member, err := client.SIsMember(ctx, index, id).Result()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to check index %s", index)
		}
		if !member {
			continue
		}

		issue := Issue{Key: key, PilotID: id, Problem: "stale member of " + index}
		if repair {
			if err := client.SRem(ctx, index, id).Err(); err != nil {
				return nil, errors.Wrapf(err, "failed to repair index %s", index)
			}
			issue.Repaired = true
		}
		issues = append(issues, issue)
	}

	return issues, nil
}

// checkDangling finds index members whose document no longer exists
func checkDangling(ctx context.Context, client redisclient.Client, seen map[string]bool, repair bool) ([]Issue, error) {
	var issues []Issue

	indexes := []string{allIndexKey}
	for _, status := range entities.AllPilotStatuses {
		indexes = append(indexes, statusKey(status))
	}

	for _, index := range indexes {
		ids, err := client.SMembers(ctx, index).Result()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read index %s", index)
		}
		slices.Sort(ids)

		for _, id := range ids {
			if seen[id] {
				continue
			}
			issue := Issue{Key: index, PilotID: id, Problem: "index member has no document"}
			if repair {
				if err := client.SRem(ctx, index, id).Err(); err != nil {
					return nil, errors.Wrapf(err, "failed to repair index %s", index)
				}
				issue.Repaired = true
			}
			issues = append(issues, issue)
		}
	}
	return issues, nil
}
