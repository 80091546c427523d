package encounters

import (
	"sort"

	"github.com/KirkDiggler/mech-api/internal/entities"
	"github.com/KirkDiggler/mech-api/internal/errors"
)

const (
	errEncounterNil     = "encounter cannot be nil"
	errEncounterIDEmpty = "encounter ID cannot be empty"
	errStatusEmpty      = "status cannot be empty"
)

func validateEncounter(e *entities.Encounter) error {
	if e == nil {
		return errors.InvalidArgument(errEncounterNil)
	}
	if e.Status == "" {
		return errors.InvalidArgument(errStatusEmpty)
	}
	return nil
}

// checkTransition rejects writes over a frozen encounter. A launched
// encounter may only move to completed; a completed one is final.
func checkTransition(current, next *entities.Encounter) error {
	switch current.Status {
	case entities.EncounterStatusLaunched:
		if next.Status != entities.EncounterStatusCompleted {
			return errors.FailedPreconditionf("encounter %s is already launched", current.ID)
		}
	case entities.EncounterStatusCompleted:
		return errors.FailedPreconditionf("encounter %s is already completed", current.ID)
	}
	return nil
}

func notFound(id string) error {
	return errors.NotFoundf("encounter with ID %s not found", id)
}

func sortEncounters(encounters []*entities.Encounter) {
	sort.SliceStable(encounters, func(i, j int) bool {
		if !encounters[i].CreatedAt.Equal(encounters[j].CreatedAt) {
			return encounters[i].CreatedAt.Before(encounters[j].CreatedAt)
		}
		return encounters[i].ID < encounters[j].ID
	})
}
