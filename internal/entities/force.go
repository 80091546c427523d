package entities

import (
	"github.com/KirkDiggler/rpg-toolkit/core"
)

// EntityTypeForce is the core.Entity type for forces
const EntityTypeForce = "force"

// ForceStats are the aggregate numbers of a force
type ForceStats struct {
	TotalBV       int `json:"total_bv"`
	AssignedUnits int `json:"assigned_units"`
	TotalTonnage  int `json:"total_tonnage,omitempty"`
}

// Force is a named collection of units, owned by the force builder
type Force struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Stats ForceStats `json:"stats"`
}

var _ core.Entity = (*Force)(nil)

// GetID returns the force ID
func (f *Force) GetID() string {
	return f.ID
}

// GetType returns the entity type
func (f *Force) GetType() string {
	return EntityTypeForce
}

// Snapshot captures the force's current stats as an encounter reference
func (f *Force) Snapshot() *ForceReference {
	return &ForceReference{
		ForceID:   f.ID,
		ForceName: f.Name,
		TotalBV:   f.Stats.TotalBV,
		UnitCount: f.Stats.AssignedUnits,
	}
}
