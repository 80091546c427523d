package entities

import (
	"github.com/KirkDiggler/mech-api/internal/errors"
)

// OperationResult is the flat outcome of a mutating operation, as reported
// to callers that do not consume Go errors (the CLI prints these as JSON).
type OperationResult struct {
	Success   bool        `json:"success"`
	ID        string      `json:"id,omitempty"`
	Error     string      `json:"error,omitempty"`
	ErrorCode errors.Kind `json:"error_code,omitempty"`
}

// NewOperationResult builds a result from an orchestrator return
func NewOperationResult(id string, err error) OperationResult {
	if err != nil {
		return OperationResult{
			Success:   false,
			ID:        id,
			Error:     errors.GetMessage(err),
			ErrorCode: errors.GetKind(err),
		}
	}
	return OperationResult{Success: true, ID: id}
}
