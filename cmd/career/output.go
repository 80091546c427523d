package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/mech-api/internal/entities"
	"github.com/KirkDiggler/mech-api/internal/errors"
)

type response struct {
	Result  entities.OperationResult `json:"result"`
	Details map[string]interface{}   `json:"details,omitempty"`
	Data    any                      `json:"data,omitempty"`
}

// report prints the operation result (and payload on success, error
// metadata on failure) and passes err through so the process exits
// non-zero on failure.
func report(cmd *cobra.Command, id string, data any, err error) error {
	resp := response{Result: entities.NewOperationResult(id, err)}
	if err == nil {
		resp.Data = data
	} else {
		resp.Details = errors.GetMeta(err)
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if encErr := enc.Encode(resp); encErr != nil {
		return encErr
	}
	return err
}
