// Package errors provides coded errors for the pilot and encounter engine.
//
// Every repository and orchestrator returns *Error values carrying a Code.
// Callers that need the flat result shape collapse the code to a Kind:
//
//	NotFound        -> NotFound
//	InvalidArgument -> ValidationError
//	FailedPrecondition, AlreadyExists -> ValidationError
//	InsufficientXP  -> InsufficientXp
//	anything else   -> DatabaseError
//
// # Basic Usage
//
//	err := errors.NotFoundf("pilot with ID %s not found", id)
//	err := errors.InsufficientXPf("need %d XP, have %d", cost, xp)
//
// Wrapping keeps the code of an *Error and turns foreign errors into
// Internal, so a driver failure surfaces as a DatabaseError while the
// driver's message is preserved:
//
//	if err := pipe.Exec(ctx); err != nil {
//	    return nil, errors.Wrapf(err, "failed to save pilot")
//	}
//
// # Validation Errors
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("name", input.Name, vb)
//	errors.ValidateRange("gunnery", input.Gunnery, 0, 8, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// # Layer Guidelines
//
// Repository layer returns NotFound, AlreadyExists and InsufficientXP, and
// wraps storage failures. Orchestrators validate input (InvalidArgument),
// check lifecycle state (FailedPrecondition) and wrap repository errors with
// business context.
package errors
