// Package errors provides coded errors for the progression service.
//
// Every layer returns *Error values built with the constructors here:
//
//	errors.NotFoundf("character %s not found", id)
//	errors.FailedPrecondition("level up has already been committed").
//	    WithMeta("session_id", session.ID)
//
// Wrap keeps the code of a wrapped *Error and turns anything else into
// Internal:
//
//	if err := repo.Update(ctx, input); err != nil {
//	    return nil, errors.Wrapf(err, "failed to save character %s", id)
//	}
//
// Config and request validation collect every problem before failing:
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("character_id", req.CharacterID, vb)
//	errors.ValidateRange("level", req.Level, 1, 20, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// The per-field messages are stored under MetaValidationErrors.
//
// Handlers return ToGRPCError(err); clients call FromGRPCError to get the
// code and metadata back. Codes map one to one onto gRPC codes.
//
// How the codes are used:
//   - InvalidArgument: malformed input, unknown enum values, bad config
//   - NotFound: unknown character, session, feat or heritage
//   - AlreadyExists: creating a character whose ID is taken
//   - FailedPrecondition: a wizard or level 1 rule does not allow the action
//   - Aborted: a concurrent write won; retry
//   - Unavailable: storage is unreachable; retry
//   - Internal: corrupt stored data and anything unexpected
package errors
