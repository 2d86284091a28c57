// Package errors provides coded errors for the battle simulator.
//
// Every error carries a Code that maps onto a gRPC status code, a
// human-readable message, an optional cause and optional metadata.
//
// # Basic Usage
//
//	err := errors.NotFound("battle report not found").
//	    WithMeta("battle_id", id)
//
//	if err := repo.Get(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to load report")
//	}
//
// # Cancellation
//
// The scheduler never fails on stalemates, unreachable targets or deaths.
// The one abrupt outcome is cancellation, reported with FromContext:
//
//	if err := ctx.Err(); err != nil {
//	    return nil, errors.FromContext(err, "battle aborted")
//	}
//
// The result satisfies both errors.IsCanceled and the standard library
// errors.Is(err, context.Canceled).
//
// # Validation
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("name", input.Name, vb)
//	errors.ValidateRange("grid.width", w, 1, 1024, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
//
// # gRPC
//
// Handlers return errors.ToGRPCError(err); clients may call
// errors.FromGRPCError to recover the code and metadata.
package errors
