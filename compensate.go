package goSignup

import "context"

// runCompensated executes do and, if it fails, runs undo best-effort. The
// original error from do is always the one returned; an undo failure is
// reported through onUndoErr and never replaces it.
func runCompensated(
	ctx context.Context,
	do func(ctx context.Context) error,
	undo func(ctx context.Context) error,
	onUndoErr func(err error),
) error {
	err := do(ctx)
	if err == nil {
		return nil
	}

	if undoErr := undo(ctx); undoErr != nil && onUndoErr != nil {
		onUndoErr(undoErr)
	}

	return err
}
