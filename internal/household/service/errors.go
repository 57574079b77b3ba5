package service

import (
	"errors"

	dErrors "govinda/pkg/domain-errors"
	"govinda/pkg/platform/sentinel"
)

func wrapHouseholdErr(err error, action string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "household not found")
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.New(dErrors.CodeConcurrentModification, "household was modified concurrently")
	}
	if _, ok := dErrors.As(err); ok {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to "+action)
}

func asValidation(err error) error {
	if dErrors.HasCode(err, dErrors.CodeInvariantViolation) {
		return dErrors.New(dErrors.CodeValidation, dErrors.MessageOf(err))
	}
	return err
}

func checkVersion(actual int64, expected *int64) error {
	if expected != nil && *expected != actual {
		return dErrors.Newf(dErrors.CodeConcurrentModification,
			"household was modified concurrently: expected version %d, found %d", *expected, actual)
	}
	return nil
}
