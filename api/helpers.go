package api

import (
	"errors"

	"github.com/xraph/forge"

	"github.com/portier-io/portier"
)

// mapError maps domain errors to Forge HTTP errors.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if isNotFound(err) {
		return forge.NotFound(err.Error())
	}
	if errors.Is(err, portier.ErrInvalidParent) || errors.Is(err, portier.ErrMalformedHierarchy) {
		return forge.BadRequest(err.Error())
	}
	if errors.Is(err, portier.ErrDuplicateAssignment) || errors.Is(err, portier.ErrDuplicateMember) {
		return forge.BadRequest(err.Error())
	}
	if errors.Is(err, portier.ErrUnknownAction) {
		return forge.BadRequest(err.Error())
	}
	if errors.Is(err, portier.ErrAccessDenied) {
		return forge.Forbidden(err.Error())
	}
	return err
}

func isNotFound(err error) bool {
	return errors.Is(err, portier.ErrUnitNotFound) ||
		errors.Is(err, portier.ErrAssignmentNotFound) ||
		errors.Is(err, portier.ErrProjectNotFound) ||
		errors.Is(err, portier.ErrProfileNotFound)
}

func defaultLimit(limit int) int {
	if limit <= 0 {
		return 50
	}
	if limit > 1000 {
		return 1000
	}
	return limit
}
