package portier

import "errors"

var (
	// ErrAccessDenied is returned by Enforce when a capability is not granted.
	ErrAccessDenied = errors.New("portier: access denied")

	// ErrMalformedHierarchy is returned by NewTree when a direction or
	// service references a missing or wrong-tier parent. Fatal: the tree
	// must not be built with the offending unit silently dropped.
	ErrMalformedHierarchy = errors.New("portier: malformed hierarchy")

	// ErrOrphanedEntity is returned when a project references an
	// organizational unit absent from the current snapshot. Non-fatal:
	// callers degrade to ownership-only access.
	ErrOrphanedEntity = errors.New("portier: orphaned entity reference")

	// ErrUnitNotFound is returned when an organizational unit cannot be found.
	ErrUnitNotFound = errors.New("portier: org unit not found")

	// ErrInvalidParent is returned when a unit's parent reference is
	// missing or of the wrong tier.
	ErrInvalidParent = errors.New("portier: invalid parent for unit tier")

	// ErrAssignmentNotFound is returned when an assignment cannot be found.
	ErrAssignmentNotFound = errors.New("portier: assignment not found")

	// ErrDuplicateAssignment is returned when an identical grant already exists.
	ErrDuplicateAssignment = errors.New("portier: assignment already exists")

	// ErrProjectNotFound is returned when a project cannot be found.
	ErrProjectNotFound = errors.New("portier: project not found")

	// ErrProfileNotFound is returned when a user profile cannot be found.
	ErrProfileNotFound = errors.New("portier: profile not found")

	// ErrDuplicateMember is returned when a user is already on a project team.
	ErrDuplicateMember = errors.New("portier: user already a project member")

	// ErrUnknownAction is returned for actions outside the capability set.
	ErrUnknownAction = errors.New("portier: unknown action")
)
