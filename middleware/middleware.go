// Package middleware provides HTTP authorization middleware for Portier.
package middleware

import (
	"encoding/json"

	"github.com/xraph/forge"

	"github.com/portier-io/portier"
	"github.com/portier-io/portier/id"
)

// RequireProject enforces that the requesting user may perform the given
// action on the project named by the projectId path parameter. The user is
// resolved from the request context (Forge user ID, then the portier
// context key).
func RequireProject(eng *portier.Engine, action portier.Action) forge.Middleware {
	return func(next forge.Handler) forge.Handler {
		return func(ctx forge.Context) error {
			userID, ok := resolveUser(ctx)
			if !ok {
				return denyResponse(ctx, "no authenticated user")
			}

			projectID, err := id.ParseProjectID(ctx.Param("projectId"))
			if err != nil {
				return denyResponse(ctx, "invalid project ID")
			}

			if err := eng.Enforce(ctx.Context(), userID, projectID, action); err != nil {
				return denyResponse(ctx, "access denied")
			}

			return next(ctx)
		}
	}
}

// RequireRole enforces that the requesting user holds at least the given
// role by precedence: an admin passes a manager gate. Use it for routes
// with no project in scope, such as administrative listings.
func RequireRole(eng *portier.Engine, role portier.Role) forge.Middleware {
	return func(next forge.Handler) forge.Handler {
		return func(ctx forge.Context) error {
			userID, ok := resolveUser(ctx)
			if !ok {
				return denyResponse(ctx, "no authenticated user")
			}

			resolved, err := eng.Roles(ctx.Context(), userID)
			if err != nil || !resolved.AtLeast(role) {
				return denyResponse(ctx, "access denied")
			}

			return next(ctx)
		}
	}
}

// RequireOrg enforces that the requesting user's assignment scope covers
// the organizational placement named by the poleId, directionId, and
// serviceId path parameters. Absent parameters leave that tier unset.
func RequireOrg(eng *portier.Engine) forge.Middleware {
	return func(next forge.Handler) forge.Handler {
		return func(ctx forge.Context) error {
			userID, ok := resolveUser(ctx)
			if !ok {
				return denyResponse(ctx, "no authenticated user")
			}

			var org portier.ProjectOrg
			if s := ctx.Param("poleId"); s != "" {
				pid, err := id.ParsePoleID(s)
				if err != nil {
					return denyResponse(ctx, "invalid pole ID")
				}
				org.PoleID = pid
			}
			if s := ctx.Param("directionId"); s != "" {
				did, err := id.ParseDirectionID(s)
				if err != nil {
					return denyResponse(ctx, "invalid direction ID")
				}
				org.DirectionID = did
			}
			if s := ctx.Param("serviceId"); s != "" {
				sid, err := id.ParseServiceID(s)
				if err != nil {
					return denyResponse(ctx, "invalid service ID")
				}
				org.ServiceID = sid
			}

			allowed, err := eng.CanAccessOrg(ctx.Context(), userID, org)
			if err != nil || !allowed {
				return denyResponse(ctx, "access denied")
			}

			return next(ctx)
		}
	}
}

// resolveUser extracts the requesting user's ID from context.
// Priority: Forge user ID (from the auth layer) → portier context key.
func resolveUser(ctx forge.Context) (id.UserID, bool) {
	if s := forge.UserIDFromContext(ctx.Context()); s != "" {
		userID, err := id.ParseUserID(s)
		if err != nil {
			return id.Nil, false
		}
		return userID, true
	}
	if userID, ok := portier.UserFromContext(ctx.Context()); ok {
		return userID, true
	}
	return id.Nil, false
}

func denyResponse(ctx forge.Context, msg string) error {
	ctx.SetHeader("Content-Type", "application/json")
	ctx.Response().WriteHeader(403)
	return json.NewEncoder(ctx.Response()).Encode(map[string]string{"error": msg})
}
