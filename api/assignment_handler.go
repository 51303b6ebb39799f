package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/xraph/forge"

	"github.com/portier-io/portier/assignment"
	"github.com/portier-io/portier/id"
)

func (a *API) registerAssignmentRoutes(router forge.Router) error {
	g := router.Group("/v1", forge.WithGroupTags("assignments"))

	if err := g.POST("/assignments/direct", a.grantDirect,
		forge.WithSummary("Grant direct assignment"),
		forge.WithDescription("Grants a user access to exactly one unit, no descendants."),
		forge.WithOperationID("grantDirect"),
		forge.WithRequestSchema(GrantDirectRequest{}),
		forge.WithCreatedResponse(&assignment.Direct{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.GET("/assignments/direct/:assignmentId", a.getDirect,
		forge.WithSummary("Get direct assignment"),
		forge.WithOperationID("getDirect"),
		forge.WithResponseSchema(http.StatusOK, "Assignment details", &assignment.Direct{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.DELETE("/assignments/direct/:assignmentId", a.revokeDirect,
		forge.WithSummary("Revoke direct assignment"),
		forge.WithOperationID("revokeDirect"),
		forge.WithNoContentResponse(),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.GET("/assignments/direct", a.listDirect,
		forge.WithSummary("List direct assignments"),
		forge.WithOperationID("listDirect"),
		forge.WithRequestSchema(ListAssignmentsRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Assignment list", []*assignment.Direct{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.POST("/assignments/path", a.grantPath,
		forge.WithSummary("Grant path assignment"),
		forge.WithDescription("Grants a user access to a unit and its whole subtree."),
		forge.WithOperationID("grantPath"),
		forge.WithRequestSchema(GrantPathRequest{}),
		forge.WithCreatedResponse(&assignment.Path{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.GET("/assignments/path/:assignmentId", a.getPath,
		forge.WithSummary("Get path assignment"),
		forge.WithOperationID("getPath"),
		forge.WithResponseSchema(http.StatusOK, "Assignment details", &assignment.Path{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.DELETE("/assignments/path/:assignmentId", a.revokePath,
		forge.WithSummary("Revoke path assignment"),
		forge.WithOperationID("revokePath"),
		forge.WithNoContentResponse(),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.GET("/assignments/path", a.listPath,
		forge.WithSummary("List path assignments"),
		forge.WithOperationID("listPath"),
		forge.WithRequestSchema(ListAssignmentsRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Assignment list", []*assignment.Path{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	return g.GET("/users/:userId/assignments", a.getUserSnapshot,
		forge.WithSummary("Get user assignment snapshot"),
		forge.WithDescription("Returns all grants held by a user in one read."),
		forge.WithOperationID("getUserAssignments"),
		forge.WithResponseSchema(http.StatusOK, "Snapshot", &assignment.Snapshot{}),
		forge.WithErrorResponses(),
	)
}

func (a *API) grantDirect(ctx forge.Context, req *GrantDirectRequest) (*assignment.Direct, error) {
	if req.UserID == "" || req.UnitID == "" {
		return nil, forge.BadRequest("user_id and unit_id are required")
	}
	userID, err := id.ParseUserID(req.UserID)
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid user ID: %v", err))
	}
	unitID, err := id.Parse(req.UnitID)
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid unit ID: %v", err))
	}

	// The unit must exist at grant time; its kind is derived, not trusted
	// from the caller.
	u, err := a.eng.Store().GetUnit(ctx.Context(), unitID)
	if err != nil {
		return nil, mapError(err)
	}

	asg := &assignment.Direct{
		ID:        id.NewDirectAssignmentID(),
		UserID:    userID,
		UnitKind:  u.Kind,
		UnitID:    unitID,
		CreatedAt: time.Now(),
	}
	if req.GrantedBy != "" {
		gb, err := id.ParseUserID(req.GrantedBy)
		if err != nil {
			return nil, forge.BadRequest(fmt.Sprintf("invalid granted_by: %v", err))
		}
		asg.GrantedBy = gb
	}

	if err := a.eng.Store().CreateDirectAssignment(ctx.Context(), asg); err != nil {
		return nil, mapError(err)
	}

	if a.eng.Cache() != nil {
		a.eng.Cache().InvalidateUser(ctx.Context(), userID)
	}
	if a.eng.Plugins() != nil {
		a.eng.Plugins().EmitDirectGranted(ctx.Context(), asg)
	}

	return asg, ctx.JSON(http.StatusCreated, asg)
}

func (a *API) getDirect(ctx forge.Context, _ *GetAssignmentRequest) (*assignment.Direct, error) {
	asgID, err := id.ParseDirectAssignmentID(ctx.Param("assignmentId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid assignment ID: %v", err))
	}

	asg, err := a.eng.Store().GetDirectAssignment(ctx.Context(), asgID)
	if err != nil {
		return nil, mapError(err)
	}

	return asg, ctx.JSON(http.StatusOK, asg)
}

func (a *API) revokeDirect(ctx forge.Context, _ *GetAssignmentRequest) (*struct{}, error) {
	asgID, err := id.ParseDirectAssignmentID(ctx.Param("assignmentId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid assignment ID: %v", err))
	}

	// Fetch first so the affected user's cache can be dropped.
	asg, err := a.eng.Store().GetDirectAssignment(ctx.Context(), asgID)
	if err != nil {
		return nil, mapError(err)
	}

	if err := a.eng.Store().DeleteDirectAssignment(ctx.Context(), asgID); err != nil {
		return nil, mapError(err)
	}

	if a.eng.Cache() != nil {
		a.eng.Cache().InvalidateUser(ctx.Context(), asg.UserID)
	}
	if a.eng.Plugins() != nil {
		a.eng.Plugins().EmitDirectRevoked(ctx.Context(), asgID)
	}

	return nil, ctx.NoContent(http.StatusNoContent)
}

func (a *API) listDirect(ctx forge.Context, req *ListAssignmentsRequest) ([]*assignment.Direct, error) {
	filter, err := toAssignmentFilter(req)
	if err != nil {
		return nil, err
	}

	asgs, err := a.eng.Store().ListDirectAssignments(ctx.Context(), filter)
	if err != nil {
		return nil, mapError(err)
	}

	return asgs, ctx.JSON(http.StatusOK, asgs)
}

func (a *API) grantPath(ctx forge.Context, req *GrantPathRequest) (*assignment.Path, error) {
	if req.UserID == "" || req.PoleID == "" {
		return nil, forge.BadRequest("user_id and pole_id are required")
	}
	if req.ServiceID != "" && req.DirectionID == "" {
		return nil, forge.BadRequest("service_id requires direction_id")
	}
	userID, err := id.ParseUserID(req.UserID)
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid user ID: %v", err))
	}

	asg := &assignment.Path{
		ID:        id.NewPathAssignmentID(),
		UserID:    userID,
		CreatedAt: time.Now(),
	}
	asg.PoleID, err = id.ParsePoleID(req.PoleID)
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid pole ID: %v", err))
	}
	if req.DirectionID != "" {
		asg.DirectionID, err = id.ParseDirectionID(req.DirectionID)
		if err != nil {
			return nil, forge.BadRequest(fmt.Sprintf("invalid direction ID: %v", err))
		}
	}
	if req.ServiceID != "" {
		asg.ServiceID, err = id.ParseServiceID(req.ServiceID)
		if err != nil {
			return nil, forge.BadRequest(fmt.Sprintf("invalid service ID: %v", err))
		}
	}
	if req.GrantedBy != "" {
		gb, err := id.ParseUserID(req.GrantedBy)
		if err != nil {
			return nil, forge.BadRequest(fmt.Sprintf("invalid granted_by: %v", err))
		}
		asg.GrantedBy = gb
	}

	// The most specific unit must exist at grant time.
	if _, err := a.eng.Store().GetUnit(ctx.Context(), asg.MostSpecific().ID); err != nil {
		return nil, mapError(err)
	}

	if err := a.eng.Store().CreatePathAssignment(ctx.Context(), asg); err != nil {
		return nil, mapError(err)
	}

	if a.eng.Cache() != nil {
		a.eng.Cache().InvalidateUser(ctx.Context(), userID)
	}
	if a.eng.Plugins() != nil {
		a.eng.Plugins().EmitPathGranted(ctx.Context(), asg)
	}

	return asg, ctx.JSON(http.StatusCreated, asg)
}

func (a *API) getPath(ctx forge.Context, _ *GetAssignmentRequest) (*assignment.Path, error) {
	asgID, err := id.ParsePathAssignmentID(ctx.Param("assignmentId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid assignment ID: %v", err))
	}

	asg, err := a.eng.Store().GetPathAssignment(ctx.Context(), asgID)
	if err != nil {
		return nil, mapError(err)
	}

	return asg, ctx.JSON(http.StatusOK, asg)
}

func (a *API) revokePath(ctx forge.Context, _ *GetAssignmentRequest) (*struct{}, error) {
	asgID, err := id.ParsePathAssignmentID(ctx.Param("assignmentId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid assignment ID: %v", err))
	}

	asg, err := a.eng.Store().GetPathAssignment(ctx.Context(), asgID)
	if err != nil {
		return nil, mapError(err)
	}

	if err := a.eng.Store().DeletePathAssignment(ctx.Context(), asgID); err != nil {
		return nil, mapError(err)
	}

	if a.eng.Cache() != nil {
		a.eng.Cache().InvalidateUser(ctx.Context(), asg.UserID)
	}
	if a.eng.Plugins() != nil {
		a.eng.Plugins().EmitPathRevoked(ctx.Context(), asgID)
	}

	return nil, ctx.NoContent(http.StatusNoContent)
}

func (a *API) listPath(ctx forge.Context, req *ListAssignmentsRequest) ([]*assignment.Path, error) {
	filter, err := toAssignmentFilter(req)
	if err != nil {
		return nil, err
	}

	asgs, err := a.eng.Store().ListPathAssignments(ctx.Context(), filter)
	if err != nil {
		return nil, mapError(err)
	}

	return asgs, ctx.JSON(http.StatusOK, asgs)
}

func (a *API) getUserSnapshot(ctx forge.Context, _ *GetUserAssignmentsRequest) (*assignment.Snapshot, error) {
	userID, err := id.ParseUserID(ctx.Param("userId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid user ID: %v", err))
	}

	snap, err := a.eng.Store().LoadSnapshot(ctx.Context(), userID)
	if err != nil {
		return nil, mapError(err)
	}

	return snap, ctx.JSON(http.StatusOK, snap)
}

func toAssignmentFilter(req *ListAssignmentsRequest) (*assignment.ListFilter, error) {
	filter := &assignment.ListFilter{
		Limit:  defaultLimit(req.Limit),
		Offset: req.Offset,
	}
	if req.UserID != "" {
		uid, err := id.ParseUserID(req.UserID)
		if err != nil {
			return nil, forge.BadRequest(fmt.Sprintf("invalid user_id: %v", err))
		}
		filter.UserID = &uid
	}
	if req.UnitID != "" {
		unitID, err := id.Parse(req.UnitID)
		if err != nil {
			return nil, forge.BadRequest(fmt.Sprintf("invalid unit_id: %v", err))
		}
		filter.UnitID = &unitID
	}
	return filter, nil
}
