package api

import (
	"fmt"
	"net/http"

	"github.com/xraph/forge"

	"github.com/portier-io/portier"
	"github.com/portier-io/portier/id"
)

func (a *API) registerAccessRoutes(router forge.Router) error {
	g := router.Group("/v1/access", forge.WithGroupTags("access"))

	if err := g.POST("/check", a.check,
		forge.WithSummary("Project access check"),
		forge.WithDescription("Evaluates a user's capabilities on a project, optionally answering for one action."),
		forge.WithOperationID("accessCheck"),
		forge.WithRequestSchema(AccessCheckRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Check result", AccessCheckResponse{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.POST("/enforce", a.enforce,
		forge.WithSummary("Enforce project access"),
		forge.WithDescription("Returns 200 if the action is allowed, 403 if denied."),
		forge.WithOperationID("accessEnforce"),
		forge.WithRequestSchema(AccessCheckRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Allowed", AccessCheckResponse{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.POST("/batch-check", a.batchCheck,
		forge.WithSummary("Batch project access check"),
		forge.WithDescription("Evaluates multiple access checks in one request."),
		forge.WithOperationID("accessBatchCheck"),
		forge.WithRequestSchema(BatchAccessCheckRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Batch results", BatchAccessCheckResponse{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.POST("/org-check", a.orgCheck,
		forge.WithSummary("Org visibility check"),
		forge.WithDescription("Reports whether a user can see a point of the organizational hierarchy."),
		forge.WithOperationID("accessOrgCheck"),
		forge.WithRequestSchema(OrgCheckRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Visibility", AllowedResponse{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.POST("/task-edit-check", a.taskEditCheck,
		forge.WithSummary("Task edit check"),
		forge.WithDescription("Reports whether a user can edit a task, honoring member self-edit."),
		forge.WithOperationID("accessTaskEditCheck"),
		forge.WithRequestSchema(TaskEditCheckRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Editability", AllowedResponse{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	return g.GET("/accessible-entities", a.accessibleEntities,
		forge.WithSummary("Accessible entities"),
		forge.WithDescription("Resolves the slice of the hierarchy a user can see."),
		forge.WithOperationID("accessibleEntities"),
		forge.WithRequestSchema(GetAccessibleEntitiesRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Visible units", AccessibleEntitiesResponse{}),
		forge.WithErrorResponses(),
	)
}

func (a *API) check(ctx forge.Context, req *AccessCheckRequest) (*AccessCheckResponse, error) {
	resp, _, err := a.evaluate(ctx, req)
	if err != nil {
		return nil, err
	}
	return resp, ctx.JSON(http.StatusOK, resp)
}

func (a *API) enforce(ctx forge.Context, req *AccessCheckRequest) (*AccessCheckResponse, error) {
	resp, allowed, err := a.evaluate(ctx, req)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return resp, ctx.JSON(http.StatusForbidden, resp)
	}
	return resp, ctx.JSON(http.StatusOK, resp)
}

func (a *API) batchCheck(ctx forge.Context, req *BatchAccessCheckRequest) (*BatchAccessCheckResponse, error) {
	if len(req.Checks) == 0 {
		return nil, forge.BadRequest("checks cannot be empty")
	}

	results := make([]AccessCheckResponse, len(req.Checks))
	for i, c := range req.Checks {
		r, _, err := a.evaluate(ctx, &c)
		if err != nil {
			return nil, err
		}
		results[i] = *r
	}

	resp := &BatchAccessCheckResponse{Results: results}
	return resp, ctx.JSON(http.StatusOK, resp)
}

// evaluate runs one capability evaluation and answers for the requested
// action, defaulting to view.
func (a *API) evaluate(ctx forge.Context, req *AccessCheckRequest) (*AccessCheckResponse, bool, error) {
	if req.UserID == "" || req.ProjectID == "" {
		return nil, false, forge.BadRequest("user_id and project_id are required")
	}
	userID, err := id.ParseUserID(req.UserID)
	if err != nil {
		return nil, false, forge.BadRequest(fmt.Sprintf("invalid user ID: %v", err))
	}
	projectID, err := id.ParseProjectID(req.ProjectID)
	if err != nil {
		return nil, false, forge.BadRequest(fmt.Sprintf("invalid project ID: %v", err))
	}

	dec, err := a.eng.ProjectCapabilities(ctx.Context(), userID, projectID)
	if err != nil {
		return nil, false, mapError(err)
	}

	action := portier.ActionView
	if req.Action != "" {
		action = portier.Action(req.Action)
	}
	allowed, err := dec.Capabilities.Allows(action)
	if err != nil {
		return nil, false, mapError(err)
	}

	return &AccessCheckResponse{
		Allowed:      allowed,
		Decision:     string(dec.Decision),
		Reason:       dec.Reason,
		Capabilities: dec.Capabilities,
		EvalTimeNs:   dec.EvalTimeNs,
	}, allowed, nil
}

func (a *API) orgCheck(ctx forge.Context, req *OrgCheckRequest) (*AllowedResponse, error) {
	if req.UserID == "" {
		return nil, forge.BadRequest("user_id is required")
	}
	userID, err := id.ParseUserID(req.UserID)
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid user ID: %v", err))
	}

	var org portier.ProjectOrg
	if req.PoleID != "" {
		org.PoleID, err = id.ParsePoleID(req.PoleID)
		if err != nil {
			return nil, forge.BadRequest(fmt.Sprintf("invalid pole ID: %v", err))
		}
	}
	if req.DirectionID != "" {
		org.DirectionID, err = id.ParseDirectionID(req.DirectionID)
		if err != nil {
			return nil, forge.BadRequest(fmt.Sprintf("invalid direction ID: %v", err))
		}
	}
	if req.ServiceID != "" {
		org.ServiceID, err = id.ParseServiceID(req.ServiceID)
		if err != nil {
			return nil, forge.BadRequest(fmt.Sprintf("invalid service ID: %v", err))
		}
	}

	allowed, err := a.eng.CanAccessOrg(ctx.Context(), userID, org)
	if err != nil {
		return nil, mapError(err)
	}

	resp := &AllowedResponse{Allowed: allowed}
	return resp, ctx.JSON(http.StatusOK, resp)
}

func (a *API) taskEditCheck(ctx forge.Context, req *TaskEditCheckRequest) (*AllowedResponse, error) {
	if req.UserID == "" || req.ProjectID == "" {
		return nil, forge.BadRequest("user_id and project_id are required")
	}
	userID, err := id.ParseUserID(req.UserID)
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid user ID: %v", err))
	}
	projectID, err := id.ParseProjectID(req.ProjectID)
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid project ID: %v", err))
	}
	var assigneeID id.UserID
	if req.AssigneeID != "" {
		assigneeID, err = id.ParseUserID(req.AssigneeID)
		if err != nil {
			return nil, forge.BadRequest(fmt.Sprintf("invalid assignee ID: %v", err))
		}
	}

	allowed, err := a.eng.CanEditTask(ctx.Context(), userID, projectID, assigneeID)
	if err != nil {
		return nil, mapError(err)
	}

	resp := &AllowedResponse{Allowed: allowed}
	return resp, ctx.JSON(http.StatusOK, resp)
}

func (a *API) accessibleEntities(ctx forge.Context, req *GetAccessibleEntitiesRequest) (*AccessibleEntitiesResponse, error) {
	if req.UserID == "" {
		return nil, forge.BadRequest("user_id is required")
	}
	userID, err := id.ParseUserID(req.UserID)
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid user ID: %v", err))
	}

	set, err := a.eng.AccessibleEntities(ctx.Context(), userID)
	if err != nil {
		return nil, mapError(err)
	}

	resp := &AccessibleEntitiesResponse{
		Poles:      set.PoleIDs(),
		Directions: set.DirectionIDs(),
		Services:   set.ServiceIDs(),
	}
	return resp, ctx.JSON(http.StatusOK, resp)
}
