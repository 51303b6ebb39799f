package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/xraph/forge"

	"github.com/portier-io/portier/id"
	"github.com/portier-io/portier/project"
)

func (a *API) registerProjectRoutes(router forge.Router) error {
	g := router.Group("/v1", forge.WithGroupTags("projects"))

	if err := g.POST("/projects", a.createProject,
		forge.WithSummary("Create project"),
		forge.WithDescription("Creates a new project."),
		forge.WithOperationID("createProject"),
		forge.WithRequestSchema(CreateProjectRequest{}),
		forge.WithCreatedResponse(&project.Project{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.GET("/projects/:projectId", a.getProject,
		forge.WithSummary("Get project"),
		forge.WithOperationID("getProject"),
		forge.WithResponseSchema(http.StatusOK, "Project details", &project.Project{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.PUT("/projects/:projectId", a.updateProject,
		forge.WithSummary("Update project"),
		forge.WithOperationID("updateProject"),
		forge.WithRequestSchema(UpdateProjectRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Updated project", &project.Project{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.DELETE("/projects/:projectId", a.deleteProject,
		forge.WithSummary("Delete project"),
		forge.WithDescription("Deletes a project and its membership records."),
		forge.WithOperationID("deleteProject"),
		forge.WithNoContentResponse(),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.GET("/projects", a.listProjects,
		forge.WithSummary("List projects"),
		forge.WithOperationID("listProjects"),
		forge.WithRequestSchema(ListProjectsRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Project list", []*project.Project{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.POST("/projects/:projectId/members", a.addMember,
		forge.WithSummary("Add project member"),
		forge.WithOperationID("addProjectMember"),
		forge.WithRequestSchema(AddMemberRequest{}),
		forge.WithCreatedResponse(&project.Member{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.DELETE("/projects/:projectId/members/:userId", a.removeMember,
		forge.WithSummary("Remove project member"),
		forge.WithOperationID("removeProjectMember"),
		forge.WithNoContentResponse(),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	return g.GET("/projects/:projectId/members", a.listMembers,
		forge.WithSummary("List project members"),
		forge.WithOperationID("listProjectMembers"),
		forge.WithResponseSchema(http.StatusOK, "Member list", []*project.Member{}),
		forge.WithErrorResponses(),
	)
}

func (a *API) createProject(ctx forge.Context, req *CreateProjectRequest) (*project.Project, error) {
	if req.Name == "" {
		return nil, forge.BadRequest("name is required")
	}

	now := time.Now()
	p := &project.Project{
		ID:             id.NewProjectID(),
		Name:           req.Name,
		ProjectManager: req.ProjectManager,
		Status:         project.StatusActive,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if req.Status != "" {
		p.Status = project.Status(req.Status)
	}

	var err error
	if req.PoleID != "" {
		p.PoleID, err = id.ParsePoleID(req.PoleID)
		if err != nil {
			return nil, forge.BadRequest(fmt.Sprintf("invalid pole_id: %v", err))
		}
	}
	if req.DirectionID != "" {
		p.DirectionID, err = id.ParseDirectionID(req.DirectionID)
		if err != nil {
			return nil, forge.BadRequest(fmt.Sprintf("invalid direction_id: %v", err))
		}
	}
	if req.ServiceID != "" {
		p.ServiceID, err = id.ParseServiceID(req.ServiceID)
		if err != nil {
			return nil, forge.BadRequest(fmt.Sprintf("invalid service_id: %v", err))
		}
	}
	if req.OwnerID != "" {
		p.OwnerID, err = id.ParseUserID(req.OwnerID)
		if err != nil {
			return nil, forge.BadRequest(fmt.Sprintf("invalid owner_id: %v", err))
		}
	}
	if req.ManagerID != "" {
		p.ManagerID, err = id.ParseUserID(req.ManagerID)
		if err != nil {
			return nil, forge.BadRequest(fmt.Sprintf("invalid manager_id: %v", err))
		}
	}

	if err := a.eng.Store().CreateProject(ctx.Context(), p); err != nil {
		return nil, mapError(err)
	}

	return p, ctx.JSON(http.StatusCreated, p)
}

func (a *API) getProject(ctx forge.Context, _ *GetProjectRequest) (*project.Project, error) {
	projectID, err := id.ParseProjectID(ctx.Param("projectId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid project ID: %v", err))
	}

	p, err := a.eng.Store().GetProject(ctx.Context(), projectID)
	if err != nil {
		return nil, mapError(err)
	}

	return p, ctx.JSON(http.StatusOK, p)
}

func (a *API) updateProject(ctx forge.Context, req *UpdateProjectRequest) (*project.Project, error) {
	projectID, err := id.ParseProjectID(ctx.Param("projectId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid project ID: %v", err))
	}

	p, err := a.eng.Store().GetProject(ctx.Context(), projectID)
	if err != nil {
		return nil, mapError(err)
	}

	if req.Name != "" {
		p.Name = req.Name
	}
	if req.Status != "" {
		p.Status = project.Status(req.Status)
	}
	if req.ProjectManager != nil {
		p.ProjectManager = *req.ProjectManager
	}
	if req.PoleID != nil {
		p.PoleID, err = parseOptional(*req.PoleID, id.ParsePoleID)
		if err != nil {
			return nil, forge.BadRequest(fmt.Sprintf("invalid pole_id: %v", err))
		}
	}
	if req.DirectionID != nil {
		p.DirectionID, err = parseOptional(*req.DirectionID, id.ParseDirectionID)
		if err != nil {
			return nil, forge.BadRequest(fmt.Sprintf("invalid direction_id: %v", err))
		}
	}
	if req.ServiceID != nil {
		p.ServiceID, err = parseOptional(*req.ServiceID, id.ParseServiceID)
		if err != nil {
			return nil, forge.BadRequest(fmt.Sprintf("invalid service_id: %v", err))
		}
	}
	if req.OwnerID != nil {
		p.OwnerID, err = parseOptional(*req.OwnerID, id.ParseUserID)
		if err != nil {
			return nil, forge.BadRequest(fmt.Sprintf("invalid owner_id: %v", err))
		}
	}
	if req.ManagerID != nil {
		p.ManagerID, err = parseOptional(*req.ManagerID, id.ParseUserID)
		if err != nil {
			return nil, forge.BadRequest(fmt.Sprintf("invalid manager_id: %v", err))
		}
	}
	p.UpdatedAt = time.Now()

	if err := a.eng.Store().UpdateProject(ctx.Context(), p); err != nil {
		return nil, mapError(err)
	}

	if a.eng.Cache() != nil {
		a.eng.Cache().InvalidateProject(ctx.Context(), projectID)
	}

	return p, ctx.JSON(http.StatusOK, p)
}

func (a *API) deleteProject(ctx forge.Context, _ *GetProjectRequest) (*struct{}, error) {
	projectID, err := id.ParseProjectID(ctx.Param("projectId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid project ID: %v", err))
	}

	if err := a.eng.Store().DeleteProject(ctx.Context(), projectID); err != nil {
		return nil, mapError(err)
	}

	if a.eng.Cache() != nil {
		a.eng.Cache().InvalidateProject(ctx.Context(), projectID)
	}

	return nil, ctx.NoContent(http.StatusNoContent)
}

func (a *API) listProjects(ctx forge.Context, req *ListProjectsRequest) ([]*project.Project, error) {
	filter := &project.ListFilter{
		Status: project.Status(req.Status),
		Search: req.Search,
		Limit:  defaultLimit(req.Limit),
		Offset: req.Offset,
	}
	var err error
	if req.PoleID != "" {
		pid, perr := id.ParsePoleID(req.PoleID)
		if perr != nil {
			return nil, forge.BadRequest(fmt.Sprintf("invalid pole_id: %v", perr))
		}
		filter.PoleID = &pid
	}
	if req.DirectionID != "" {
		did, derr := id.ParseDirectionID(req.DirectionID)
		if derr != nil {
			return nil, forge.BadRequest(fmt.Sprintf("invalid direction_id: %v", derr))
		}
		filter.DirectionID = &did
	}
	if req.ServiceID != "" {
		sid, serr := id.ParseServiceID(req.ServiceID)
		if serr != nil {
			return nil, forge.BadRequest(fmt.Sprintf("invalid service_id: %v", serr))
		}
		filter.ServiceID = &sid
	}
	if req.OwnerID != "" {
		oid, oerr := id.ParseUserID(req.OwnerID)
		if oerr != nil {
			return nil, forge.BadRequest(fmt.Sprintf("invalid owner_id: %v", oerr))
		}
		filter.OwnerID = &oid
	}

	projects, err := a.eng.Store().ListProjects(ctx.Context(), filter)
	if err != nil {
		return nil, mapError(err)
	}

	return projects, ctx.JSON(http.StatusOK, projects)
}

func (a *API) addMember(ctx forge.Context, req *AddMemberRequest) (*project.Member, error) {
	projectID, err := id.ParseProjectID(ctx.Param("projectId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid project ID: %v", err))
	}
	if req.UserID == "" {
		return nil, forge.BadRequest("user_id is required")
	}
	userID, err := id.ParseUserID(req.UserID)
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid user ID: %v", err))
	}

	// The project must exist; membership rows never outlive it.
	if _, err := a.eng.Store().GetProject(ctx.Context(), projectID); err != nil {
		return nil, mapError(err)
	}

	m := &project.Member{
		ProjectID: projectID,
		UserID:    userID,
		CreatedAt: time.Now(),
	}
	if req.AddedBy != "" {
		ab, err := id.ParseUserID(req.AddedBy)
		if err != nil {
			return nil, forge.BadRequest(fmt.Sprintf("invalid added_by: %v", err))
		}
		m.AddedBy = ab
	}

	if err := a.eng.Store().AddProjectMember(ctx.Context(), m); err != nil {
		return nil, mapError(err)
	}

	if a.eng.Cache() != nil {
		a.eng.Cache().InvalidateUser(ctx.Context(), userID)
	}

	return m, ctx.JSON(http.StatusCreated, m)
}

func (a *API) removeMember(ctx forge.Context, _ *struct{}) (*struct{}, error) {
	projectID, err := id.ParseProjectID(ctx.Param("projectId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid project ID: %v", err))
	}
	userID, err := id.ParseUserID(ctx.Param("userId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid user ID: %v", err))
	}

	if err := a.eng.Store().RemoveProjectMember(ctx.Context(), projectID, userID); err != nil {
		return nil, mapError(err)
	}

	if a.eng.Cache() != nil {
		a.eng.Cache().InvalidateUser(ctx.Context(), userID)
	}

	return nil, ctx.NoContent(http.StatusNoContent)
}

func (a *API) listMembers(ctx forge.Context, _ *GetProjectRequest) ([]*project.Member, error) {
	projectID, err := id.ParseProjectID(ctx.Param("projectId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid project ID: %v", err))
	}

	members, err := a.eng.Store().ListProjectMembers(ctx.Context(), projectID)
	if err != nil {
		return nil, mapError(err)
	}

	return members, ctx.JSON(http.StatusOK, members)
}

// parseOptional parses an ID field where the empty string clears it.
func parseOptional(s string, parse func(string) (id.ID, error)) (id.ID, error) {
	if s == "" {
		return id.Nil, nil
	}
	return parse(s)
}
