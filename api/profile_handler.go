package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/xraph/forge"

	"github.com/portier-io/portier"
	"github.com/portier-io/portier/id"
	"github.com/portier-io/portier/profile"
)

func (a *API) registerProfileRoutes(router forge.Router) error {
	g := router.Group("/v1", forge.WithGroupTags("profiles"))

	if err := g.POST("/profiles", a.createProfile,
		forge.WithSummary("Create profile"),
		forge.WithOperationID("createProfile"),
		forge.WithRequestSchema(CreateProfileRequest{}),
		forge.WithCreatedResponse(&profile.Profile{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.GET("/profiles/:userId", a.getProfile,
		forge.WithSummary("Get profile"),
		forge.WithOperationID("getProfile"),
		forge.WithResponseSchema(http.StatusOK, "Profile details", &profile.Profile{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.PUT("/profiles/:userId", a.updateProfile,
		forge.WithSummary("Update profile"),
		forge.WithOperationID("updateProfile"),
		forge.WithRequestSchema(UpdateProfileRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Updated profile", &profile.Profile{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.DELETE("/profiles/:userId", a.deleteProfile,
		forge.WithSummary("Delete profile"),
		forge.WithDescription("Deletes a profile together with its role grants."),
		forge.WithOperationID("deleteProfile"),
		forge.WithNoContentResponse(),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.GET("/profiles", a.listProfiles,
		forge.WithSummary("List profiles"),
		forge.WithOperationID("listProfiles"),
		forge.WithRequestSchema(ListProfilesRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Profile list", []*profile.Profile{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.GET("/profiles/:userId/roles", a.getRoles,
		forge.WithSummary("Get resolved roles"),
		forge.WithDescription("Returns the user's raw role labels and the highest role by precedence."),
		forge.WithOperationID("getProfileRoles"),
		forge.WithResponseSchema(http.StatusOK, "Resolved roles", RolesResponse{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.POST("/profiles/:userId/roles", a.grantRole,
		forge.WithSummary("Grant role"),
		forge.WithDescription("Adds a role label to the user. Granting a held label is a no-op."),
		forge.WithOperationID("grantRole"),
		forge.WithRequestSchema(GrantRoleRequest{}),
		forge.WithCreatedResponse(RolesResponse{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	return g.DELETE("/profiles/:userId/roles/:label", a.revokeRole,
		forge.WithSummary("Revoke role"),
		forge.WithOperationID("revokeRole"),
		forge.WithNoContentResponse(),
		forge.WithErrorResponses(),
	)
}

func (a *API) createProfile(ctx forge.Context, req *CreateProfileRequest) (*profile.Profile, error) {
	if req.Email == "" {
		return nil, forge.BadRequest("email is required")
	}

	userID := id.NewUserID()
	if req.ID != "" {
		parsed, err := id.ParseUserID(req.ID)
		if err != nil {
			return nil, forge.BadRequest(fmt.Sprintf("invalid profile ID: %v", err))
		}
		userID = parsed
	}

	now := time.Now()
	p := &profile.Profile{
		ID:          userID,
		Email:       req.Email,
		DisplayName: req.DisplayName,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := a.eng.Store().CreateProfile(ctx.Context(), p); err != nil {
		return nil, mapError(err)
	}

	return p, ctx.JSON(http.StatusCreated, p)
}

func (a *API) getProfile(ctx forge.Context, _ *GetProfileRequest) (*profile.Profile, error) {
	userID, err := id.ParseUserID(ctx.Param("userId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid profile ID: %v", err))
	}

	p, err := a.eng.Store().GetProfile(ctx.Context(), userID)
	if err != nil {
		return nil, mapError(err)
	}

	return p, ctx.JSON(http.StatusOK, p)
}

func (a *API) updateProfile(ctx forge.Context, req *UpdateProfileRequest) (*profile.Profile, error) {
	userID, err := id.ParseUserID(ctx.Param("userId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid profile ID: %v", err))
	}

	p, err := a.eng.Store().GetProfile(ctx.Context(), userID)
	if err != nil {
		return nil, mapError(err)
	}

	if req.Email != "" {
		p.Email = req.Email
	}
	if req.DisplayName != "" {
		p.DisplayName = req.DisplayName
	}
	p.UpdatedAt = time.Now()

	if err := a.eng.Store().UpdateProfile(ctx.Context(), p); err != nil {
		return nil, mapError(err)
	}

	return p, ctx.JSON(http.StatusOK, p)
}

func (a *API) deleteProfile(ctx forge.Context, _ *GetProfileRequest) (*struct{}, error) {
	userID, err := id.ParseUserID(ctx.Param("userId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid profile ID: %v", err))
	}

	if err := a.eng.Store().DeleteProfile(ctx.Context(), userID); err != nil {
		return nil, mapError(err)
	}

	// Assignments referencing the profile are dangling once it is gone.
	if err := a.eng.Store().DeleteAssignmentsByUser(ctx.Context(), userID); err != nil {
		return nil, mapError(err)
	}

	if a.eng.Cache() != nil {
		a.eng.Cache().InvalidateUser(ctx.Context(), userID)
	}

	return nil, ctx.NoContent(http.StatusNoContent)
}

func (a *API) listProfiles(ctx forge.Context, req *ListProfilesRequest) ([]*profile.Profile, error) {
	profiles, err := a.eng.Store().ListProfiles(ctx.Context(), &profile.ListFilter{
		Search: req.Search,
		Role:   req.Role,
		Limit:  defaultLimit(req.Limit),
		Offset: req.Offset,
	})
	if err != nil {
		return nil, mapError(err)
	}

	return profiles, ctx.JSON(http.StatusOK, profiles)
}

func (a *API) getRoles(ctx forge.Context, _ *GetProfileRequest) (*RolesResponse, error) {
	userID, err := id.ParseUserID(ctx.Param("userId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid profile ID: %v", err))
	}

	labels, err := a.eng.Store().ListRoleLabels(ctx.Context(), userID)
	if err != nil {
		return nil, mapError(err)
	}

	resp := &RolesResponse{
		Highest: string(portier.ResolveRoles(labels).Highest),
		Labels:  labels,
	}

	return resp, ctx.JSON(http.StatusOK, resp)
}

func (a *API) grantRole(ctx forge.Context, req *GrantRoleRequest) (*RolesResponse, error) {
	userID, err := id.ParseUserID(ctx.Param("userId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid profile ID: %v", err))
	}
	if req.Label == "" {
		return nil, forge.BadRequest("label is required")
	}

	if _, err := a.eng.Store().GetProfile(ctx.Context(), userID); err != nil {
		return nil, mapError(err)
	}

	if err := a.eng.Store().GrantRole(ctx.Context(), userID, req.Label); err != nil {
		return nil, mapError(err)
	}

	if a.eng.Cache() != nil {
		a.eng.Cache().InvalidateUser(ctx.Context(), userID)
	}
	if a.eng.Plugins() != nil {
		a.eng.Plugins().EmitRoleGranted(ctx.Context(), userID, req.Label)
	}

	labels, err := a.eng.Store().ListRoleLabels(ctx.Context(), userID)
	if err != nil {
		return nil, mapError(err)
	}

	resp := &RolesResponse{
		Highest: string(portier.ResolveRoles(labels).Highest),
		Labels:  labels,
	}

	return resp, ctx.JSON(http.StatusCreated, resp)
}

func (a *API) revokeRole(ctx forge.Context, _ *struct{}) (*struct{}, error) {
	userID, err := id.ParseUserID(ctx.Param("userId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid profile ID: %v", err))
	}
	label := ctx.Param("label")
	if label == "" {
		return nil, forge.BadRequest("label is required")
	}

	if err := a.eng.Store().RevokeRole(ctx.Context(), userID, label); err != nil {
		return nil, mapError(err)
	}

	if a.eng.Cache() != nil {
		a.eng.Cache().InvalidateUser(ctx.Context(), userID)
	}
	if a.eng.Plugins() != nil {
		a.eng.Plugins().EmitRoleRevoked(ctx.Context(), userID, label)
	}

	return nil, ctx.NoContent(http.StatusNoContent)
}
