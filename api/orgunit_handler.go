package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/xraph/forge"

	"github.com/portier-io/portier/id"
	"github.com/portier-io/portier/orgunit"
)

func (a *API) registerOrgUnitRoutes(router forge.Router) error {
	g := router.Group("/v1", forge.WithGroupTags("org-units"))

	if err := g.POST("/org-units", a.createUnit,
		forge.WithSummary("Create org unit"),
		forge.WithDescription("Creates a pole, direction, or service."),
		forge.WithOperationID("createUnit"),
		forge.WithRequestSchema(CreateUnitRequest{}),
		forge.WithCreatedResponse(&orgunit.Unit{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.GET("/org-units/:unitId", a.getUnit,
		forge.WithSummary("Get org unit"),
		forge.WithDescription("Returns details of a specific unit."),
		forge.WithOperationID("getUnit"),
		forge.WithResponseSchema(http.StatusOK, "Unit details", &orgunit.Unit{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.PUT("/org-units/:unitId", a.updateUnit,
		forge.WithSummary("Update org unit"),
		forge.WithDescription("Renames a unit. Tier and parent are immutable."),
		forge.WithOperationID("updateUnit"),
		forge.WithRequestSchema(UpdateUnitRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Updated unit", &orgunit.Unit{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.DELETE("/org-units/:unitId", a.deleteUnit,
		forge.WithSummary("Delete org unit"),
		forge.WithDescription("Deletes a unit and the assignments referencing it."),
		forge.WithOperationID("deleteUnit"),
		forge.WithNoContentResponse(),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.GET("/org-units", a.listUnits,
		forge.WithSummary("List org units"),
		forge.WithDescription("Lists units with optional filters."),
		forge.WithOperationID("listUnits"),
		forge.WithRequestSchema(ListUnitsRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Unit list", []*orgunit.Unit{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	return g.GET("/org-units/:unitId/children", a.listChildren,
		forge.WithSummary("List unit children"),
		forge.WithDescription("Lists the direct children of a unit."),
		forge.WithOperationID("listUnitChildren"),
		forge.WithResponseSchema(http.StatusOK, "Children", []*orgunit.Unit{}),
		forge.WithErrorResponses(),
	)
}

func (a *API) createUnit(ctx forge.Context, req *CreateUnitRequest) (*orgunit.Unit, error) {
	if req.Name == "" {
		return nil, forge.BadRequest("name is required")
	}
	kind := orgunit.Kind(req.Kind)
	if !kind.Valid() {
		return nil, forge.BadRequest("kind must be pole, direction, or service")
	}

	now := time.Now()
	u := &orgunit.Unit{
		Kind:      kind,
		Name:      req.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	switch kind {
	case orgunit.KindPole:
		u.ID = id.NewPoleID()
	case orgunit.KindDirection:
		u.ID = id.NewDirectionID()
	case orgunit.KindService:
		u.ID = id.NewServiceID()
	}

	if req.ParentID != "" {
		pid, err := id.Parse(req.ParentID)
		if err != nil {
			return nil, forge.BadRequest(fmt.Sprintf("invalid parent_id: %v", err))
		}
		u.ParentID = pid
	}

	if err := a.eng.Store().CreateUnit(ctx.Context(), u); err != nil {
		return nil, mapError(err)
	}

	if a.eng.Cache() != nil {
		a.eng.Cache().InvalidateAll(ctx.Context())
	}
	if a.eng.Plugins() != nil {
		a.eng.Plugins().EmitUnitCreated(ctx.Context(), u)
	}

	return u, ctx.JSON(http.StatusCreated, u)
}

func (a *API) getUnit(ctx forge.Context, _ *GetUnitRequest) (*orgunit.Unit, error) {
	unitID, err := id.Parse(ctx.Param("unitId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid unit ID: %v", err))
	}

	u, err := a.eng.Store().GetUnit(ctx.Context(), unitID)
	if err != nil {
		return nil, mapError(err)
	}

	return u, ctx.JSON(http.StatusOK, u)
}

func (a *API) updateUnit(ctx forge.Context, req *UpdateUnitRequest) (*orgunit.Unit, error) {
	unitID, err := id.Parse(ctx.Param("unitId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid unit ID: %v", err))
	}

	u, err := a.eng.Store().GetUnit(ctx.Context(), unitID)
	if err != nil {
		return nil, mapError(err)
	}

	if req.Name != "" {
		u.Name = req.Name
	}
	u.UpdatedAt = time.Now()

	if err := a.eng.Store().UpdateUnit(ctx.Context(), u); err != nil {
		return nil, mapError(err)
	}

	if a.eng.Plugins() != nil {
		a.eng.Plugins().EmitUnitUpdated(ctx.Context(), u)
	}

	return u, ctx.JSON(http.StatusOK, u)
}

func (a *API) deleteUnit(ctx forge.Context, _ *GetUnitRequest) (*struct{}, error) {
	unitID, err := id.Parse(ctx.Param("unitId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid unit ID: %v", err))
	}

	if err := a.eng.Store().DeleteUnit(ctx.Context(), unitID); err != nil {
		return nil, mapError(err)
	}
	// Grants referencing the unit are dead weight once it is gone.
	if err := a.eng.Store().DeleteAssignmentsByUnit(ctx.Context(), unitID); err != nil {
		return nil, mapError(err)
	}

	if a.eng.Cache() != nil {
		a.eng.Cache().InvalidateAll(ctx.Context())
	}
	if a.eng.Plugins() != nil {
		a.eng.Plugins().EmitUnitDeleted(ctx.Context(), unitID)
	}

	return nil, ctx.NoContent(http.StatusNoContent)
}

func (a *API) listUnits(ctx forge.Context, req *ListUnitsRequest) ([]*orgunit.Unit, error) {
	filter := &orgunit.ListFilter{
		Kind:   orgunit.Kind(req.Kind),
		Search: req.Search,
		Limit:  defaultLimit(req.Limit),
		Offset: req.Offset,
	}
	if req.ParentID != "" {
		pid, err := id.Parse(req.ParentID)
		if err != nil {
			return nil, forge.BadRequest(fmt.Sprintf("invalid parent_id: %v", err))
		}
		filter.ParentID = &pid
	}

	units, err := a.eng.Store().ListUnits(ctx.Context(), filter)
	if err != nil {
		return nil, mapError(err)
	}

	return units, ctx.JSON(http.StatusOK, units)
}

func (a *API) listChildren(ctx forge.Context, _ *GetUnitRequest) ([]*orgunit.Unit, error) {
	unitID, err := id.Parse(ctx.Param("unitId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid unit ID: %v", err))
	}

	children, err := a.eng.Store().ListChildren(ctx.Context(), unitID)
	if err != nil {
		return nil, mapError(err)
	}

	return children, ctx.JSON(http.StatusOK, children)
}
