package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/xraph/forge"

	"github.com/portier-io/portier/decisionlog"
	"github.com/portier-io/portier/id"
)

func (a *API) registerDecisionLogRoutes(router forge.Router) error {
	g := router.Group("/v1", forge.WithGroupTags("decision-logs"))

	if err := g.GET("/decision-logs", a.listDecisionLogs,
		forge.WithSummary("Query decision logs"),
		forge.WithDescription("Returns recorded permission decisions matching the filter, newest first."),
		forge.WithOperationID("listDecisionLogs"),
		forge.WithRequestSchema(ListDecisionLogsRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Decision log entries", []*decisionlog.Entry{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	if err := g.GET("/decision-logs/:logId", a.getDecisionLog,
		forge.WithSummary("Get decision log entry"),
		forge.WithOperationID("getDecisionLog"),
		forge.WithResponseSchema(http.StatusOK, "Decision log entry", &decisionlog.Entry{}),
		forge.WithErrorResponses(),
	); err != nil {
		return err
	}

	return g.POST("/decision-logs/purge", a.purgeDecisionLogs,
		forge.WithSummary("Purge decision logs"),
		forge.WithDescription("Removes entries older than the given timestamp. Returns the number removed."),
		forge.WithOperationID("purgeDecisionLogs"),
		forge.WithRequestSchema(PurgeDecisionLogsRequest{}),
		forge.WithResponseSchema(http.StatusOK, "Purge result", PurgeDecisionLogsResponse{}),
		forge.WithErrorResponses(),
	)
}

func (a *API) listDecisionLogs(ctx forge.Context, req *ListDecisionLogsRequest) ([]*decisionlog.Entry, error) {
	filter := &decisionlog.QueryFilter{
		Action:   req.Action,
		Decision: req.Decision,
		Limit:    defaultLimit(req.Limit),
		Offset:   req.Offset,
	}
	if req.UserID != "" {
		uid, err := id.ParseUserID(req.UserID)
		if err != nil {
			return nil, forge.BadRequest(fmt.Sprintf("invalid user_id: %v", err))
		}
		filter.UserID = &uid
	}
	if req.ProjectID != "" {
		pid, err := id.ParseProjectID(req.ProjectID)
		if err != nil {
			return nil, forge.BadRequest(fmt.Sprintf("invalid project_id: %v", err))
		}
		filter.ProjectID = &pid
	}
	if req.After != "" {
		t, err := time.Parse(time.RFC3339, req.After)
		if err != nil {
			return nil, forge.BadRequest(fmt.Sprintf("invalid after timestamp: %v", err))
		}
		filter.After = &t
	}
	if req.Before != "" {
		t, err := time.Parse(time.RFC3339, req.Before)
		if err != nil {
			return nil, forge.BadRequest(fmt.Sprintf("invalid before timestamp: %v", err))
		}
		filter.Before = &t
	}

	entries, err := a.eng.Store().ListDecisionLogs(ctx.Context(), filter)
	if err != nil {
		return nil, mapError(err)
	}

	return entries, ctx.JSON(http.StatusOK, entries)
}

func (a *API) getDecisionLog(ctx forge.Context, _ *struct{}) (*decisionlog.Entry, error) {
	logID, err := id.ParseDecisionLogID(ctx.Param("logId"))
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid decision log ID: %v", err))
	}

	e, err := a.eng.Store().GetDecisionLog(ctx.Context(), logID)
	if err != nil {
		return nil, mapError(err)
	}

	return e, ctx.JSON(http.StatusOK, e)
}

func (a *API) purgeDecisionLogs(ctx forge.Context, req *PurgeDecisionLogsRequest) (*PurgeDecisionLogsResponse, error) {
	if req.Before == "" {
		return nil, forge.BadRequest("before is required")
	}
	before, err := time.Parse(time.RFC3339, req.Before)
	if err != nil {
		return nil, forge.BadRequest(fmt.Sprintf("invalid before timestamp: %v", err))
	}

	removed, err := a.eng.Store().PurgeDecisionLogs(ctx.Context(), before)
	if err != nil {
		return nil, mapError(err)
	}

	resp := &PurgeDecisionLogsResponse{Removed: removed}

	return resp, ctx.JSON(http.StatusOK, resp)
}
