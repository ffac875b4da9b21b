package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ApprovalDecisionRequest is the body of POST /api/v1/approvals/:id/decision.
type ApprovalDecisionRequest struct {
	ApproverID string `json:"approverId"`
	Approved   bool   `json:"approved"`
	Comment    string `json:"comment"`
}

// DecideApproval handles POST /api/v1/approvals/:id/decision. A decision on
// a record that is no longer pending returns 409 without changing anything.
func (s *Server) DecideApproval(ctx echo.Context) error {
	approvalID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid approval id")
	}

	var request ApprovalDecisionRequest
	if err = ctx.Bind(&request); err != nil {
		return badRequest(ctx, "invalid request body")
	}
	if request.ApproverID == "" {
		return badRequest(ctx, "approverId is required")
	}

	applied, err := s.approvals.ProcessApproval(
		ctx.Request().Context(), approvalID, request.ApproverID, request.Approved, request.Comment)
	if err != nil {
		return fail(ctx, err)
	}
	if !applied {
		return conflict(ctx, "approval is already resolved")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetPendingApprovals handles GET /api/v1/approvals/pending with an optional
// approver query parameter matching approver ID or role.
func (s *Server) GetPendingApprovals(ctx echo.Context) error {
	records, err := s.approvals.GetPendingApprovals(ctx.Request().Context(), ctx.QueryParam("approver"))
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, approvalsToResponse(records))
}

// GetApprovalHistory handles GET /api/v1/orders/:id/approvals.
func (s *Server) GetApprovalHistory(ctx echo.Context) error {
	orderID, err := pathUUID(ctx)
	if err != nil {
		return badRequest(ctx, "invalid order id")
	}

	records, err := s.approvals.GetApprovalHistory(ctx.Request().Context(), orderID)
	if err != nil {
		return fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, approvalsToResponse(records))
}
