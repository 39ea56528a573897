package leave

import (
	"errors"
	"strings"
	"time"

	"hrconsole/internal/domain/auth"
)

var (
	ErrNotFound              = errors.New("leave: request not found")
	ErrInvalidState          = errors.New("leave: request is no longer pending")
	ErrInvalidTransition     = errors.New("leave: request already decided")
	ErrDecisionForbidden     = errors.New("leave: approval requires an elevated role")
	ErrRefusalReasonRequired = errors.New("leave: refusal reason is required")
	ErrInvalidRange          = errors.New("leave: end date before start date")
	ErrInconsistentStatus    = errors.New("leave: refusal reason does not match status")
)

// Resolution is the display status of a request. Approval is a workflow
// event, so the stored status is taken as-is rather than inferred from dates.
type Resolution struct {
	Status        Status `json:"status"`
	RefusalReason string `json:"refusalReason,omitempty"`
}

func ResolveStatus(req LeaveRequest) Resolution {
	res := Resolution{Status: req.Status}
	if req.Status == StatusRefused {
		res.RefusalReason = req.RefusalReason
	}
	return res
}

// ValidateStatus checks the status/refusal reason invariant on a stored record.
func ValidateStatus(req LeaveRequest) error {
	switch req.Status {
	case StatusPending, StatusApproved:
		if req.RefusalReason != "" {
			return ErrInconsistentStatus
		}
	case StatusRefused:
		if strings.TrimSpace(req.RefusalReason) == "" {
			return ErrInconsistentStatus
		}
	default:
		return ErrInconsistentStatus
	}
	return nil
}

// Approve moves a pending request to approved. Only elevated actors decide,
// whoever created the request.
func Approve(req LeaveRequest, actor *auth.Actor, at time.Time) (LeaveRequest, error) {
	if err := checkDecision(req, actor); err != nil {
		return req, err
	}
	return decided(req, actor, StatusApproved, "", at), nil
}

// Refuse moves a pending request to refused with a non-blank reason.
func Refuse(req LeaveRequest, actor *auth.Actor, reason string, at time.Time) (LeaveRequest, error) {
	if err := checkDecision(req, actor); err != nil {
		return req, err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return req, ErrRefusalReasonRequired
	}
	return decided(req, actor, StatusRefused, reason, at), nil
}

func checkDecision(req LeaveRequest, actor *auth.Actor) error {
	if !auth.CanDecide(actor) {
		return ErrDecisionForbidden
	}
	if req.Status != StatusPending {
		return ErrInvalidTransition
	}
	return nil
}

func decided(req LeaveRequest, actor *auth.Actor, status Status, reason string, at time.Time) LeaveRequest {
	out := req
	out.Status = status
	out.RefusalReason = reason
	out.DecidedBy = actor.ID
	decidedAt := at
	out.DecidedAt = &decidedAt
	return out
}

// CalculateDays returns the inclusive calendar day count between start and end.
func CalculateDays(start, end time.Time) (int, error) {
	s := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	e := time.Date(end.Year(), end.Month(), end.Day(), 0, 0, 0, 0, time.UTC)
	if e.Before(s) {
		return 0, ErrInvalidRange
	}
	return int(e.Sub(s).Hours()/24) + 1, nil
}
