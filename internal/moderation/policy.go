package moderation

import (
	"time"

	"memorywall/internal/model"
)

const (
	DefaultAutoApprovalDelay = 5 * time.Second
	MaxAutoApprovalDelay     = 3600
)

type PlanKind int

const (
	PlanManual PlanKind = iota
	PlanDelayedAuto
)

func (k PlanKind) String() string {
	switch k {
	case PlanManual:
		return "manual"
	case PlanDelayedAuto:
		return "delayed_auto"
	default:
		return "unknown"
	}
}

// ApprovalPlan describes how a freshly created submission becomes approved.
// Delay is only meaningful for PlanDelayedAuto.
type ApprovalPlan struct {
	Kind  PlanKind
	Delay time.Duration
}

func (p ApprovalPlan) ScheduleRequired() bool {
	return p.Kind == PlanDelayedAuto
}

// DecideApprovalPolicy maps event settings to an approval plan. A missing
// manual_approval means auto-approve, a missing or negative delay means 5s.
// Every plan starts the submission unapproved; a zero delay still goes
// through the scheduler.
func DecideApprovalPolicy(settings model.EventSettings) ApprovalPlan {
	if settings.ManualApproval != nil && *settings.ManualApproval {
		return ApprovalPlan{Kind: PlanManual}
	}

	delay := DefaultAutoApprovalDelay
	if settings.AutoApprovalDelay != nil && *settings.AutoApprovalDelay >= 0 {
		delay = time.Duration(*settings.AutoApprovalDelay) * time.Second
	}

	return ApprovalPlan{Kind: PlanDelayedAuto, Delay: delay}
}
