package pipeline

import "time"

// Names identifying which timestamp a blocker points at.
const (
	TimeNameMovedToStage          = "moved_to_stage_at"
	TimeNameAvailabilityRequested = "availability_requested_at"
	TimeNameAvailabilityReceived  = "availability_received_at"
	TimeNameInterviewDate         = "interview_date"
)

// StageStatus derives where the application sits inside its current stage.
// Interview-level signals dominate availability-level signals: once interviews
// exist, the availability fields are stale and must not be consulted.
func (a *Application) StageStatus() StageStatus {
	if len(a.Interviews) > 0 {
		if a.allInterviewsComplete() {
			return StatusPendingDecision
		}
		if a.anyInterviewAwaitingFeedback() {
			return StatusPendingScorecard
		}
		return StatusInterviewScheduled
	}

	if a.AvailabilityReceivedAt != nil {
		return StatusPendingScheduling
	}
	if a.AvailabilityRequestedAt != nil {
		return StatusWaitingForAvailability
	}
	return StatusPendingAvailabilityRequest
}

// TakeHomeStatus derives progress through a take-home stage. Exactly one of
// the three states holds for any (grading, submitted) pair.
func (a *Application) TakeHomeStatus() TakeHomeStatus {
	if a.TakeHomeGrading != nil {
		return TakeHomePendingDecision
	}
	if a.TakeHomeSubmittedAt != nil {
		return TakeHomePendingGrading
	}
	return TakeHomePendingSubmission
}

// Blocker maps the current stage status to the single timestamp the pipeline
// is waiting on. A nil result means the application is actively progressing
// (INTERVIEW_SCHEDULED) or the relevant timestamp is missing.
func (a *Application) Blocker() *ApplicationBlocker {
	status := a.StageStatus()

	switch status {
	case StatusPendingAvailabilityRequest:
		return newBlocker(status, TimeNameMovedToStage, a.MovedToStageAt)
	case StatusWaitingForAvailability:
		return newBlocker(status, TimeNameAvailabilityRequested, a.AvailabilityRequestedAt)
	case StatusPendingScheduling:
		return newBlocker(status, TimeNameAvailabilityReceived, a.AvailabilityReceivedAt)
	case StatusPendingScorecard, StatusPendingDecision:
		earliest := a.EarliestScheduledInterview()
		if earliest == nil {
			return nil
		}
		return newBlocker(status, TimeNameInterviewDate, earliest.Date)
	}

	return nil
}

// EarliestScheduledInterview returns the scheduled interview confirmed first,
// comparing by CreatedAt. Interviews with no confirmation timestamp are
// excluded from the comparison.
func (a *Application) EarliestScheduledInterview() *ScheduledInterview {
	var earliest *ScheduledInterview
	for i := range a.Interviews {
		interview := &a.Interviews[i]
		if interview.CreatedAt == nil {
			continue
		}
		if earliest == nil || interview.CreatedAt.Before(*earliest.CreatedAt) {
			earliest = interview
		}
	}
	return earliest
}

// CompletedInterviewCount counts scheduled interviews in the COMPLETE state.
func (a *Application) CompletedInterviewCount() int {
	count := 0
	for i := range a.Interviews {
		if a.Interviews[i].Status == InterviewComplete {
			count++
		}
	}
	return count
}

func newBlocker(status StageStatus, name string, t *time.Time) *ApplicationBlocker {
	if t == nil {
		return nil
	}
	return &ApplicationBlocker{
		Status:           status,
		RelevantTimeName: name,
		RelevantTime:     *t,
	}
}

func (a *Application) allInterviewsComplete() bool {
	for i := range a.Interviews {
		if a.Interviews[i].Status != InterviewComplete {
			return false
		}
	}
	return true
}

func (a *Application) anyInterviewAwaitingFeedback() bool {
	for i := range a.Interviews {
		if a.Interviews[i].Status == InterviewAwaitingFeedback {
			return true
		}
	}
	return false
}
