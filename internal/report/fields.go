package report

import (
	"fmt"
	"strconv"
	"time"

	"github.com/umutgultepe/recruiting-analyst/internal/pipeline"
)

const timeLayout = "2006-01-02 15:04:05"

// FieldGroup publishes a fixed ordered set of report columns and projects an
// application onto them. Values and Headers are always 1:1. Groups share no
// state; the same application and clock always produce the same tuple.
type FieldGroup interface {
	Headers() []string
	Values(application *pipeline.Application, now time.Time) []string
}

// Identifier emits the candidate name and a permalink into the ATS.
type Identifier struct {
	Domain string
}

func (g Identifier) Headers() []string {
	return []string{"candidate_name", "greenhouse_link"}
}

func (g Identifier) Values(application *pipeline.Application, _ time.Time) []string {
	link := fmt.Sprintf("https://%s/people/%s/applications/%s",
		g.Domain, application.CandidateID, application.ID)
	return []string{application.CandidateName, link}
}

// StageType emits the derived stage kind and the matching status string.
type StageType struct{}

func (StageType) Headers() []string {
	return []string{"stage_type", "stage_status"}
}

func (StageType) Values(application *pipeline.Application, _ time.Time) []string {
	switch {
	case application.IsTakeHomeStage():
		return []string{"take home", string(application.TakeHomeStatus())}
	case application.IsRelevantStage():
		return []string{"interview", string(application.StageStatus())}
	default:
		return []string{"other", "Non-relevant"}
	}
}

type CurrentStage struct{}

func (CurrentStage) Headers() []string {
	return []string{"current_stage"}
}

func (CurrentStage) Values(application *pipeline.Application, _ time.Time) []string {
	return []string{application.CurrentStage.Name}
}

type StageTime struct{}

func (StageTime) Headers() []string {
	return []string{"moved_to_stage_at"}
}

func (StageTime) Values(application *pipeline.Application, _ time.Time) []string {
	return []string{formatTime(application.MovedToStageAt)}
}

type TakeHomeTimes struct{}

func (TakeHomeTimes) Headers() []string {
	return []string{"take_home_submitted_at", "take_home_graded_at"}
}

func (TakeHomeTimes) Values(application *pipeline.Application, _ time.Time) []string {
	gradedAt := ""
	if application.TakeHomeGrading != nil {
		gradedAt = application.TakeHomeGrading.SubmittedAt.Format(timeLayout)
	}
	return []string{formatTime(application.TakeHomeSubmittedAt), gradedAt}
}

// InterviewTimes emits availability timestamps plus the confirmation time and
// start of the earliest-confirmed interview.
type InterviewTimes struct{}

func (InterviewTimes) Headers() []string {
	return []string{"availability_requested_at", "availability_received_at", "interview_scheduled_at", "interview_date"}
}

func (InterviewTimes) Values(application *pipeline.Application, _ time.Time) []string {
	scheduledAt := ""
	date := ""
	if earliest := application.EarliestScheduledInterview(); earliest != nil {
		scheduledAt = formatTime(earliest.CreatedAt)
		date = formatTime(earliest.Date)
	}
	return []string{
		formatTime(application.AvailabilityRequestedAt),
		formatTime(application.AvailabilityReceivedAt),
		scheduledAt,
		date,
	}
}

type InterviewCounts struct{}

func (InterviewCounts) Headers() []string {
	return []string{"scheduled_interviews_count", "completed_interviews_count"}
}

func (InterviewCounts) Values(application *pipeline.Application, _ time.Time) []string {
	return []string{
		strconv.Itoa(len(application.Interviews)),
		strconv.Itoa(application.CompletedInterviewCount()),
	}
}

// Dimensions emits the organizational context of the application's job.
type Dimensions struct{}

func (Dimensions) Headers() []string {
	return []string{"recruiter_name", "location", "department"}
}

func (Dimensions) Values(application *pipeline.Application, _ time.Time) []string {
	job := application.Job

	recruiter := "unknown"
	if primary := job.PrimaryRecruiter(); primary != nil {
		recruiter = primary.FullName()
	}

	location := "Unknown"
	if job.Location.Name != "" {
		location = job.Location.Name
	}

	department := "Unknown"
	if primary := job.PrimaryDepartment(); primary != nil {
		department = primary.Name
	}

	return []string{recruiter, location, department}
}

// TakeHomePendingGrading emits how long a submitted take-home has been
// waiting for a grade, empty once graded or before submission.
type TakeHomePendingGrading struct{}

func (TakeHomePendingGrading) Headers() []string {
	return []string{"hours_pending_grading"}
}

func (TakeHomePendingGrading) Values(application *pipeline.Application, now time.Time) []string {
	if application.TakeHomeSubmittedAt == nil || application.TakeHomeGrading != nil {
		return []string{""}
	}
	return []string{formatHours(now.Sub(*application.TakeHomeSubmittedAt))}
}

// BlockContext emits which timestamp the application is blocked on and for
// how many hours.
type BlockContext struct{}

func (BlockContext) Headers() []string {
	return []string{"last_event_time_reference", "blocked_hours"}
}

func (BlockContext) Values(application *pipeline.Application, now time.Time) []string {
	blocker := application.Blocker()
	if blocker == nil {
		return []string{"", ""}
	}
	return []string{blocker.RelevantTimeName, formatHours(blocker.TimeElapsed(now))}
}

func formatTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(timeLayout)
}

// formatHours renders a duration as hours rounded to one decimal.
func formatHours(d time.Duration) string {
	return strconv.FormatFloat(d.Hours(), 'f', 1, 64)
}
