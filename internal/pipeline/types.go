package pipeline

import (
	"fmt"
	"time"
)

// RoleFunction classifies what kind of work a job is hiring for.
type RoleFunction string

const (
	FunctionEngineer RoleFunction = "Engineer"
	FunctionOther    RoleFunction = "Other"
)

// Seniority is the level attached to a role. Non-engineering roles always
// carry SeniorityUnknown.
type Seniority string

const (
	SenioritySWE1    Seniority = "SWE1"
	SenioritySWE2    Seniority = "SWE2"
	SenioritySenior  Seniority = "Senior"
	SeniorityStaff   Seniority = "Staff"
	SeniorityUnknown Seniority = "Unknown"
)

// StageStatus describes where an application sits inside its current stage.
// The values are the strings rendered into reports.
type StageStatus string

const (
	StatusPendingAvailabilityRequest StageStatus = "PENDING_AVAILABILITY_REQUEST"
	StatusWaitingForAvailability     StageStatus = "WAITING_FOR_AVAILABILITY"
	StatusPendingScheduling          StageStatus = "PENDING_SCHEDULING"
	StatusInterviewScheduled         StageStatus = "INTERVIEW_SCHEDULED"
	StatusPendingScorecard           StageStatus = "PENDING_SCORECARD"
	StatusPendingDecision            StageStatus = "PENDING_DECISION"
)

// TakeHomeStatus describes progress through a take-home stage.
type TakeHomeStatus string

const (
	TakeHomePendingSubmission TakeHomeStatus = "PENDING_SUBMISSION"
	TakeHomePendingGrading    TakeHomeStatus = "PENDING_GRADING"
	TakeHomePendingDecision   TakeHomeStatus = "PENDING_DECISION"
)

// InterviewStatus is the state of one scheduled interview.
type InterviewStatus string

const (
	InterviewScheduled        InterviewStatus = "SCHEDULED"
	InterviewAwaitingFeedback InterviewStatus = "AWAITING_FEEDBACK"
	InterviewComplete         InterviewStatus = "COMPLETE"
)

// ScorecardDecision is the overall recommendation submitted on a scorecard.
type ScorecardDecision string

const (
	DecisionDefinitelyNot ScorecardDecision = "DEFINITELY_NOT"
	DecisionNo            ScorecardDecision = "NO"
	DecisionNoDecision    ScorecardDecision = "NO_DECISION"
	DecisionYes           ScorecardDecision = "YES"
	DecisionStrongYes     ScorecardDecision = "STRONG_YES"
)

// ParseScorecardDecision maps an upstream overall_recommendation value onto a
// ScorecardDecision. Unrecognized values are an error, never a silent default.
func ParseScorecardDecision(s string) (ScorecardDecision, error) {
	switch ScorecardDecision(s) {
	case DecisionDefinitelyNot, DecisionNo, DecisionNoDecision, DecisionYes, DecisionStrongYes:
		return ScorecardDecision(s), nil
	}
	return "", fmt.Errorf("unknown scorecard decision: %q", s)
}

type User struct {
	ID        string
	FirstName string
	LastName  string
}

func (u User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// Location is represented as an Office upstream.
type Location struct {
	ID   string
	Name string
}

type Department struct {
	ID   string
	Name string
}

type Role struct {
	Function  RoleFunction
	Seniority Seniority
}

// Interview is a template-level interview defined on a job stage, not a
// per-candidate instance.
type Interview struct {
	ID          string
	Name        string
	Schedulable bool
}

// JobStage is one named step of a job's hiring pipeline template.
type JobStage struct {
	ID         string
	Name       string
	Interviews []Interview
}

// Job is a posting with its hiring team and pipeline template. Stages is nil
// until filled by the cache-refresh path; first entries of the team and
// department slices are the primary ones.
type Job struct {
	ID             string
	Name           string
	Location       Location
	CreatedAt      time.Time
	OpenedAt       *time.Time
	HiringManagers []User
	Recruiters     []User
	Coordinators   []User
	Sourcers       []User
	Departments    []Department
	Role           Role
	Stages         []JobStage
}

// Scorecard is feedback submitted for one completed interview.
type Scorecard struct {
	ID          string
	SubmittedAt time.Time
	By          User
	Decision    ScorecardDecision
}

// TakeHomeGrading records who graded a take-home test and when.
type TakeHomeGrading struct {
	ID          string
	SubmittedAt time.Time
	By          User
}

// ScheduledInterview is a per-candidate instance of a template interview.
// CreatedAt is the moment scheduling was confirmed; it may be nil when no
// confirmation event could be recovered from the activity feed.
type ScheduledInterview struct {
	ID           string
	Interview    Interview
	CreatedAt    *time.Time
	Date         *time.Time
	Status       InterviewStatus
	Interviewers []User
	Scorecards   []Scorecard
}

// Application is one candidate's progress through one job's pipeline. All
// "may not have happened yet" timestamps are pointers; Interviews is populated
// only when the current stage is schedulable.
type Application struct {
	ID                      string
	Job                     *Job
	CurrentStage            *JobStage
	MovedToStageAt          *time.Time
	CandidateName           string
	CandidateID             string
	AvailabilityRequestedAt *time.Time
	AvailabilityReceivedAt  *time.Time
	TakeHomeSubmittedAt     *time.Time
	TakeHomeGrading         *TakeHomeGrading
	Interviews              []ScheduledInterview
}

// ApplicationBlocker identifies the single upstream event an application is
// waiting on. It is derived at read time and never persisted.
type ApplicationBlocker struct {
	Status           StageStatus
	RelevantTimeName string
	RelevantTime     time.Time
}

// TimeElapsed returns how long the application has been waiting as of now.
func (b *ApplicationBlocker) TimeElapsed(now time.Time) time.Duration {
	return now.Sub(b.RelevantTime)
}
