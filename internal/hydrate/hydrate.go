package hydrate

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/umutgultepe/recruiting-analyst/internal/greenhouse"
	"github.com/umutgultepe/recruiting-analyst/internal/pipeline"
)

const statusComplete = "complete"

// Hydrator turns raw Harvest records into fully-populated Applications.
type Hydrator struct {
	client *greenhouse.Client
	logger *zap.Logger
}

func New(client *greenhouse.Client, logger *zap.Logger) *Hydrator {
	return &Hydrator{client: client, logger: logger}
}

// Application hydrates one raw application record against its job template.
// The current stage must exist in the template; an application cannot be
// displayed without its pipeline context.
func (h *Hydrator) Application(record *greenhouse.ApplicationRecord, job *pipeline.Job) (*pipeline.Application, error) {
	stage := job.StageByID(record.CurrentStage.ID.String())
	if stage == nil {
		return nil, fmt.Errorf("stage %s (%s) not found in template of job %s",
			record.CurrentStage.ID, record.CurrentStage.Name, job.ID)
	}

	// Non-relevant stages are not hydrated further. This bounds API cost:
	// no feed, interview or scorecard fetches for recruiter screens, offers
	// and the like.
	if !stage.IsSchedulable() && !stage.IsTakeHome() {
		return minimalApplication(record, job, stage)
	}

	feed, err := h.client.GetActivityFeed(record.ID.String())
	if err != nil {
		return nil, err
	}

	var interviews []greenhouse.ScheduledInterviewRecord
	if stage.IsSchedulable() {
		if interviews, err = h.client.GetScheduledInterviews(record.ID.String()); err != nil {
			return nil, err
		}
	}

	scorecards, err := h.client.GetScorecards(record.ID.String())
	if err != nil {
		return nil, err
	}

	return Build(record, job, stage, feed, interviews, scorecards)
}

// ApplicationsForJob hydrates every active application of a job. One
// candidate's malformed event history must not block the whole report: failed
// applications are logged and skipped, and a partial result is returned.
func (h *Hydrator) ApplicationsForJob(job *pipeline.Job) ([]*pipeline.Application, error) {
	records, err := h.client.ListApplications(job.ID)
	if err != nil {
		return nil, err
	}

	applications := make([]*pipeline.Application, 0, len(records))
	for i := range records {
		application, err := h.Application(&records[i], job)
		if err != nil {
			h.logger.Warn("skipping application",
				zap.String("application_id", records[i].ID.String()),
				zap.String("job_id", job.ID),
				zap.Error(err),
			)
			continue
		}
		applications = append(applications, application)
	}

	return applications, nil
}

// Build assembles an Application from already-fetched raw records. Pure:
// everything it needs is in its arguments.
func Build(record *greenhouse.ApplicationRecord, job *pipeline.Job, stage *pipeline.JobStage,
	feed *greenhouse.ActivityFeed, interviews []greenhouse.ScheduledInterviewRecord,
	scorecards []greenhouse.ScorecardRecord,
) (*pipeline.Application, error) {
	application := &pipeline.Application{
		ID:           record.ID.String(),
		Job:          job,
		CurrentStage: stage,
		CandidateID:  record.CandidateID.String(),
	}

	movedAt, candidateName, err := stageEntry(feed.Activities, stage.Name)
	if err != nil {
		return nil, err
	}
	application.MovedToStageAt = movedAt
	application.CandidateName = candidateName

	if stage.IsTakeHome() {
		if err := fillTakeHome(application, stage, feed, scorecards); err != nil {
			return nil, err
		}
		return application, nil
	}

	if err := fillInterviews(application, stage, feed, interviews, scorecards); err != nil {
		return nil, err
	}

	return application, nil
}

func minimalApplication(record *greenhouse.ApplicationRecord, job *pipeline.Job, stage *pipeline.JobStage) (*pipeline.Application, error) {
	// The activity feed is never fetched for these, so the raw record's own
	// timestamp is the only source available.
	movedAt, err := greenhouse.ParseOptionalTime(record.MovedToStageAt)
	if err != nil {
		return nil, err
	}

	return &pipeline.Application{
		ID:             record.ID.String(),
		Job:            job,
		CurrentStage:   stage,
		CandidateID:    record.CandidateID.String(),
		MovedToStageAt: movedAt,
	}, nil
}

func fillTakeHome(application *pipeline.Application, stage *pipeline.JobStage,
	feed *greenhouse.ActivityFeed, scorecards []greenhouse.ScorecardRecord,
) error {
	submittedAt, err := takeHomeSubmission(feed.Activities)
	if err != nil {
		return err
	}
	application.TakeHomeSubmittedAt = submittedAt

	// The grading is the scorecard submitted against one of the take-home
	// stage's own interview steps. First match wins, in API order.
	for i := range scorecards {
		card := &scorecards[i]
		if stageInterviewByID(stage, card.InterviewStep.ID.String()) == nil {
			continue
		}

		gradedAt, err := greenhouse.ParseTime(card.SubmittedAt)
		if err != nil {
			return err
		}

		application.TakeHomeGrading = &pipeline.TakeHomeGrading{
			ID:          card.ID.String(),
			SubmittedAt: gradedAt,
			By: pipeline.User{
				ID:        card.SubmittedBy.ID.String(),
				FirstName: card.SubmittedBy.FirstName,
				LastName:  card.SubmittedBy.LastName,
			},
		}
		break
	}

	return nil
}

func fillInterviews(application *pipeline.Application, stage *pipeline.JobStage,
	feed *greenhouse.ActivityFeed, interviews []greenhouse.ScheduledInterviewRecord,
	scorecards []greenhouse.ScorecardRecord,
) error {
	confirmedAt, err := interviewConfirmed(feed.Notes, feed.Activities, stage.Name)
	if err != nil {
		return err
	}

	for i := range interviews {
		record := &interviews[i]

		template := stageInterviewByID(stage, record.Interview.ID.String())
		if template == nil {
			continue
		}

		scheduled := pipeline.ScheduledInterview{
			ID:        record.ID.String(),
			Interview: *template,
			CreatedAt: confirmedAt,
			Status:    interviewStatus(record.Status),
		}

		if scheduled.Date, err = greenhouse.ParseOptionalTime(record.Start.DateTime); err != nil {
			return err
		}

		for _, interviewer := range record.Interviewers {
			first, last := splitName(interviewer.Name)
			scheduled.Interviewers = append(scheduled.Interviewers, pipeline.User{
				ID:        interviewer.ID.String(),
				FirstName: first,
				LastName:  last,
			})

			// Scorecards exist only once the interview is complete.
			// Interviewers without a resolvable scorecard contribute none.
			if scheduled.Status != pipeline.InterviewComplete {
				continue
			}
			card := scorecardByID(scorecards, interviewer.ScorecardID.String())
			if card == nil {
				continue
			}

			scorecard, err := scorecardFromRecord(card)
			if err != nil {
				return err
			}
			scheduled.Scorecards = append(scheduled.Scorecards, *scorecard)
		}

		application.Interviews = append(application.Interviews, scheduled)
	}

	if application.AvailabilityRequestedAt, err = availabilityRequested(feed.Activities, stage.Name); err != nil {
		return err
	}
	if application.AvailabilityReceivedAt, err = availabilityReceived(feed.Activities, stage.Name); err != nil {
		return err
	}

	return nil
}

func scorecardFromRecord(record *greenhouse.ScorecardRecord) (*pipeline.Scorecard, error) {
	submittedAt, err := greenhouse.ParseTime(record.SubmittedAt)
	if err != nil {
		return nil, err
	}

	decision, err := pipeline.ParseScorecardDecision(record.OverallRecommendation)
	if err != nil {
		return nil, fmt.Errorf("scorecard %s: %w", record.ID, err)
	}

	return &pipeline.Scorecard{
		ID:          record.ID.String(),
		SubmittedAt: submittedAt,
		By: pipeline.User{
			ID:        record.SubmittedBy.ID.String(),
			FirstName: record.SubmittedBy.FirstName,
			LastName:  record.SubmittedBy.LastName,
		},
		Decision: decision,
	}, nil
}

func interviewStatus(raw string) pipeline.InterviewStatus {
	switch strings.ToLower(raw) {
	case statusComplete:
		return pipeline.InterviewComplete
	case "awaiting_feedback":
		return pipeline.InterviewAwaitingFeedback
	default:
		return pipeline.InterviewScheduled
	}
}

func stageInterviewByID(stage *pipeline.JobStage, id string) *pipeline.Interview {
	for i := range stage.Interviews {
		if stage.Interviews[i].ID == id {
			return &stage.Interviews[i]
		}
	}
	return nil
}

func scorecardByID(records []greenhouse.ScorecardRecord, id string) *greenhouse.ScorecardRecord {
	if id == "" || id == "0" {
		return nil
	}
	for i := range records {
		if records[i].ID.String() == id {
			return &records[i]
		}
	}
	return nil
}

func splitName(full string) (first, last string) {
	first, last, found := strings.Cut(full, " ")
	if !found {
		return full, ""
	}
	return first, last
}
