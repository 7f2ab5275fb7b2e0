package report

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"github.com/umutgultepe/recruiting-analyst/internal/pipeline"
)

// WriteView renders a view over the given applications as CSV.
func WriteView(w io.Writer, view View, applications []*pipeline.Application, now time.Time) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(view.Headers()); err != nil {
		return err
	}

	for _, row := range view.Rows(applications, now) {
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

var aiRolloutHeaders = []string{
	"job_name",
	"job_id",
	"ai_eligible",
	"ai_enabled",
	"recruiter_name",
	"location",
	"department",
	"level",
}

// WriteAIRollout renders the job-level AI rollout report across all cached
// jobs.
func WriteAIRollout(w io.Writer, jobs []*pipeline.Job) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(aiRolloutHeaders); err != nil {
		return err
	}

	for _, job := range jobs {
		eligible := job.IsAIEligible()

		enabled := false
		if eligible {
			enabled = job.IsAIEnabled()
		}

		recruiter := "No Recruiter Assigned"
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

		row := []string{
			job.Name,
			job.ID,
			strconv.FormatBool(eligible),
			strconv.FormatBool(enabled),
			recruiter,
			location,
			department,
			string(job.Role.Seniority),
		}

		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
