package greenhouse

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/umutgultepe/recruiting-analyst/internal/pipeline"
)

const (
	jobsPath        = "/jobs"
	departmentsPath = "/departments"
)

// GetJobs fetches jobs, optionally restricted to one department by name.
// Department names are resolved against /departments since the Harvest API
// filters by id only.
func (c *Client) GetJobs(departmentName string, includeClosed bool) ([]*pipeline.Job, error) {
	q := url.Values{}

	if !includeClosed {
		q.Set("status", "open")
	}

	if departmentName != "" {
		departmentID, err := c.resolveDepartment(departmentName)
		if err != nil {
			return nil, err
		}
		q.Set("department_id", departmentID)
	}

	items, err := c.GetItems(c.APIURL+jobsPath, q)
	if err != nil {
		return nil, fmt.Errorf("fetching jobs: %w", err)
	}

	var records []JobRecord
	if err := decodeItems(items, &records); err != nil {
		return nil, fmt.Errorf("decoding jobs: %w", err)
	}

	jobs := make([]*pipeline.Job, 0, len(records))
	for i := range records {
		job, err := jobFromRecord(&records[i])
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	return jobs, nil
}

// FillStages fetches the job's pipeline template and populates job.Stages.
// Must complete before any of the job's applications are hydrated.
func (c *Client) FillStages(job *pipeline.Job) error {
	items, err := c.GetItems(fmt.Sprintf("%s%s/%s/stages", c.APIURL, jobsPath, job.ID), nil)
	if err != nil {
		return fmt.Errorf("fetching stages for job %s: %w", job.ID, err)
	}

	var records []StageRecord
	if err := decodeItems(items, &records); err != nil {
		return fmt.Errorf("decoding stages for job %s: %w", job.ID, err)
	}

	stages := make([]pipeline.JobStage, 0, len(records))
	for _, record := range records {
		stage := pipeline.JobStage{
			ID:   record.ID.String(),
			Name: record.Name,
		}
		for _, interview := range record.Interviews {
			stage.Interviews = append(stage.Interviews, pipeline.Interview{
				ID:          interview.ID.String(),
				Name:        interview.Name,
				Schedulable: interview.Schedulable,
			})
		}
		stages = append(stages, stage)
	}

	job.Stages = stages

	return nil
}

func (c *Client) resolveDepartment(name string) (string, error) {
	items, err := c.GetItems(c.APIURL+departmentsPath, nil)
	if err != nil {
		return "", fmt.Errorf("fetching departments: %w", err)
	}

	var records []IDName
	if err := decodeItems(items, &records); err != nil {
		return "", fmt.Errorf("decoding departments: %w", err)
	}

	for _, record := range records {
		if strings.EqualFold(record.Name, name) {
			return record.ID.String(), nil
		}
	}

	return "", fmt.Errorf("unknown department: %q", name)
}

func jobFromRecord(record *JobRecord) (*pipeline.Job, error) {
	createdAt, err := ParseTime(record.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("job %s: %w", record.ID, err)
	}

	openedAt, err := ParseOptionalTime(record.OpenedAt)
	if err != nil {
		return nil, fmt.Errorf("job %s: %w", record.ID, err)
	}

	job := &pipeline.Job{
		ID:             record.ID.String(),
		Name:           record.Name,
		CreatedAt:      createdAt,
		OpenedAt:       openedAt,
		HiringManagers: usersFromRecords(record.HiringTeam.HiringManagers),
		Recruiters:     usersFromRecords(record.HiringTeam.Recruiters),
		Coordinators:   usersFromRecords(record.HiringTeam.Coordinators),
		Sourcers:       usersFromRecords(record.HiringTeam.Sourcers),
		Role:           ClassifyRole(record.Name),
	}

	if len(record.Offices) > 0 {
		job.Location = pipeline.Location{
			ID:   record.Offices[0].ID.String(),
			Name: record.Offices[0].Name,
		}
	}

	for _, dept := range record.Departments {
		job.Departments = append(job.Departments, pipeline.Department{
			ID:   dept.ID.String(),
			Name: dept.Name,
		})
	}

	return job, nil
}

func usersFromRecords(records []UserRecord) []pipeline.User {
	users := make([]pipeline.User, 0, len(records))
	for _, record := range records {
		users = append(users, pipeline.User{
			ID:        record.ID.String(),
			FirstName: record.FirstName,
			LastName:  record.LastName,
		})
	}
	return users
}

// ClassifyRole derives a Role from the job posting name. Postings that do not
// read as engineering roles carry Unknown seniority by invariant.
func ClassifyRole(jobName string) pipeline.Role {
	if !strings.Contains(jobName, "Engineer") {
		return pipeline.Role{Function: pipeline.FunctionOther, Seniority: pipeline.SeniorityUnknown}
	}

	role := pipeline.Role{Function: pipeline.FunctionEngineer, Seniority: pipeline.SeniorityUnknown}

	switch {
	case strings.Contains(jobName, "Staff"):
		role.Seniority = pipeline.SeniorityStaff
	case strings.Contains(jobName, "Senior"):
		role.Seniority = pipeline.SenioritySenior
	case strings.Contains(jobName, " 2") || strings.HasSuffix(jobName, "II"):
		role.Seniority = pipeline.SenioritySWE2
	case strings.Contains(jobName, " 1") || strings.HasSuffix(jobName, "I"):
		role.Seniority = pipeline.SenioritySWE1
	}

	return role
}
