package pipeline

import "strings"

const (
	takeHomeStageMarker = "Take Home"
	takeHomeTestMarker  = "Take Home Test"
	devAIScreenMarker   = "DevAI Technical Screen"
)

// IsSchedulable reports whether the stage template contains at least one
// interview that can be calendar-scheduled.
func (s *JobStage) IsSchedulable() bool {
	for _, interview := range s.Interviews {
		if interview.Schedulable {
			return true
		}
	}
	return false
}

// IsTakeHome reports whether the stage is a non-schedulable take-home stage.
// Mutually exclusive with IsSchedulable by construction.
func (s *JobStage) IsTakeHome() bool {
	return !s.IsSchedulable() && strings.Contains(s.Name, takeHomeStageMarker)
}

// IsRelevantStage reports whether the application's current stage belongs in
// reporting. Recruiter screens, offer and similar template stages do not.
func (a *Application) IsRelevantStage() bool {
	if a.CurrentStage == nil {
		return false
	}
	return a.CurrentStage.IsSchedulable() || a.CurrentStage.IsTakeHome()
}

// IsTakeHomeStage reports whether the application currently sits at a
// take-home stage.
func (a *Application) IsTakeHomeStage() bool {
	return a.CurrentStage != nil && a.CurrentStage.IsTakeHome()
}

// IsAIEligible reports whether the job's role qualifies for the AI-assisted
// hiring feature at all.
func (j *Job) IsAIEligible() bool {
	return j.Role.Function == FunctionEngineer
}

// IsAIEnabled reports whether the job has the AI-assisted hiring feature
// active. SWE1/SWE2 pipelines qualify through a "Take Home Test" stage,
// Senior pipelines through a "DevAI Technical Screen" interview. Staff and
// Unknown seniorities are excluded.
func (j *Job) IsAIEnabled() bool {
	if !j.IsAIEligible() {
		return false
	}

	if j.Role.Seniority == SenioritySWE1 || j.Role.Seniority == SenioritySWE2 {
		for _, stage := range j.Stages {
			if strings.Contains(stage.Name, takeHomeTestMarker) {
				return true
			}
		}
	}

	if j.Role.Seniority == SenioritySenior {
		for _, stage := range j.Stages {
			for _, interview := range stage.Interviews {
				if strings.Contains(interview.Name, devAIScreenMarker) {
					return true
				}
			}
		}
	}

	return false
}

// HasTakeHomeStage reports whether any stage of the pipeline is a take-home
// stage.
func (j *Job) HasTakeHomeStage() bool {
	for i := range j.Stages {
		if j.Stages[i].IsTakeHome() {
			return true
		}
	}
	return false
}

// StageByID returns the pipeline stage with the given id, or nil.
func (j *Job) StageByID(id string) *JobStage {
	for i := range j.Stages {
		if j.Stages[i].ID == id {
			return &j.Stages[i]
		}
	}
	return nil
}

// PrimaryRecruiter returns the first recruiter on the hiring team, or nil
// when the job has none assigned.
func (j *Job) PrimaryRecruiter() *User {
	if len(j.Recruiters) == 0 {
		return nil
	}
	return &j.Recruiters[0]
}

// PrimaryDepartment returns the first department, or nil.
func (j *Job) PrimaryDepartment() *Department {
	if len(j.Departments) == 0 {
		return nil
	}
	return &j.Departments[0]
}
