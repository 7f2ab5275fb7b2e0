package greenhouse

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
)

// Raw Harvest API payload shapes. Ids arrive as JSON numbers and are kept as
// json.Number until they are converted to the string ids the domain model
// uses.

type IDName struct {
	ID   json.Number `json:"id"`
	Name string      `json:"name"`
}

type UserRecord struct {
	ID        json.Number `json:"id"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Name      string      `json:"name"`
}

type JobRecord struct {
	ID          json.Number `json:"id"`
	Name        string      `json:"name"`
	Status      string      `json:"status"`
	CreatedAt   string      `json:"created_at"`
	OpenedAt    string      `json:"opened_at"`
	Offices     []IDName    `json:"offices"`
	Departments []IDName    `json:"departments"`
	HiringTeam  struct {
		HiringManagers []UserRecord `json:"hiring_managers"`
		Recruiters     []UserRecord `json:"recruiters"`
		Coordinators   []UserRecord `json:"coordinators"`
		Sourcers       []UserRecord `json:"sourcers"`
	} `json:"hiring_team"`
}

type StageRecord struct {
	ID         json.Number `json:"id"`
	Name       string      `json:"name"`
	Interviews []struct {
		ID          json.Number `json:"id"`
		Name        string      `json:"name"`
		Schedulable bool        `json:"schedulable"`
	} `json:"interviews"`
}

type ApplicationRecord struct {
	ID             json.Number `json:"id"`
	CandidateID    json.Number `json:"candidate_id"`
	Status         string      `json:"status"`
	Jobs           []IDName    `json:"jobs"`
	CurrentStage   IDName      `json:"current_stage"`
	MovedToStageAt string      `json:"moved_to_stage_at"`
}

// Activity is one timestamped free-text entry of an application's activity
// feed. The body text is the actual contract surface for hydration.
type Activity struct {
	ID        json.Number `json:"id"`
	CreatedAt string      `json:"created_at"`
	Body      string      `json:"body"`
}

type ActivityFeed struct {
	Activities []Activity `json:"activities"`
	Notes      []Activity `json:"notes"`
}

type InterviewerRecord struct {
	ID          json.Number `json:"id"`
	Name        string      `json:"name"`
	ScorecardID json.Number `json:"scorecard_id"`
}

type ScheduledInterviewRecord struct {
	ID            json.Number `json:"id"`
	ApplicationID json.Number `json:"application_id"`
	Status        string      `json:"status"`
	CreatedAt     string      `json:"created_at"`
	Start         struct {
		DateTime string `json:"date_time"`
	} `json:"start"`
	Interview    IDName              `json:"interview"`
	Interviewers []InterviewerRecord `json:"interviewers"`
}

type ScorecardRecord struct {
	ID                    json.Number `json:"id"`
	SubmittedAt           string      `json:"submitted_at"`
	SubmittedBy           UserRecord  `json:"submitted_by"`
	OverallRecommendation string      `json:"overall_recommendation"`
	InterviewStep         IDName      `json:"interview_step"`
}

// decodeItems converts raw paginated items into a typed record slice.
func decodeItems(items []Item, target any) error {
	cfg := &mapstructure.DecoderConfig{
		Result:  target,
		TagName: "json",
	}

	decoder, err := mapstructure.NewDecoder(cfg)
	if err != nil {
		return err
	}

	return decoder.Decode(items)
}

// ParseTime parses a Harvest API timestamp. An unparseable value is a fatal
// error for the record being hydrated.
func ParseTime(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", value, err)
	}
	return t.UTC(), nil
}

// ParseOptionalTime parses a timestamp that may legitimately be empty.
func ParseOptionalTime(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := ParseTime(value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
