package greenhouse

import (
	"fmt"
	"net/url"
)

const applicationsPath = "/applications"

// ListApplications fetches the raw records of all active applications for a
// job.
func (c *Client) ListApplications(jobID string) ([]ApplicationRecord, error) {
	q := url.Values{}
	q.Set("job_id", jobID)
	q.Set("status", "active")

	items, err := c.GetItems(c.APIURL+applicationsPath, q)
	if err != nil {
		return nil, fmt.Errorf("fetching applications for job %s: %w", jobID, err)
	}

	var records []ApplicationRecord
	if err := decodeItems(items, &records); err != nil {
		return nil, fmt.Errorf("decoding applications for job %s: %w", jobID, err)
	}

	return records, nil
}

// GetApplication fetches one application's raw record by id.
func (c *Client) GetApplication(id string) (*ApplicationRecord, error) {
	var record ApplicationRecord
	if err := c.getJSON(fmt.Sprintf("%s%s/%s", c.APIURL, applicationsPath, id), nil, &record); err != nil {
		return nil, fmt.Errorf("fetching application %s: %w", id, err)
	}
	return &record, nil
}

// GetActivityFeed fetches the activity feed (narrations and notes) for an
// application.
func (c *Client) GetActivityFeed(applicationID string) (*ActivityFeed, error) {
	var feed ActivityFeed
	if err := c.getJSON(fmt.Sprintf("%s%s/%s/activity_feed", c.APIURL, applicationsPath, applicationID), nil, &feed); err != nil {
		return nil, fmt.Errorf("fetching activity feed for application %s: %w", applicationID, err)
	}
	return &feed, nil
}

// GetScheduledInterviews fetches the per-candidate scheduled interview
// records for an application.
func (c *Client) GetScheduledInterviews(applicationID string) ([]ScheduledInterviewRecord, error) {
	items, err := c.GetItems(fmt.Sprintf("%s%s/%s/scheduled_interviews", c.APIURL, applicationsPath, applicationID), nil)
	if err != nil {
		return nil, fmt.Errorf("fetching scheduled interviews for application %s: %w", applicationID, err)
	}

	var records []ScheduledInterviewRecord
	if err := decodeItems(items, &records); err != nil {
		return nil, fmt.Errorf("decoding scheduled interviews for application %s: %w", applicationID, err)
	}

	return records, nil
}

// GetScorecards fetches all scorecards submitted for an application.
func (c *Client) GetScorecards(applicationID string) ([]ScorecardRecord, error) {
	items, err := c.GetItems(fmt.Sprintf("%s%s/%s/scorecards", c.APIURL, applicationsPath, applicationID), nil)
	if err != nil {
		return nil, fmt.Errorf("fetching scorecards for application %s: %w", applicationID, err)
	}

	var records []ScorecardRecord
	if err := decodeItems(items, &records); err != nil {
		return nil, fmt.Errorf("decoding scorecards for application %s: %w", applicationID, err)
	}

	return records, nil
}
