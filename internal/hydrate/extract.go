package hydrate

import (
	"strings"
	"time"

	"github.com/umutgultepe/recruiting-analyst/internal/greenhouse"
)

// Named extractors over the free-text activity feed. The substring vocabulary
// below is the contract with the upstream system: any change to its event
// phrasing lands here and nowhere else.
const (
	movedIntoMarker            = " was moved into "
	takeHomeSubmittedMarker    = "submitted a take home test"
	manualUpdateMarker         = "manually updated"
	availabilityRequestMarker  = "availability from Not requested to Requested for"
	availabilityReceivedMarker = "submitted their availability for"
	interviewsScheduledMarker  = "scheduled"
	confirmationSentMarker     = "availability from Received to Confirmation sent for"
)

// stageEntry finds the event that moved the candidate into the given stage,
// returning its timestamp and the candidate name narrated before the marker.
// A missing event is not an error: some applications are created directly
// into a stage.
func stageEntry(activities []greenhouse.Activity, stageName string) (*time.Time, string, error) {
	marker := movedIntoMarker + stageName + " for"

	for _, activity := range activities {
		if !strings.Contains(activity.Body, marker) {
			continue
		}

		at, err := greenhouse.ParseTime(activity.CreatedAt)
		if err != nil {
			return nil, "", err
		}

		name := activity.Body[:strings.Index(activity.Body, movedIntoMarker)]
		return &at, name, nil
	}

	return nil, "", nil
}

// takeHomeSubmission finds the first take-home submission event.
func takeHomeSubmission(activities []greenhouse.Activity) (*time.Time, error) {
	for _, activity := range activities {
		if !strings.Contains(activity.Body, takeHomeSubmittedMarker) {
			continue
		}

		at, err := greenhouse.ParseTime(activity.CreatedAt)
		if err != nil {
			return nil, err
		}
		return &at, nil
	}

	return nil, nil
}

// availabilityRequested finds when availability was first requested for the
// stage. The scan does not break early, so the last matching event wins.
func availabilityRequested(activities []greenhouse.Activity, stageName string) (*time.Time, error) {
	var result *time.Time

	for _, activity := range activities {
		if !strings.Contains(activity.Body, manualUpdateMarker) ||
			!strings.Contains(activity.Body, availabilityRequestMarker) ||
			!strings.Contains(activity.Body, "("+stageName+")") {
			continue
		}

		at, err := greenhouse.ParseTime(activity.CreatedAt)
		if err != nil {
			return nil, err
		}
		result = &at
	}

	return result, nil
}

// availabilityReceived finds when the candidate submitted availability for
// the stage. Last match wins, same as availabilityRequested.
func availabilityReceived(activities []greenhouse.Activity, stageName string) (*time.Time, error) {
	var result *time.Time

	for _, activity := range activities {
		if !strings.Contains(activity.Body, availabilityReceivedMarker) ||
			!strings.Contains(activity.Body, "("+stageName+")") {
			continue
		}

		at, err := greenhouse.ParseTime(activity.CreatedAt)
		if err != nil {
			return nil, err
		}
		result = &at
	}

	return result, nil
}

// interviewConfirmed finds when scheduling for the stage's interviews was
// confirmed: first a scheduling note, then the availability-confirmation
// narration as fallback. Nil when neither pattern matches.
func interviewConfirmed(notes, activities []greenhouse.Activity, stageName string) (*time.Time, error) {
	for _, note := range notes {
		if !strings.Contains(note.Body, interviewsScheduledMarker) ||
			!strings.Contains(note.Body, stageName+" interviews for") {
			continue
		}

		at, err := greenhouse.ParseTime(note.CreatedAt)
		if err != nil {
			return nil, err
		}
		return &at, nil
	}

	for _, activity := range activities {
		if !strings.Contains(activity.Body, confirmationSentMarker) ||
			!strings.Contains(activity.Body, "("+stageName+")") {
			continue
		}

		at, err := greenhouse.ParseTime(activity.CreatedAt)
		if err != nil {
			return nil, err
		}
		return &at, nil
	}

	return nil, nil
}
