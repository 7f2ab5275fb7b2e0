package hydrate

import (
	"testing"
	"time"

	"github.com/umutgultepe/recruiting-analyst/internal/greenhouse"
)

const stageName = "Evaluation Stage 3"

func activity(createdAt, body string) greenhouse.Activity {
	return greenhouse.Activity{CreatedAt: createdAt, Body: body}
}

func TestStageEntry(t *testing.T) {
	activities := []greenhouse.Activity{
		activity("2025-08-18T09:00:00.000Z", "John Doe's application was reviewed"),
		activity("2025-08-19T11:09:00.231Z", "John Doe was moved into Evaluation Stage 3 for Software Engineer 2"),
		activity("2025-08-20T11:09:00.000Z", "John Doe was moved into Evaluation Stage 3 for Software Engineer 2"),
	}

	at, name, err := stageEntry(activities, stageName)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if name != "John Doe" {
		t.Fatalf("expected candidate name John Doe, got %q", name)
	}

	// First match wins.
	expected := time.Date(2025, 8, 19, 11, 9, 0, 231000000, time.UTC)
	if at == nil || !at.Equal(expected) {
		t.Fatalf("expected %s, got %v", expected, at)
	}
}

func TestStageEntryNoMatchIsNotAnError(t *testing.T) {
	activities := []greenhouse.Activity{
		activity("2025-08-19T11:09:00.231Z", "John Doe was moved into Offer for Software Engineer 2"),
	}

	at, name, err := stageEntry(activities, stageName)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if at != nil || name != "" {
		t.Fatalf("expected unset results, got %v %q", at, name)
	}
}

func TestStageEntryBadTimestamp(t *testing.T) {
	activities := []greenhouse.Activity{
		activity("yesterday", "John Doe was moved into Evaluation Stage 3 for Software Engineer 2"),
	}

	if _, _, err := stageEntry(activities, stageName); err == nil {
		t.Fatalf("expected an error for an unparseable timestamp")
	}
}

func TestTakeHomeSubmission(t *testing.T) {
	activities := []greenhouse.Activity{
		activity("2025-08-19T11:09:00.231Z", "John Doe was moved into Take Home Test for Software Engineer 2"),
		activity("2025-08-20T08:30:00.000Z", "John Doe submitted a take home test"),
	}

	at, err := takeHomeSubmission(activities)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := time.Date(2025, 8, 20, 8, 30, 0, 0, time.UTC)
	if at == nil || !at.Equal(expected) {
		t.Fatalf("expected %s, got %v", expected, at)
	}
}

func TestAvailabilityRequestedLastMatchWins(t *testing.T) {
	activities := []greenhouse.Activity{
		activity("2025-08-20T10:00:00.000Z",
			"Jane Smith manually updated John Doe's availability from Not requested to Requested for Technical Phone Screen (Evaluation Stage 3)"),
		activity("2025-08-21T10:00:00.000Z",
			"Jane Smith manually updated John Doe's availability from Not requested to Requested for Technical Phone Screen (Evaluation Stage 3)"),
	}

	at, err := availabilityRequested(activities, stageName)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := time.Date(2025, 8, 21, 10, 0, 0, 0, time.UTC)
	if at == nil || !at.Equal(expected) {
		t.Fatalf("expected last match %s, got %v", expected, at)
	}
}

func TestAvailabilityRequestedIgnoresOtherStages(t *testing.T) {
	activities := []greenhouse.Activity{
		activity("2025-08-20T10:00:00.000Z",
			"Jane Smith manually updated John Doe's availability from Not requested to Requested for Onsite (Evaluation Stage 4)"),
	}

	at, err := availabilityRequested(activities, stageName)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if at != nil {
		t.Fatalf("expected no match, got %v", at)
	}
}

func TestAvailabilityReceived(t *testing.T) {
	activities := []greenhouse.Activity{
		activity("2025-08-20T14:30:00.000Z",
			"John Doe submitted their availability for Technical Phone Screen (Evaluation Stage 3)"),
	}

	at, err := availabilityReceived(activities, stageName)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := time.Date(2025, 8, 20, 14, 30, 0, 0, time.UTC)
	if at == nil || !at.Equal(expected) {
		t.Fatalf("expected %s, got %v", expected, at)
	}
}

func TestInterviewConfirmedFromNotes(t *testing.T) {
	notes := []greenhouse.Activity{
		activity("2025-08-20T15:00:00.000Z", "Jane Smith scheduled Evaluation Stage 3 interviews for John Doe"),
	}
	activities := []greenhouse.Activity{
		activity("2025-08-20T16:00:00.000Z",
			"Jane Smith updated John Doe's availability from Received to Confirmation sent for Technical Phone Screen (Evaluation Stage 3)"),
	}

	at, err := interviewConfirmed(notes, activities, stageName)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The note wins over the confirmation narration.
	expected := time.Date(2025, 8, 20, 15, 0, 0, 0, time.UTC)
	if at == nil || !at.Equal(expected) {
		t.Fatalf("expected %s, got %v", expected, at)
	}
}

func TestInterviewConfirmedFallsBackToActivities(t *testing.T) {
	activities := []greenhouse.Activity{
		activity("2025-08-20T16:00:00.000Z",
			"Jane Smith updated John Doe's availability from Received to Confirmation sent for Technical Phone Screen (Evaluation Stage 3)"),
	}

	at, err := interviewConfirmed(nil, activities, stageName)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := time.Date(2025, 8, 20, 16, 0, 0, 0, time.UTC)
	if at == nil || !at.Equal(expected) {
		t.Fatalf("expected %s, got %v", expected, at)
	}
}

func TestInterviewConfirmedNoMatch(t *testing.T) {
	at, err := interviewConfirmed(nil, nil, stageName)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if at != nil {
		t.Fatalf("expected nil, got %v", at)
	}
}
