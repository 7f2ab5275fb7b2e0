package report

import (
	"time"

	"github.com/umutgultepe/recruiting-analyst/internal/pipeline"
)

// View is an ordered list of field groups plus a filter deciding which
// applications belong in the report. Headers and row values are the
// concatenation of the groups' tuples, in group order.
type View struct {
	Name    string
	Groups  []FieldGroup
	Include func(*pipeline.Application) bool
}

func (v View) Headers() []string {
	var headers []string
	for _, group := range v.Groups {
		headers = append(headers, group.Headers()...)
	}
	return headers
}

// Row projects one application. The caller supplies a single clock reading so
// elapsed-hours columns within a row never disagree.
func (v View) Row(application *pipeline.Application, now time.Time) []string {
	var row []string
	for _, group := range v.Groups {
		row = append(row, group.Values(application, now)...)
	}
	return row
}

// Rows filters and projects a batch of applications.
func (v View) Rows(applications []*pipeline.Application, now time.Time) [][]string {
	var rows [][]string
	for _, application := range applications {
		if v.Include != nil && !v.Include(application) {
			continue
		}
		rows = append(rows, v.Row(application, now))
	}
	return rows
}

// Pipeline is the full per-job pipeline report over all relevant
// applications.
func Pipeline(domain string) View {
	return View{
		Name: "pipeline",
		Groups: []FieldGroup{
			Identifier{Domain: domain},
			CurrentStage{},
			StageType{},
			StageTime{},
			InterviewTimes{},
			TakeHomeTimes{},
			InterviewCounts{},
			Dimensions{},
		},
		Include: func(a *pipeline.Application) bool {
			return a.IsRelevantStage()
		},
	}
}

// TakeHome is the snapshot of applications currently sitting at a take-home
// stage.
func TakeHome(domain string) View {
	return View{
		Name: "take-home",
		Groups: []FieldGroup{
			Identifier{Domain: domain},
			CurrentStage{},
			StageType{},
			StageTime{},
			TakeHomeTimes{},
			TakeHomePendingGrading{},
			Dimensions{},
		},
		Include: func(a *pipeline.Application) bool {
			return a.IsTakeHomeStage()
		},
	}
}

// Interviews is the snapshot of applications at schedulable stages.
func Interviews(domain string) View {
	return View{
		Name: "interviews",
		Groups: []FieldGroup{
			Identifier{Domain: domain},
			CurrentStage{},
			StageType{},
			StageTime{},
			InterviewTimes{},
			InterviewCounts{},
			Dimensions{},
		},
		Include: func(a *pipeline.Application) bool {
			return a.CurrentStage != nil && a.CurrentStage.IsSchedulable()
		},
	}
}

// Blocked is the snapshot of relevant applications that are waiting on
// something.
func Blocked(domain string) View {
	return View{
		Name: "blocked",
		Groups: []FieldGroup{
			Identifier{Domain: domain},
			CurrentStage{},
			StageType{},
			BlockContext{},
			Dimensions{},
		},
		Include: func(a *pipeline.Application) bool {
			return a.IsRelevantStage() && a.Blocker() != nil
		},
	}
}
