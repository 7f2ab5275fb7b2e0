package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/umutgultepe/recruiting-analyst/internal/pipeline"
	"github.com/umutgultepe/recruiting-analyst/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate CSV reports from the recruiting pipeline",
}

var reportPipelineCmd = &cobra.Command{
	Use:   "pipeline <job-id>",
	Short: "Report on all applications in a job's pipeline",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runPipelineReport(cmd, args[0])
	},
}

var reportTakeHomeCmd = &cobra.Command{
	Use:   "take-home",
	Short: "Snapshot of applications at take-home stages across AI-enabled jobs",
	Run: func(cmd *cobra.Command, _ []string) {
		runSnapshotReport(cmd, report.TakeHome(domain()), func(job *pipeline.Job) bool {
			return job.IsAIEnabled() && job.HasTakeHomeStage()
		})
	},
}

var reportInterviewsCmd = &cobra.Command{
	Use:   "interviews",
	Short: "Snapshot of applications at schedulable interview stages",
	Run: func(cmd *cobra.Command, _ []string) {
		runSnapshotReport(cmd, report.Interviews(domain()), nil)
	},
}

var reportBlockedCmd = &cobra.Command{
	Use:   "blocked",
	Short: "Snapshot of applications waiting on an upstream event",
	Run: func(cmd *cobra.Command, _ []string) {
		runSnapshotReport(cmd, report.Blocked(domain()), nil)
	},
}

var reportAIRolloutCmd = &cobra.Command{
	Use:   "ai-rollout",
	Short: "Report AI eligibility and rollout status across all cached jobs",
	Run: func(cmd *cobra.Command, _ []string) {
		runAIRolloutReport(cmd)
	},
}

var applicationCmd = &cobra.Command{
	Use:   "application <application-id>",
	Short: "Show one hydrated application as a single-row report",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		runApplicationLookup(cmd, args[0])
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(applicationCmd)

	for _, sub := range []*cobra.Command{
		reportPipelineCmd,
		reportTakeHomeCmd,
		reportInterviewsCmd,
		reportBlockedCmd,
		reportAIRolloutCmd,
	} {
		sub.Flags().StringP("output", "o", "", "write the CSV to a file instead of stdout")
		reportCmd.AddCommand(sub)
	}

	applicationCmd.Flags().StringP("output", "o", "", "write the CSV to a file instead of stdout")
}

func domain() string {
	config, err := getConfig()
	if err != nil || config == nil || config.Domain == "" {
		return defaultDomain
	}
	return config.Domain
}

func runPipelineReport(cmd *cobra.Command, jobID string) {
	ctx := context.Background()
	l := newLogger()

	config, err := getConfig()
	if err != nil {
		l.Fatal("getting a config", zap.Error(err))
	}

	manager := openCache(config, l)

	job := manager.GetByID(jobID)
	if job == nil {
		l.Fatal("job not found in cache",
			zap.String("job_id", jobID),
			zap.String("hint", "run 'analyst jobs refresh' to update the cache"),
		)
	}

	client := newClient(ctx, config, l)
	hydrator := newHydrator(client, l)

	applications, err := hydrator.ApplicationsForJob(job)
	if err != nil {
		l.Fatal("hydrating applications", zap.String("job_id", jobID), zap.Error(err))
	}

	writeViewReport(cmd, l, report.Pipeline(config.Domain), applications)
}

// runSnapshotReport hydrates applications across all cached jobs matching
// jobFilter and renders them through the view.
func runSnapshotReport(cmd *cobra.Command, view report.View, jobFilter func(*pipeline.Job) bool) {
	ctx := context.Background()
	l := newLogger()

	config, err := getConfig()
	if err != nil {
		l.Fatal("getting a config", zap.Error(err))
	}

	manager := openCache(config, l)
	if manager.Len() == 0 {
		l.Fatal("job cache is empty", zap.String("hint", "run 'analyst jobs refresh' first"))
	}

	client := newClient(ctx, config, l)
	hydrator := newHydrator(client, l)

	var applications []*pipeline.Application
	for _, job := range manager.All() {
		if jobFilter != nil && !jobFilter(job) {
			continue
		}

		jobApplications, err := hydrator.ApplicationsForJob(job)
		if err != nil {
			l.Fatal("hydrating applications", zap.String("job_id", job.ID), zap.Error(err))
		}
		applications = append(applications, jobApplications...)
	}

	l.Info("hydrated applications",
		zap.String("report", view.Name),
		zap.Int("count", len(applications)),
	)

	writeViewReport(cmd, l, view, applications)
}

func runAIRolloutReport(cmd *cobra.Command) {
	l := newLogger()

	config, err := getConfig()
	if err != nil {
		l.Fatal("getting a config", zap.Error(err))
	}

	manager := openCache(config, l)

	w, closeOutput, err := outputWriter(cmd)
	if err != nil {
		l.Fatal("opening output", zap.Error(err))
	}
	defer closeOutput()

	if err := report.WriteAIRollout(w, manager.All()); err != nil {
		l.Fatal("writing report", zap.Error(err))
	}
}

func runApplicationLookup(cmd *cobra.Command, applicationID string) {
	ctx := context.Background()
	l := newLogger()

	config, err := getConfig()
	if err != nil {
		l.Fatal("getting a config", zap.Error(err))
	}

	manager := openCache(config, l)
	client := newClient(ctx, config, l)
	hydrator := newHydrator(client, l)

	record, err := client.GetApplication(applicationID)
	if err != nil {
		l.Fatal("fetching application", zap.String("application_id", applicationID), zap.Error(err))
	}

	if len(record.Jobs) == 0 {
		l.Fatal("application has no job", zap.String("application_id", applicationID))
	}

	job := manager.GetByID(record.Jobs[0].ID.String())
	if job == nil {
		l.Fatal("job not found in cache",
			zap.String("application_id", applicationID),
			zap.String("job_id", record.Jobs[0].ID.String()),
			zap.String("hint", "run 'analyst jobs refresh' to update the cache"),
		)
	}

	application, err := hydrator.Application(record, job)
	if err != nil {
		l.Fatal("hydrating application", zap.String("application_id", applicationID), zap.Error(err))
	}

	view := report.Pipeline(config.Domain)
	// Single lookups render even non-relevant stages.
	view.Include = nil

	writeViewReport(cmd, l, view, []*pipeline.Application{application})
}

func writeViewReport(cmd *cobra.Command, l *zap.Logger, view report.View, applications []*pipeline.Application) {
	w, closeOutput, err := outputWriter(cmd)
	if err != nil {
		l.Fatal("opening output", zap.Error(err))
	}
	defer closeOutput()

	if err := report.WriteView(w, view, applications, time.Now().UTC()); err != nil {
		l.Fatal("writing report", zap.Error(err))
	}
}
