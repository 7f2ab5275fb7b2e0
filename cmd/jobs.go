package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Inspect and refresh the local job cache",
}

var jobsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached jobs",
	Run: func(cmd *cobra.Command, _ []string) {
		listJobs(cmd)
	},
}

var jobsRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Refresh the job cache from the Greenhouse API",
	Run: func(cmd *cobra.Command, _ []string) {
		refreshJobs(cmd)
	},
}

var checkIntegrationCmd = &cobra.Command{
	Use:   "check-integration",
	Short: "Verify the Greenhouse API credentials",
	Run: func(cmd *cobra.Command, _ []string) {
		checkIntegration(cmd)
	},
}

func init() {
	rootCmd.AddCommand(jobsCmd)
	rootCmd.AddCommand(checkIntegrationCmd)

	jobsCmd.AddCommand(jobsListCmd)
	jobsCmd.AddCommand(jobsRefreshCmd)

	jobsRefreshCmd.Flags().BoolP("yes", "y", false, "do not ask for confirmation before overwriting the cache")
}

func listJobs(_ *cobra.Command) {
	l := newLogger()

	config, err := getConfig()
	if err != nil {
		l.Fatal("getting a config", zap.Error(err))
	}

	manager := openCache(config, l)

	jobs := manager.All()
	if len(jobs) == 0 {
		l.Info("exiting", zap.String("reason", "job cache is empty, run 'analyst jobs refresh' first"))
		return
	}

	for i, job := range jobs {
		fmt.Printf("%d. %s\n", i+1, job.Name)
		fmt.Printf("   ID: %s\n", job.ID)
		fmt.Printf("   Location: %s\n", job.Location.Name)
		fmt.Printf("   Created: %s\n", job.CreatedAt.Format("2006-01-02"))
		if job.OpenedAt != nil {
			fmt.Printf("   Opened: %s\n", job.OpenedAt.Format("2006-01-02"))
		}

		fmt.Printf("   Role: %s - %s\n", job.Role.Function, job.Role.Seniority)

		if len(job.Departments) > 0 {
			names := make([]string, 0, len(job.Departments))
			for _, dept := range job.Departments {
				names = append(names, dept.Name)
			}
			fmt.Printf("   Departments: %s\n", strings.Join(names, ", "))
		}

		if len(job.HiringManagers) > 0 {
			names := make([]string, 0, len(job.HiringManagers))
			for _, manager := range job.HiringManagers {
				names = append(names, manager.FullName())
			}
			fmt.Printf("   Hiring Managers: %s\n", strings.Join(names, ", "))
		}

		fmt.Println()
	}
}

func refreshJobs(cmd *cobra.Command) {
	ctx := context.Background()
	l := newLogger()

	config, err := getConfig()
	if err != nil {
		l.Fatal("getting a config", zap.Error(err))
	}

	if len(config.Departments) == 0 {
		l.Fatal("no relevant departments configured",
			zap.String("hint", "set the 'departments' list in the configuration file"),
		)
	}

	if cmd.Flag("yes").Value.String() == "false" {
		prompt := promptui.Select{
			Label: fmt.Sprintf("Overwrite the job cache at %s?", config.CachePath),
			Items: []string{"Yes", "No"},
		}

		_, answer, err := prompt.Run()
		if err != nil {
			l.Fatal("exiting", zap.Error(err))
		}

		if answer != "Yes" {
			l.Info("exiting", zap.String("reason", "got no from prompt"))
			return
		}
	}

	client := newClient(ctx, config, l)
	manager := openCache(config, l)

	l.Info("refreshing job cache", zap.Strings("departments", config.Departments))

	if err := manager.Refresh(client, config.Departments); err != nil {
		l.Fatal("refreshing job cache", zap.Error(err))
	}
}

func checkIntegration(_ *cobra.Command) {
	ctx := context.Background()
	l := newLogger()

	config, err := getConfig()
	if err != nil {
		l.Fatal("getting a config", zap.Error(err))
	}

	client := newClient(ctx, config, l)

	me, err := client.CheckIntegration()
	if err != nil {
		l.Fatal("checking greenhouse integration", zap.Error(err))
	}

	l.Info("greenhouse integration is working", zap.Any("user", me))
}
