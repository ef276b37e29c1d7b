package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/hochej/cmon/internal/slurm"
	"github.com/hochej/cmon/internal/ui"
)

var (
	jobsUser      string
	jobsAccount   string
	jobsPartition string
	jobsState     string
	jobsAll       bool
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "Print the job queue",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient(cmd.Context())
		if err != nil {
			return err
		}

		filter := slurm.JobFilter{}
		switch {
		case jobsUser != "":
			filter.Users = []string{jobsUser}
		case !jobsAll:
			if me := currentUsername(); me != "" {
				filter.Users = []string{me}
			}
		}
		if jobsAccount != "" {
			filter.Accounts = []string{jobsAccount}
		}
		if jobsPartition != "" {
			filter.Partitions = []string{jobsPartition}
		}
		if jobsState != "" {
			filter.States = []string{jobsState}
		}

		return runWatched(cmd.Context(), func(ctx context.Context) error {
			return printJobs(ctx, client, filter)
		})
	},
}

func init() {
	jobsCmd.Flags().StringVarP(&jobsUser, "user", "u", "", "filter by user")
	jobsCmd.Flags().StringVarP(&jobsAccount, "account", "A", "", "filter by account")
	jobsCmd.Flags().StringVarP(&jobsPartition, "partition", "p", "", "filter by partition")
	jobsCmd.Flags().StringVarP(&jobsState, "state", "t", "", "filter by state (e.g. RUNNING)")
	jobsCmd.Flags().BoolVarP(&jobsAll, "all", "a", false, "all users' jobs")
	jobsCmd.Flags().IntVarP(&watch, "watch", "w", 0, "repeat every N seconds")
	rootCmd.AddCommand(jobsCmd)
}

func printJobs(ctx context.Context, client *slurm.Client, filter slurm.JobFilter) error {
	jobs, err := client.FetchJobs(ctx, filter)
	if err != nil {
		return err
	}

	fmt.Printf("%-12s %-30s %-10s %-10s %-10s %-11s %-11s %-6s %s\n",
		"JOB ID", "NAME", "USER", "ACCOUNT", "PARTITION", "STATE", "TIME", "CPUS", "NODES")
	now := time.Now()
	for i := range jobs {
		job := &jobs[i]
		fmt.Printf("%-12s %-30.30s %-10s %-10s %-10s %-11s %-11s %-6d %s\n",
			job.DisplayID(),
			job.Name,
			job.UserName,
			job.Account,
			job.Partition,
			job.PrimaryState(),
			ui.FormatDuration(job.Elapsed(now)),
			job.CPUs(),
			job.Nodes,
		)
	}
	fmt.Printf("\n%d jobs\n", len(jobs))
	return nil
}
