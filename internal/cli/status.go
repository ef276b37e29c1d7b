package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hochej/cmon/internal/slurm"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print a cluster summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := newClient(cmd.Context())
		if err != nil {
			return err
		}
		return runWatched(cmd.Context(), func(ctx context.Context) error {
			return printStatus(ctx, client)
		})
	},
}

func init() {
	statusCmd.Flags().IntVarP(&watch, "watch", "w", 0, "repeat every N seconds")
	rootCmd.AddCommand(statusCmd)
}

func printStatus(ctx context.Context, client *slurm.Client) error {
	jobs, err := client.FetchJobs(ctx, slurm.JobFilter{})
	if err != nil {
		return err
	}
	nodes, err := client.FetchNodes(ctx, slurm.NodeFilter{})
	if err != nil {
		return err
	}

	var running, pending int
	for i := range jobs {
		switch {
		case jobs[i].IsRunning():
			running++
		case jobs[i].IsPending():
			pending++
		}
	}

	var idle, busy, down, draining int
	for i := range nodes {
		node := &nodes[i]
		switch {
		case node.IsDown() || node.IsFail():
			down++
		case node.IsDrained() || node.IsDraining():
			draining++
		case node.IsIdle():
			idle++
		default:
			busy++
		}
	}

	fmt.Printf("Jobs:  %d running, %d pending (%d total)\n", running, pending, len(jobs))
	fmt.Printf("Nodes: %d busy, %d idle, %d draining, %d down (%d total)\n",
		busy, idle, draining, down, len(nodes))

	// Scheduler stats degrade silently; sdiag needs privileges on
	// some clusters.
	stats, err := client.FetchSchedulerStats(ctx)
	if err == nil && stats.Available {
		healthy, known := stats.Healthy()
		health := "unknown"
		if known {
			if healthy {
				health = "ok"
			} else {
				health = "slow"
			}
		}
		fmt.Printf("Scheduler: %s (mean cycle %s, %d pending, %d running)\n",
			health, stats.MeanCycleDisplay(), stats.JobsPending, stats.JobsRunning)
	}
	return nil
}
