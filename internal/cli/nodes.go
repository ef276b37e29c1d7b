package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hochej/cmon/internal/config"
	"github.com/hochej/cmon/internal/slurm"
	"github.com/hochej/cmon/internal/ui"
)

var (
	nodesPartition string
	nodesIssues    bool
)

var nodesCmd = &cobra.Command{
	Use:   "nodes",
	Short: "Print node states and utilization",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cfg, err := newClient(cmd.Context())
		if err != nil {
			return err
		}
		filter := slurm.NodeFilter{Partition: nodesPartition}
		return runWatched(cmd.Context(), func(ctx context.Context) error {
			return printNodes(ctx, client, cfg, filter)
		})
	},
}

func init() {
	nodesCmd.Flags().StringVarP(&nodesPartition, "partition", "p", "", "filter by partition")
	nodesCmd.Flags().BoolVar(&nodesIssues, "issues", false, "only nodes that are down, failed, or draining")
	nodesCmd.Flags().IntVarP(&watch, "watch", "w", 0, "repeat every N seconds")
	rootCmd.AddCommand(nodesCmd)
}

func printNodes(ctx context.Context, client *slurm.Client, cfg config.Config, filter slurm.NodeFilter) error {
	nodes, err := client.FetchNodes(ctx, filter)
	if err != nil {
		return err
	}

	fmt.Printf("%-16s %-12s %-10s %-9s %-13s %-14s %s\n",
		"NODE", "PARTITION", "STATE", "CPUS", "MEMORY", "GPUS", "REASON")
	shown := 0
	for i := range nodes {
		node := &nodes[i]
		if nodesIssues && !node.HasProblem() {
			continue
		}
		shown++
		usedMB := node.MemoryTotalMB() - node.MemoryFreeMB()
		fmt.Printf("%-16s %-12s %-10s %-9s %-13s %-14s %s\n",
			node.DisplayName(cfg.Display.NodePrefixStrip),
			node.PartitionName(),
			node.PrimaryState(),
			fmt.Sprintf("%d/%d", node.CPUs.Allocated, node.CPUs.Total),
			fmt.Sprintf("%s/%s", ui.FormatMemoryMB(usedMB), ui.FormatMemoryMB(node.MemoryTotalMB())),
			node.GPUs().Display(),
			node.Reason.Description,
		)
	}
	fmt.Printf("\n%d nodes\n", shown)
	return nil
}
