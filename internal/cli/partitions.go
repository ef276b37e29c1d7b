package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hochej/cmon/internal/config"
	"github.com/hochej/cmon/internal/model"
	"github.com/hochej/cmon/internal/slurm"
	"github.com/hochej/cmon/internal/ui"
)

var partitionsCmd = &cobra.Command{
	Use:   "partitions",
	Short: "Print per-partition utilization",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, cfg, err := newClient(cmd.Context())
		if err != nil {
			return err
		}
		return runWatched(cmd.Context(), func(ctx context.Context) error {
			return printPartitions(ctx, client, cfg)
		})
	},
}

func init() {
	partitionsCmd.Flags().IntVarP(&watch, "watch", "w", 0, "repeat every N seconds")
	rootCmd.AddCommand(partitionsCmd)
}

func printPartitions(ctx context.Context, client *slurm.Client, cfg config.Config) error {
	nodes, err := client.FetchNodes(ctx, slurm.NodeFilter{})
	if err != nil {
		return err
	}
	partitions := model.ComputePartitionStats(nodes, cfg.Display.PartitionOrder)

	fmt.Printf("%-14s %-6s %-13s %-6s %-11s %-6s %-15s %-5s %s\n",
		"PARTITION", "NODES", "CPUS", "CPU%", "GPUS", "GPU%", "MEMORY", "DOWN", "DRAIN")
	for _, p := range partitions {
		gpus, gpuPct := "-", "-"
		if p.GPUsTotal > 0 {
			gpus = fmt.Sprintf("%d/%d", p.GPUsUsed, p.GPUsTotal)
			gpuPct = fmt.Sprintf("%.0f%%", p.GPUUtilization())
		}
		usedMB := p.MemTotalMB - p.MemFreeMB
		fmt.Printf("%-14s %-6d %-13s %-6s %-11s %-6s %-15s %-5d %d\n",
			p.Name,
			p.NodeCount,
			fmt.Sprintf("%d/%d", p.CPUsAlloc, p.CPUsTotal),
			fmt.Sprintf("%.0f%%", p.CPUUtilization()),
			gpus,
			gpuPct,
			fmt.Sprintf("%s/%s", ui.FormatMemoryMB(usedMB), ui.FormatMemoryMB(p.MemTotalMB)),
			p.Down,
			p.Draining,
		)
	}
	return nil
}
