// Package slurm shells out to the Slurm CLI tools and parses their
// JSON (squeue, sinfo, sshare) or text (sdiag) output into model types.
package slurm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/hochej/cmon/internal/model"
)

// Fetcher is the query surface the runtime polls against. *Client
// implements it; tests substitute fakes.
type Fetcher interface {
	FetchJobs(ctx context.Context, filter JobFilter) ([]model.Job, error)
	FetchNodes(ctx context.Context, filter NodeFilter) ([]model.Node, error)
	FetchFairshare(ctx context.Context) ([]model.FairshareEntry, error)
	FetchSchedulerStats(ctx context.Context) (model.SchedulerStats, error)
	CancelJob(ctx context.Context, jobID int64) error
}

var _ Fetcher = (*Client)(nil)

// JobFilter narrows squeue output. Zero value means all jobs.
type JobFilter struct {
	Users      []string
	Accounts   []string
	Partitions []string
	States     []string
}

// NodeFilter narrows sinfo output. Zero value means all nodes.
type NodeFilter struct {
	Partition string
	States    []string
}

const commandTimeout = 15 * time.Second

// runner executes one external command and returns its stdout. It is a
// seam for tests: the default shells out, fakes return fixtures.
type runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// Client queries Slurm by running its CLI tools.
type Client struct {
	resolve func(name string) string
	run     runner
}

// NewClient builds a Client. resolve maps a tool name (e.g. "squeue")
// to the path to execute; nil means bare $PATH lookup.
func NewClient(resolve func(name string) string) *Client {
	if resolve == nil {
		resolve = func(name string) string { return name }
	}
	return &Client{resolve: resolve, run: runCommand}
}

func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, commandTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%s timed out: %w", name, ctx.Err())
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		return nil, fmt.Errorf("%s: %s", name, msg)
	}
	return stdout.Bytes(), nil
}

// Probe checks that Slurm tools are present and answering. It is run
// once at startup; failure is fatal because nothing else can work.
func (c *Client) Probe(ctx context.Context) error {
	out, err := c.run(ctx, c.resolve("sinfo"), "--version")
	if err != nil {
		return fmt.Errorf("slurm unavailable: %w", err)
	}
	if !strings.Contains(string(out), "slurm") {
		return fmt.Errorf("slurm unavailable: unexpected sinfo --version output %q", strings.TrimSpace(string(out)))
	}
	return nil
}

type squeueResponse struct {
	Jobs   []model.Job `json:"jobs"`
	Errors []string    `json:"errors"`
}

// FetchJobs runs squeue --json with the filter mapped to squeue flags.
// Records with job id 0 are dropped; squeue emits them for malformed
// entries.
func (c *Client) FetchJobs(ctx context.Context, filter JobFilter) ([]model.Job, error) {
	args := []string{"--json"}
	if len(filter.States) > 0 {
		args = append(args, "-t", strings.Join(filter.States, ","))
	}
	if len(filter.Users) > 0 {
		args = append(args, "-u", strings.Join(filter.Users, ","))
	}
	for _, account := range filter.Accounts {
		args = append(args, "-A", account)
	}
	if len(filter.Partitions) > 0 {
		args = append(args, "-p", strings.Join(filter.Partitions, ","))
	}

	out, err := c.run(ctx, c.resolve("squeue"), args...)
	if err != nil {
		return nil, err
	}

	var resp squeueResponse
	if err := json.Unmarshal(out, &resp); err != nil {
		return nil, fmt.Errorf("parse squeue output: %w", err)
	}
	if len(resp.Errors) > 0 {
		return nil, fmt.Errorf("squeue: %s", strings.Join(resp.Errors, "; "))
	}

	jobs := resp.Jobs[:0]
	for _, job := range resp.Jobs {
		if job.JobID != 0 {
			jobs = append(jobs, job)
		}
	}
	return jobs, nil
}

type sinfoResponse struct {
	Sinfo  []model.Node `json:"sinfo"`
	Errors []string     `json:"errors"`
}

// FetchNodes runs sinfo -N --json. Records without a node name are
// dropped.
func (c *Client) FetchNodes(ctx context.Context, filter NodeFilter) ([]model.Node, error) {
	args := []string{"-N", "--json"}
	if filter.Partition != "" {
		args = append(args, "-p", filter.Partition)
	}
	if len(filter.States) > 0 {
		args = append(args, "--states", strings.Join(filter.States, ","))
	}

	out, err := c.run(ctx, c.resolve("sinfo"), args...)
	if err != nil {
		return nil, err
	}

	var resp sinfoResponse
	if err := json.Unmarshal(out, &resp); err != nil {
		return nil, fmt.Errorf("parse sinfo output: %w", err)
	}
	if len(resp.Errors) > 0 {
		return nil, fmt.Errorf("sinfo: %s", strings.Join(resp.Errors, "; "))
	}

	nodes := resp.Sinfo[:0]
	for _, node := range resp.Sinfo {
		if node.Name() != "" {
			nodes = append(nodes, node)
		}
	}
	return nodes, nil
}

type sshareResponse struct {
	Shares struct {
		Shares []model.FairshareEntry `json:"shares"`
	} `json:"shares"`
	Errors []string `json:"errors"`
}

// FetchFairshare runs sshare -a --json for the full association tree.
func (c *Client) FetchFairshare(ctx context.Context) ([]model.FairshareEntry, error) {
	out, err := c.run(ctx, c.resolve("sshare"), "-a", "--json")
	if err != nil {
		return nil, err
	}

	var resp sshareResponse
	if err := json.Unmarshal(out, &resp); err != nil {
		return nil, fmt.Errorf("parse sshare output: %w", err)
	}
	if len(resp.Errors) > 0 {
		return nil, fmt.Errorf("sshare: %s", strings.Join(resp.Errors, "; "))
	}
	return resp.Shares.Shares, nil
}

// FetchSchedulerStats runs sdiag and parses its text output. sdiag is
// commonly restricted to operators, so a command failure degrades to an
// unavailable-stats value rather than an error: the header shows N/A
// and the rest of the dashboard keeps working.
func (c *Client) FetchSchedulerStats(ctx context.Context) (model.SchedulerStats, error) {
	out, err := c.run(ctx, c.resolve("sdiag"))
	if err != nil {
		return model.UnavailableStats(err.Error()), nil
	}
	return model.ParseSdiag(string(out)), nil
}

// CancelJob runs scancel on the given job id.
func (c *Client) CancelJob(ctx context.Context, jobID int64) error {
	if jobID <= 0 {
		return fmt.Errorf("invalid job id %d", jobID)
	}
	if _, err := c.run(ctx, c.resolve("scancel"), fmt.Sprintf("%d", jobID)); err != nil {
		return fmt.Errorf("cancel job %d: %w", jobID, err)
	}
	return nil
}
