package model

// Slurm attaches a set of simultaneously-true state tokens to each job and
// node. Display and sorting need exactly one canonical token, chosen by a
// fixed priority table rather than array order: a node that is both IDLE
// and DRAIN is DRAINING, a job that is both RUNNING and COMPLETING is
// COMPLETING. The tables below are ordered highest priority first and are
// the single source of truth for that policy.

// StateClass maps one canonical display name to the raw tokens that imply it.
type StateClass struct {
	Name   string
	Tokens []string
}

// UnknownState is returned when no table entry matches the raw token set.
const UnknownState = "UNKNOWN"

// JobStatePriority orders job states for display. Flags outrank base
// states per Slurm's own reporting rules; base states are ordered by
// operational relevance.
var JobStatePriority = []StateClass{
	// failure flags
	{"LAUNCH_FAILED", []string{"LAUNCH_FAILED"}},
	{"RECONFIG_FAIL", []string{"RECONFIG_FAIL"}},
	// transitional flags
	{"COMPLETING", []string{"COMPLETING"}},
	{"CONFIGURING", []string{"CONFIGURING"}},
	{"POWER_UP_NODE", []string{"POWER_UP_NODE"}},
	{"STAGE_OUT", []string{"STAGE_OUT"}},
	// requeue flags
	{"REQUEUED", []string{"REQUEUED"}},
	{"REQUEUE_FED", []string{"REQUEUE_FED"}},
	{"REQUEUE_HOLD", []string{"REQUEUE_HOLD"}},
	{"SPECIAL_EXIT", []string{"SPECIAL_EXIT"}},
	{"RESV_DEL_HOLD", []string{"RESV_DEL_HOLD"}},
	// operational flags
	{"EXPEDITING", []string{"EXPEDITING"}},
	{"RESIZING", []string{"RESIZING"}},
	{"SIGNALING", []string{"SIGNALING"}},
	{"STOPPED", []string{"STOPPED"}},
	{"UPDATE_DB", []string{"UPDATE_DB"}},
	{"REVOKED", []string{"REVOKED"}},
	// base states
	{"RUNNING", []string{"RUNNING"}},
	{"PENDING", []string{"PENDING"}},
	{"SUSPENDED", []string{"SUSPENDED"}},
	{"COMPLETED", []string{"COMPLETED"}},
	{"CANCELLED", []string{"CANCELLED"}},
	{"FAILED", []string{"FAILED"}},
	{"TIMEOUT", []string{"TIMEOUT"}},
	{"PREEMPTED", []string{"PREEMPTED"}},
	{"NODE_FAIL", []string{"NODE_FAIL"}},
	{"BOOT_FAIL", []string{"BOOT_FAIL"}},
	{"DEADLINE", []string{"DEADLINE"}},
	{"OUT_OF_MEMORY", []string{"OUT_OF_MEMORY"}},
}

// NodeStatePriority orders node states for display: critical first, then
// administrative, reboot, power, transitional, operational, special.
var NodeStatePriority = []StateClass{
	{"DOWN", []string{"DOWN"}},
	{"FAIL", []string{"FAIL"}},
	{"FAILING", []string{"FAILING", "FAILG"}},
	{"INVAL", []string{"INVAL"}},
	{"DRAINED", []string{"DRAINED"}},
	{"DRAINING", []string{"DRAINING", "DRAIN", "DRNG"}},
	{"MAINT", []string{"MAINT"}},
	{"RESERVED", []string{"RESERVED", "RESV"}},
	{"REBOOT_ISSUED", []string{"REBOOT_ISSUED"}},
	{"REBOOT_REQUESTED", []string{"REBOOT_REQUESTED"}},
	{"POWERED_DOWN", []string{"POWERED_DOWN"}},
	{"POWERING_DOWN", []string{"POWERING_DOWN"}},
	{"POWERING_UP", []string{"POWERING_UP", "POW_UP"}},
	{"POWER_DOWN", []string{"POWER_DOWN", "POW_DN"}},
	{"COMPLETING", []string{"COMPLETING", "COMP"}},
	{"BLOCKED", []string{"BLOCKED"}},
	{"ALLOCATED", []string{"ALLOCATED", "ALLOC"}},
	{"MIXED", []string{"MIXED", "MIX"}},
	{"IDLE", []string{"IDLE"}},
	{"PERFCTRS", []string{"PERFCTRS", "NPC"}},
	{"PLANNED", []string{"PLANNED", "PLND"}},
	{"FUTURE", []string{"FUTURE", "FUTR"}},
	{"CLOUD", []string{"CLOUD"}},
	{UnknownState, []string{"UNKNOWN", "UNK"}},
}

// PrimaryState resolves a raw compound token set to a single canonical
// token by walking the priority table in order and returning the first
// class any of whose tokens is present. Unrecognized sets resolve to
// UnknownState rather than failing.
func PrimaryState(raw []string, table []StateClass) string {
	for _, class := range table {
		for _, token := range class.Tokens {
			for _, have := range raw {
				if have == token {
					return class.Name
				}
			}
		}
	}
	return UnknownState
}

// HasState reports whether any of the wanted tokens appears in raw.
func HasState(raw []string, wanted ...string) bool {
	for _, w := range wanted {
		for _, have := range raw {
			if have == w {
				return true
			}
		}
	}
	return false
}
