package ui

import "time"

const (
	errorDisplayDuration    = 5 * time.Second
	feedbackDisplayDuration = 2 * time.Second
)

// feedbackState holds transient status messages: fetch errors, config
// warnings, and short-lived action feedback (clipboard, export,
// cancel). Errors expire after 5s, action feedback after 2s.
type feedbackState struct {
	errorMsg   string
	errorAt    time.Time
	persistent map[DataKind]bool

	actionMsg     string
	actionSuccess bool
	actionAt      time.Time

	warnings []string
}

func newFeedbackState(warnings []string) feedbackState {
	return feedbackState{
		persistent: make(map[DataKind]bool),
		warnings:   warnings,
	}
}

func (f *feedbackState) setError(msg string, now time.Time) {
	f.errorMsg = msg
	f.errorAt = now
}

func (f *feedbackState) currentError(now time.Time) (string, bool) {
	if f.errorMsg == "" || now.Sub(f.errorAt) >= errorDisplayDuration {
		return "", false
	}
	return f.errorMsg, true
}

func (f *feedbackState) setAction(msg string, success bool, now time.Time) {
	f.actionMsg = msg
	f.actionSuccess = success
	f.actionAt = now
}

func (f *feedbackState) currentAction(now time.Time) (string, bool, bool) {
	if f.actionMsg == "" || now.Sub(f.actionAt) >= feedbackDisplayDuration {
		return "", false, false
	}
	return f.actionMsg, f.actionSuccess, true
}

func (f *feedbackState) clearAction() {
	f.actionMsg = ""
}

// anyPersistent reports whether any fetch kind is in a persistent
// failure state; the header shows a sticky indicator while it lasts.
func (f *feedbackState) anyPersistent() (DataKind, bool) {
	for _, kind := range []DataKind{KindJobs, KindNodes, KindFairshare, KindScheduler} {
		if f.persistent[kind] {
			return kind, true
		}
	}
	return 0, false
}
