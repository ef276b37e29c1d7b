package ui

import "fmt"

// Modal identifies the active overlay. Only one modal is open at a
// time; it is pushed over the current view and intercepts all keys
// until dismissed.
type Modal int

const (
	ModalNone Modal = iota
	ModalHelp
	ModalFilter
	ModalDetail
	ModalSort
	ModalConfirm
)

// ConfirmAction describes the pending destructive action shown in the
// confirm dialog.
type ConfirmAction struct {
	JobID     int64
	JobName   string
	IsArray   bool
	TaskCount int64
}

func (a ConfirmAction) Description() string {
	if a.IsArray {
		count := a.TaskCount
		if count < 1 {
			count = 1
		}
		return fmt.Sprintf("Cancel job array %d (%s) with %d tasks?", a.JobID, a.JobName, count)
	}
	return fmt.Sprintf("Cancel job %d (%s)?", a.JobID, a.JobName)
}

// filterKind distinguishes the quick search opened with / from the
// full filter dialog opened with f. Both share the same grammar; the
// dialogs differ only in the hint text shown.
type filterKind int

const (
	quickSearch filterKind = iota
	advancedFilter
)
