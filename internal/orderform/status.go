package orderform

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/looplab/fsm"
)

// Job statuses.
const (
	JobPending      = "PENDING"
	JobInProduction = "IN_PRODUCTION"
	JobCompleted    = "COMPLETED"
	JobCancelled    = "CANCELLED"
)

// Job status events.
const (
	EventStart    = "start"
	EventComplete = "complete"
	EventCancel   = "cancel"
	EventReopen   = "reopen"
)

var ErrIllegalTransition = errors.New("illegal job status transition")

var jobEvents = fsm.Events{
	{Name: EventStart, Src: []string{JobPending}, Dst: JobInProduction},
	{Name: EventComplete, Src: []string{JobInProduction}, Dst: JobCompleted},
	{Name: EventCancel, Src: []string{JobPending, JobInProduction}, Dst: JobCancelled},
	{Name: EventReopen, Src: []string{JobCompleted, JobCancelled}, Dst: JobPending},
}

// NormalizeJobStatus maps a stored status onto the lifecycle. Blank means
// pending.
func NormalizeJobStatus(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return JobPending
	}
	return s
}

// NextJobStatus applies event to the current status and returns the new one.
func NextJobStatus(ctx context.Context, current, event string) (string, error) {
	machine := fsm.NewFSM(NormalizeJobStatus(current), jobEvents, fsm.Callbacks{})
	if err := machine.Event(ctx, event); err != nil {
		return "", fmt.Errorf("%w: %s from %s: %v", ErrIllegalTransition, event, machine.Current(), err)
	}
	return machine.Current(), nil
}
