package schedule

import (
	"fmt"

	"medibook/models"
)

// SlotStateError indicates a slot is not in the status the transition needs,
// e.g. booking a slot that is already booked. It surfaces concurrency losers
// and plain misuse alike as a conflict, never as a data race.
type SlotStateError struct {
	SlotID  string
	Current models.SlotStatus
	Wanted  models.SlotStatus
}

func (e SlotStateError) Error() string {
	return fmt.Sprintf("slot %s is %s, expected %s", e.SlotID, e.Current, e.Wanted)
}

// SlotValidationError reports an invalid slot in an availability setup request.
type SlotValidationError struct {
	Index  int
	Reason string
}

func (e SlotValidationError) Error() string {
	return fmt.Sprintf("slot %d: %s", e.Index+1, e.Reason)
}
