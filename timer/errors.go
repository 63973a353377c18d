package timer

import (
	"fmt"
	"log"
)

// GuestFaultError reports the single guest-error kind the timer
// recognises (spec.md §7): a bad MMIO offset. It is logged under the
// "guest-fault" channel and then swallowed -- the peripheral never
// faults the host; reads return zero, writes are discarded.
type GuestFaultError struct {
	Offset uint32
	Op     string // "read" or "write"
}

func (e *GuestFaultError) Error() string {
	return fmt.Sprintf("guest-fault: bad offset 0x%x on %s", e.Offset, e.Op)
}

// logGuestFault logs a bad-offset access under the guest-fault channel,
// matching qemu_log_mask(LOG_GUEST_ERROR, ...) in the source this was
// distilled from.
func logGuestFault(offset uint32, op string) {
	log.Printf("timer: %v", &GuestFaultError{Offset: offset, Op: op})
}
