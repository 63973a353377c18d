// Package timer models the STM32F4 general-purpose timer peripheral:
// a 19-register memory-mapped bank coupled to a deadline-driven
// virtual-clock scheduler. Grounded directly on
// hw/timer/stm32f405_timer.c (the QEMU device model this spec was
// distilled from) for register semantics, reset behavior, and the
// alarm-scheduling control flow.
package timer

// Register offsets within the MMIO window of MMIOWindowSize bytes (spec.md §6). Only
// these offsets are valid; all others warn-and-return-zero on read,
// warn-and-ignore on write (spec.md §4.B.1).
const (
	OffCR1   = 0x00
	OffCR2   = 0x04
	OffSMCR  = 0x08
	OffDIER  = 0x0C
	OffSR    = 0x10
	OffEGR   = 0x14
	OffCCMR1 = 0x18
	OffCCMR2 = 0x1C
	OffCCER  = 0x20
	OffCNT   = 0x24
	OffPSC   = 0x28
	OffARR   = 0x2C
	OffCCR1  = 0x34
	OffCCR2  = 0x38
	OffCCR3  = 0x3C
	OffCCR4  = 0x40
	OffDCR   = 0x48
	OffDMAR  = 0x4C
	OffOR    = 0x50
)

// MMIOWindowSize is the size of the timer's memory-mapped region.
const MMIOWindowSize = 0x2000

// Bit semantics.
const (
	CR1CEN  = 1 << 0 // counter-enable gate
	DIERUIE = 1 << 0 // update-interrupt enable
	SRUIF   = 1 << 0 // update-event pending, write-one-to-keep
	EGRUG   = 1 << 0 // writing one triggers a full reset

	// CCMR1 channel-2 PWM mode 1 with preload, the one PWM configuration
	// this model recognises (spec.md §4.B.1).
	ccmr1OC2M0 = 1 << 12
	ccmr1OC2M1 = 1 << 13
	ccmr1OC2M2 = 1 << 14
	ccmr1OC2PE = 1 << 11
	// CCER channel-2 enable.
	ccerCC2E = 1 << 4
)

// regBank is the fixed layout of the 19 guest-visible registers, in
// the order spec.md §6 lists them (used by Snapshot for a stable,
// versioned field order).
type regBank struct {
	cr1   uint32
	cr2   uint32
	smcr  uint32
	dier  uint32
	sr    uint32
	egr   uint32
	ccmr1 uint32
	ccmr2 uint32
	ccer  uint32
	cnt   uint32
	psc   uint32
	arr   uint32
	ccr1  uint32
	ccr2  uint32
	ccr3  uint32
	ccr4  uint32
	dcr   uint32
	dmar  uint32
	or    uint32
}
