package timer

import "log"

// Timer models one STM32F4 general-purpose timer instance: a 19-register
// MMIO bank (registers.go) coupled to a VirtualClock and an IRQLine
// (both ambient collaborators per spec.md §1). Grounded line-for-line
// on stm32f405_timer_{read,write,reset,set_alarm,interrupt} in
// hw/timer/stm32f405_timer.c.
//
// No internal locking is required: the host emulator's device lock
// serializes MMIO operations against callback execution (spec.md §5).
type Timer struct {
	bank       regBank
	tickOffset uint64

	clock VirtualClock
	irq   IRQLine

	// TicksPerSecond is the timer's input (pre-prescaler) clock
	// frequency in Hz. Defaults to 1MHz, matching the worked example in
	// spec.md §8 property 5 (PSC=0, ARR=1000 firing every 1ms).
	TicksPerSecond uint64

	// FixDutyCycleFormula selects the corrected PWM duty-cycle formula
	// (100*CCR2/ARR) instead of the original's dimensionally-suspect
	// CCR2/(100*(PSC+1)) (spec.md §9). Defaults to false, preserving
	// observable parity with the distilled source.
	FixDutyCycleFormula bool
}

const defaultTicksPerSecond = 1_000_000

// New creates a Timer wired to clock and irq, matching
// stm32f405_timer_init's sysbus_init_irq/memory_region_init_io/
// timer_new_ns sequence. tickOffset is seeded from the clock's current
// reading, exactly as the original seeds it at boot.
func New(clock VirtualClock, irq IRQLine) *Timer {
	t := &Timer{clock: clock, irq: irq, TicksPerSecond: defaultTicksPerSecond}
	t.tickOffset = t.nowTicks()
	return t
}

func (t *Timer) nsPerTick() int64 {
	return 1_000_000_000 / int64(t.TicksPerSecond)
}

// nowTicks is the raw elapsed-tick reading of the virtual clock, with
// no tick_offset applied.
func (t *Timer) nowTicks() uint64 {
	return uint64(t.clock.NowNS() / t.nsPerTick())
}

// currentCount is tick_offset + nowTicks, the value spec.md §3 names
// as the CNT invariant: "TIM_CNT observed by the guest equals
// tick_offset + (now_ns / ticks_per_second_denominator)".
func (t *Timer) currentCount() uint64 {
	return t.tickOffset + t.nowTicks()
}

// Reset zeroes every register and reseeds tick_offset from the current
// virtual time (as the two's complement of the elapsed ticks), so CNT
// reads count up from zero starting at the reset, matching
// stm32f405_timer_reset.
func (t *Timer) Reset() {
	t.bank = regBank{}
	t.tickOffset = -t.nowTicks()
	t.clock.Cancel()
}

// ReadRegister implements the guest-visible MMIO read at offset. Bad
// offsets are a guest error (spec.md §7): logged and zero is returned.
func (t *Timer) ReadRegister(offset uint32) uint32 {
	switch offset {
	case OffCR1:
		return t.bank.cr1
	case OffCR2:
		return t.bank.cr2
	case OffSMCR:
		return t.bank.smcr
	case OffDIER:
		return t.bank.dier
	case OffSR:
		return t.bank.sr
	case OffEGR:
		return t.bank.egr
	case OffCCMR1:
		return t.bank.ccmr1
	case OffCCMR2:
		return t.bank.ccmr2
	case OffCCER:
		return t.bank.ccer
	case OffCNT:
		t.bank.cnt = uint32(t.currentCount())
		return t.bank.cnt
	case OffPSC:
		return t.bank.psc
	case OffARR:
		return t.bank.arr
	case OffCCR1:
		return t.bank.ccr1
	case OffCCR2:
		return t.bank.ccr2
	case OffCCR3:
		return t.bank.ccr3
	case OffCCR4:
		return t.bank.ccr4
	case OffDCR:
		return t.bank.dcr
	case OffDMAR:
		return t.bank.dmar
	case OffOR:
		return t.bank.or
	default:
		logGuestFault(offset, "read")
		return 0
	}
}

// WriteRegister implements the guest-visible MMIO write at offset,
// value. Bad offsets are ignored after logging (spec.md §7).
func (t *Timer) WriteRegister(offset uint32, value uint32) {
	switch offset {
	case OffCR1:
		wasEnabled := t.bank.cr1&CR1CEN != 0
		t.bank.cr1 = value
		if !wasEnabled && value&CR1CEN != 0 {
			t.setAlarm()
		}
	case OffCR2:
		t.bank.cr2 = value
	case OffSMCR:
		t.bank.smcr = value
	case OffDIER:
		t.bank.dier = value
	case OffSR:
		// Write-one-to-keep: hardware sets bits, software clears them by
		// writing zero to that bit (spec.md §3, §4.B.1).
		t.bank.sr &= value
	case OffEGR:
		t.bank.egr = value
		if value&EGRUG != 0 {
			t.Reset()
		}
	case OffCCMR1:
		t.bank.ccmr1 = value
	case OffCCMR2:
		t.bank.ccmr2 = value
	case OffCCER:
		t.bank.ccer = value
	case OffCNT:
		t.bank.cnt = value
		t.setAlarm()
	case OffPSC:
		t.bank.psc = value
	case OffARR:
		t.bank.arr = value
		t.setAlarm()
	case OffCCR1:
		t.bank.ccr1 = value
	case OffCCR2:
		t.bank.ccr2 = value
	case OffCCR3:
		t.bank.ccr3 = value
	case OffCCR4:
		t.bank.ccr4 = value
	case OffDCR:
		t.bank.dcr = value
	case OffDMAR:
		t.bank.dmar = value
	case OffOR:
		t.bank.or = value
	default:
		logGuestFault(offset, "write")
	}
}

// setAlarm recomputes the next firing deadline and arms the virtual
// clock (spec.md §4.B.2). Unlike the distilled source (which computes
// a tick-domain quantity and passes it to the nanosecond-based clock
// API unconverted -- the conflation flagged in spec.md §9), this
// implementation converts to nanoseconds exactly once, so the clock is
// always scheduled in real nanoseconds.
//
// The timer's auto-reload period, in raw ticks, is ARR*(PSC+1); the
// next deadline is the first multiple of that period strictly after
// the current tick count, which keeps firing periodic even though CNT
// itself (per the §3 invariant) never wraps.
func (t *Timer) setAlarm() {
	if t.bank.arr == 0 {
		t.clock.Cancel()
		return
	}

	period := uint64(t.bank.arr) * uint64(t.bank.psc+1)
	current := t.currentCount()
	nextFire := (current/period + 1) * period
	ticksUntilFire := nextFire - current

	if ticksUntilFire == 0 {
		t.clock.Cancel()
		t.onExpire()
		return
	}

	deadline := t.clock.NowNS() + int64(ticksUntilFire)*t.nsPerTick()
	t.clock.Schedule(deadline, t.onExpire)
}

// onExpire is the interrupt handler invoked by the virtual clock at
// the armed deadline (spec.md §4.B.3), matching
// stm32f405_timer_interrupt.
func (t *Timer) onExpire() {
	if t.bank.dier&DIERUIE != 0 && t.bank.cr1&CR1CEN != 0 {
		t.bank.sr |= SRUIF
		t.irq.Pulse()
		t.setAlarm()
	}
	// If either gate is clear, the event is dropped silently: no
	// re-arm, no IRQ (spec.md §4.B.3, testable property 8).

	t.reportPWMDutyCycle()
}

// reportPWMDutyCycle recognises exactly one capture/compare
// configuration -- CCMR1 selecting PWM mode 1 on channel 2 with
// preload enabled, CCER channel-2-enable set -- and logs the computed
// duty cycle. No other PWM modes are modelled (spec.md §4.B.1).
func (t *Timer) reportPWMDutyCycle() {
	pwmMode1 := t.bank.ccmr1&(ccmr1OC2M2+ccmr1OC2M1) != 0 && t.bank.ccmr1&ccmr1OC2M0 == 0
	preload := t.bank.ccmr1&ccmr1OC2PE != 0
	chEnabled := t.bank.ccer&ccerCC2E != 0
	if !(pwmMode1 && preload && chEnabled) {
		return
	}

	var duty uint32
	if t.FixDutyCycleFormula {
		if t.bank.arr != 0 {
			duty = 100 * t.bank.ccr2 / t.bank.arr
		}
	} else {
		duty = t.bank.ccr2 / (100 * (t.bank.psc + 1))
	}
	log.Printf("timer: Duty Cycle: %d%%", duty)
}
