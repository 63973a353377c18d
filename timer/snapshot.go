package timer

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// snapshotVersion is bumped whenever the field layout below changes, so
// an old snapshot loaded against a newer binary fails loudly instead of
// silently misreading registers.
const snapshotVersion = 1

// Snapshot is the versioned, YAML-coded serialization of a Timer's
// complete state: the 19 registers in spec.md §6's order plus
// tick_offset, the one piece of scheduling state a guest never sees
// directly but that determines every future CNT read and alarm
// deadline. Grounded on the teacher's debugger/service state-capture
// style, re-coded with gopkg.in/yaml.v3 rather than the teacher's JSON,
// matching the pack's yaml.v3 usage for on-disk state.
type Snapshot struct {
	Version    int    `yaml:"version"`
	TickOffset uint64 `yaml:"tick_offset"`

	CR1   uint32 `yaml:"cr1"`
	CR2   uint32 `yaml:"cr2"`
	SMCR  uint32 `yaml:"smcr"`
	DIER  uint32 `yaml:"dier"`
	SR    uint32 `yaml:"sr"`
	EGR   uint32 `yaml:"egr"`
	CCMR1 uint32 `yaml:"ccmr1"`
	CCMR2 uint32 `yaml:"ccmr2"`
	CCER  uint32 `yaml:"ccer"`
	CNT   uint32 `yaml:"cnt"`
	PSC   uint32 `yaml:"psc"`
	ARR   uint32 `yaml:"arr"`
	CCR1  uint32 `yaml:"ccr1"`
	CCR2  uint32 `yaml:"ccr2"`
	CCR3  uint32 `yaml:"ccr3"`
	CCR4  uint32 `yaml:"ccr4"`
	DCR   uint32 `yaml:"dcr"`
	DMAR  uint32 `yaml:"dmar"`
	OR    uint32 `yaml:"or"`
}

// Snapshot captures the timer's current state. CNT is materialized via
// currentCount() rather than read from the stale bank.cnt field, so a
// snapshot taken between MMIO accesses still reflects the free-running
// counter (spec.md §3).
func (t *Timer) Snapshot() Snapshot {
	return Snapshot{
		Version:    snapshotVersion,
		TickOffset: t.tickOffset,
		CR1:        t.bank.cr1,
		CR2:        t.bank.cr2,
		SMCR:       t.bank.smcr,
		DIER:       t.bank.dier,
		SR:         t.bank.sr,
		EGR:        t.bank.egr,
		CCMR1:      t.bank.ccmr1,
		CCMR2:      t.bank.ccmr2,
		CCER:       t.bank.ccer,
		CNT:        uint32(t.currentCount()),
		PSC:        t.bank.psc,
		ARR:        t.bank.arr,
		CCR1:       t.bank.ccr1,
		CCR2:       t.bank.ccr2,
		CCR3:       t.bank.ccr3,
		CCR4:       t.bank.ccr4,
		DCR:        t.bank.dcr,
		DMAR:       t.bank.dmar,
		OR:         t.bank.or,
	}
}

// Restore replaces the timer's register bank and tick_offset from s,
// then re-arms the alarm if the restored CR1 has CEN set. The restored
// CNT value is copied into bank.cnt, but CNT reads always recompute
// from tick_offset (spec.md §3), so TickOffset is the field that
// determines what CNT reads after a restore.
func (t *Timer) Restore(s Snapshot) error {
	if s.Version != snapshotVersion {
		return &SnapshotVersionError{Got: s.Version, Want: snapshotVersion}
	}
	t.tickOffset = s.TickOffset
	t.bank = regBank{
		cr1: s.CR1, cr2: s.CR2, smcr: s.SMCR, dier: s.DIER, sr: s.SR,
		egr: s.EGR, ccmr1: s.CCMR1, ccmr2: s.CCMR2, ccer: s.CCER,
		cnt: s.CNT, psc: s.PSC, arr: s.ARR,
		ccr1: s.CCR1, ccr2: s.CCR2, ccr3: s.CCR3, ccr4: s.CCR4,
		dcr: s.DCR, dmar: s.DMAR, or: s.OR,
	}
	if t.bank.cr1&CR1CEN != 0 {
		t.setAlarm()
	}
	return nil
}

// Encode and Decode convert a Snapshot to and from a plain YAML
// document via gopkg.in/yaml.v3, using the struct's yaml tags.
func Encode(s Snapshot) ([]byte, error) {
	return yaml.Marshal(s)
}

func Decode(data []byte) (Snapshot, error) {
	var s Snapshot
	err := yaml.Unmarshal(data, &s)
	return s, err
}

// SnapshotVersionError reports a version mismatch between a loaded
// snapshot and the running binary's expected layout.
type SnapshotVersionError struct {
	Got, Want int
}

func (e *SnapshotVersionError) Error() string {
	return fmt.Sprintf("timer: snapshot version mismatch: got %d, want %d", e.Got, e.Want)
}
