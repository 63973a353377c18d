// Package tui is the live viewer for a riscv.Encoder buffer and a
// timer.Timer register bank, built on the same rivo/tview + gdamore/tcell
// stack the teacher's interactive debugger used for its register and
// disassembly panes -- reworked here around the two components this
// module actually exposes instead of a live ARM CPU.
package tui

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/lookbusy1344/riscv-stm32-core/riscv"
	"github.com/lookbusy1344/riscv-stm32-core/timer"
)

// Viewer shows a timer's 19 registers and an encoder's emitted word
// stream, refreshing on a fixed interval.
type Viewer struct {
	app    *tview.Application
	regs   *tview.Table
	words  *tview.TextView
	status *tview.TextView

	timer   *timer.Timer
	clock   *timer.SimClock
	buffer  *riscv.Buffer
	refresh time.Duration

	stop chan struct{}
}

// NewViewer builds a Viewer over tm/clock (may be nil for an
// encoder-only session) and buf (may be nil for a timer-only session).
func NewViewer(tm *timer.Timer, clock *timer.SimClock, buf *riscv.Buffer, refresh time.Duration) *Viewer {
	v := &Viewer{
		app:     tview.NewApplication(),
		regs:    tview.NewTable().SetBorders(false),
		words:   tview.NewTextView().SetDynamicColors(true),
		status:  tview.NewTextView().SetDynamicColors(true),
		timer:   tm,
		clock:   clock,
		buffer:  buf,
		refresh: refresh,
		stop:    make(chan struct{}),
	}

	v.regs.SetBorder(true).SetTitle(" timer registers ")
	v.words.SetBorder(true).SetTitle(" encoder buffer ")
	v.status.SetBorder(true).SetTitle(" status ")

	flex := tview.NewFlex().
		AddItem(v.regs, 0, 2, false).
		AddItem(tview.NewFlex().SetDirection(tview.FlexRow).
			AddItem(v.words, 0, 3, false).
			AddItem(v.status, 3, 1, false), 0, 3, false)

	v.app.SetRoot(flex, true)
	v.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyCtrlC || event.Rune() == 'q' {
			v.app.Stop()
			return nil
		}
		return event
	})

	return v
}

// Run starts the refresh loop and blocks until the user quits ('q' or
// ctrl-C) or Stop is called.
func (v *Viewer) Run() error {
	go v.refreshLoop()
	err := v.app.Run()
	close(v.stop)
	return err
}

// Stop tears down the viewer programmatically.
func (v *Viewer) Stop() {
	v.app.Stop()
}

func (v *Viewer) refreshLoop() {
	ticker := time.NewTicker(v.refresh)
	defer ticker.Stop()

	v.redraw()
	for {
		select {
		case <-ticker.C:
			v.redraw()
		case <-v.stop:
			return
		}
	}
}

func (v *Viewer) redraw() {
	v.app.QueueUpdateDraw(func() {
		v.drawRegisters()
		v.drawWords()
		v.drawStatus()
	})
}

func (v *Viewer) drawRegisters() {
	v.regs.Clear()
	if v.timer == nil {
		v.regs.SetCell(0, 0, tview.NewTableCell("no timer attached"))
		return
	}

	snap := v.timer.Snapshot()
	rows := []struct {
		name string
		val  uint32
	}{
		{"CR1", snap.CR1}, {"CR2", snap.CR2}, {"SMCR", snap.SMCR},
		{"DIER", snap.DIER}, {"SR", snap.SR}, {"EGR", snap.EGR},
		{"CCMR1", snap.CCMR1}, {"CCMR2", snap.CCMR2}, {"CCER", snap.CCER},
		{"CNT", snap.CNT}, {"PSC", snap.PSC}, {"ARR", snap.ARR},
		{"CCR1", snap.CCR1}, {"CCR2", snap.CCR2}, {"CCR3", snap.CCR3},
		{"CCR4", snap.CCR4}, {"DCR", snap.DCR}, {"DMAR", snap.DMAR},
		{"OR", snap.OR},
	}
	for i, row := range rows {
		v.regs.SetCell(i, 0, tview.NewTableCell(row.name).SetTextColor(tcell.ColorYellow))
		v.regs.SetCell(i, 1, tview.NewTableCell(fmt.Sprintf("0x%08x", row.val)))
	}
}

func (v *Viewer) drawWords() {
	v.words.Clear()
	if v.buffer == nil {
		fmt.Fprint(v.words, "no encoder attached")
		return
	}
	for i, w := range v.buffer.Words() {
		fmt.Fprintf(v.words, "%04x: %08x\n", i*4, w)
	}
}

func (v *Viewer) drawStatus() {
	v.status.Clear()
	if v.clock != nil {
		fmt.Fprintf(v.status, "virtual time: %dns    press q to quit", v.clock.NowNS())
		return
	}
	fmt.Fprint(v.status, "press q to quit")
}
