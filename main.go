package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/term"

	"github.com/lookbusy1344/riscv-stm32-core/api"
	"github.com/lookbusy1344/riscv-stm32-core/config"
	"github.com/lookbusy1344/riscv-stm32-core/riscv"
	"github.com/lookbusy1344/riscv-stm32-core/timer"
	"github.com/lookbusy1344/riscv-stm32-core/tui"
)

func main() {
	var (
		apiServer  = flag.Bool("api-server", false, "start the HTTP/WebSocket API server")
		apiAddr    = flag.String("addr", "", "API listen address (overrides config)")
		tuiDemo    = flag.Bool("tui", false, "run the interactive register/buffer viewer")
		timerSim   = flag.Bool("timer-sim", false, "simulate a timer and print its firing schedule")
		simTicks   = flag.Int64("sim-ns", 10_000_000, "nanoseconds of virtual time to simulate with -timer-sim")
		arr        = flag.Uint64("arr", 1000, "ARR value for -timer-sim")
		psc        = flag.Uint64("psc", 0, "PSC value for -timer-sim")
		configPath = flag.String("config", "", "path to config.toml (defaults to the platform config dir)")
		rv64       = flag.Bool("rv64", true, "target RV64I+M instead of RV32I+M for -encode-demo")
		encodeDemo = flag.Bool("encode-demo", false, "emit a short RISC-V instruction sequence and print it")
	)
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	switch {
	case *apiServer:
		runAPIServer(cfg, *apiAddr)
	case *tuiDemo:
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			log.Fatal("-tui requires an interactive terminal on stdout")
		}
		runTUI(cfg, *rv64)
	case *timerSim:
		runTimerSim(cfg, uint32(*arr), uint32(*psc), *simTicks)
	case *encodeDemo:
		runEncodeDemo(cfg, *rv64)
	default:
		printUsage()
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFrom(path)
}

func runAPIServer(cfg *config.Config, addrOverride string) {
	addr := cfg.API.ListenAddr
	if addrOverride != "" {
		addr = addrOverride
	}

	srv := api.NewServer(addr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("api server stopped: %v", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("api server shutdown error: %v", err)
	}
}

// simIRQ is a minimal timer.IRQLine that just counts pulses for the
// CLI's -timer-sim mode.
type simIRQ struct{ count int }

func (s *simIRQ) Pulse() { s.count++ }

func runTimerSim(cfg *config.Config, arr, psc uint32, nsToSimulate int64) {
	clock := timer.NewSimClock()
	irq := &simIRQ{}
	tm := timer.New(clock, irq)
	tm.TicksPerSecond = cfg.Timer.TicksPerSecond
	tm.FixDutyCycleFormula = cfg.Timer.FixDutyCycleFormula

	tm.WriteRegister(timer.OffARR, arr)
	tm.WriteRegister(timer.OffPSC, psc)
	tm.WriteRegister(timer.OffDIER, timer.DIERUIE)
	tm.WriteRegister(timer.OffCR1, timer.CR1CEN)

	fired := clock.Advance(nsToSimulate)
	fmt.Printf("simulated %dns of virtual time: %d update events (IRQ pulses: %d)\n", nsToSimulate, fired, irq.count)
}

func runEncodeDemo(cfg *config.Config, rv64 bool) {
	buf := riscv.NewBuffer()
	enc := riscv.NewEncoder(buf, rv64)

	enc.Movi(riscv.A0, 42, nil)
	enc.Movi(riscv.A1, -4096, nil)
	enc.OutOp(riscv.OpAdd, riscv.A2, riscv.A0, riscv.A1)

	for i, w := range buf.Words() {
		fmt.Printf("%04x: %08x\n", i*4, w)
	}
	_ = cfg
}

func runTUI(cfg *config.Config, rv64 bool) {
	clock := timer.NewSimClock()
	irq := &simIRQ{}
	tm := timer.New(clock, irq)
	tm.TicksPerSecond = cfg.Timer.TicksPerSecond
	tm.WriteRegister(timer.OffARR, 1000)
	tm.WriteRegister(timer.OffDIER, timer.DIERUIE)
	tm.WriteRegister(timer.OffCR1, timer.CR1CEN)

	buf := riscv.NewBuffer()
	enc := riscv.NewEncoder(buf, rv64)
	enc.Movi(riscv.A0, 1000, nil)

	refresh := time.Duration(cfg.TUI.RefreshMS) * time.Millisecond
	v := tui.NewViewer(tm, clock, buf, refresh)
	if err := v.Run(); err != nil {
		log.Fatalf("tui exited with error: %v", err)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `riscv-stm32-core: RISC-V host code generator + STM32F4 timer model

Usage:
  riscv-stm32-core -api-server [-addr host:port]
  riscv-stm32-core -tui
  riscv-stm32-core -timer-sim [-arr N] [-psc N] [-sim-ns N]
  riscv-stm32-core -encode-demo [-rv64]

Examples:
  riscv-stm32-core -api-server -addr 127.0.0.1:8089
  riscv-stm32-core -timer-sim -arr 1000 -psc 0 -sim-ns 10000000
  riscv-stm32-core -encode-demo -rv64=false`)
}
