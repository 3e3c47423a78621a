package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/fortuna-invaders/internal/eeprom"
	"github.com/Garsondee/fortuna-invaders/internal/encoder"
	"github.com/Garsondee/fortuna-invaders/internal/game"
	"github.com/Garsondee/fortuna-invaders/internal/lcd"
	"github.com/Garsondee/fortuna-invaders/internal/term"
)

func main() {
	var tick time.Duration
	var seed uint
	var eepromPath string
	var mute bool

	flag.DurationVar(&tick, "tick", game.DefaultTickPeriod, "game tick period")
	flag.UintVar(&seed, "seed", 0, "LFSR seed (0: from the clock)")
	flag.StringVar(&eepromPath, "eeprom", "fortuna.eeprom", "EEPROM image file")
	flag.BoolVar(&mute, "mute", false, "no sound")
	flag.Parse()

	if seed == 0 {
		seed = uint(time.Now().UnixNano())
	}
	ee, err := eeprom.Load(eepromPath)
	if err != nil {
		log.Fatal(err)
	}

	cfg := game.DefaultConfig()
	cfg.TickPeriod = tick
	cfg.Seed = uint16(seed)

	simLog := game.NewSimLog(false)
	sound := term.NewSound()
	if !mute {
		if err := sound.Initialize(); err != nil {
			log.Printf("sound disabled: %v", err)
		}
		defer sound.Close()
	}
	simLog.OnAdd = sound.Event

	panel := lcd.New()
	sampler := encoder.NewSampler(encoder.New())
	m := game.NewMachine(cfg, panel, sampler.Wheel(), ee, simLog)
	sched := game.NewScheduler(cfg, sampler.Sample, m.Tick, m.VBlank)
	m.Start()

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}
	if w, h := screen.Size(); w < term.Columns || h < term.Rows {
		screen.Fini()
		log.Fatalf("terminal is %dx%d, need at least %dx%d", w, h, term.Columns, term.Rows)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = term.New(screen, panel, sampler, sched).Run(ctx)
	stop()
	screen.Fini()

	if ee.Dirty() {
		if err := ee.Save(eepromPath); err != nil {
			log.Printf("save eeprom: %v", err)
		}
	}
	if err != nil {
		log.Fatal(err)
	}
}
