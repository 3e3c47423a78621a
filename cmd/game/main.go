package main

import (
	"flag"
	"log"
	"time"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/fortuna-invaders/internal/eeprom"
	"github.com/Garsondee/fortuna-invaders/internal/encoder"
	"github.com/Garsondee/fortuna-invaders/internal/game"
	"github.com/Garsondee/fortuna-invaders/internal/hal"
	"github.com/Garsondee/fortuna-invaders/internal/lcd"
	"github.com/Garsondee/fortuna-invaders/internal/replay"
	"github.com/Garsondee/fortuna-invaders/internal/window"
)

const statsAddr = "localhost:12600"

func main() {
	var tick time.Duration
	var seed uint
	var eepromPath string
	var recordPath string
	var stats bool
	var scale int

	flag.DurationVar(&tick, "tick", game.DefaultTickPeriod, "game tick period")
	flag.UintVar(&seed, "seed", 0, "LFSR seed (0: from the clock)")
	flag.StringVar(&eepromPath, "eeprom", "fortuna.eeprom", "EEPROM image file")
	flag.StringVar(&recordPath, "record", "", "save an input recording to this file on exit")
	flag.BoolVar(&stats, "statsview", false, "serve runtime charts on "+statsAddr)
	flag.IntVar(&scale, "scale", window.DefaultScale, "window size multiplier")
	flag.Parse()

	if seed == 0 {
		seed = uint(time.Now().UnixNano())
	}
	if stats {
		go func() {
			viewer.SetConfiguration(viewer.WithAddr(statsAddr))
			statsview.New().Start()
		}()
		log.Printf("stats server available at http://%s/debug/statsview", statsAddr)
	}

	ee, err := eeprom.Load(eepromPath)
	if err != nil {
		log.Fatal(err)
	}

	cfg := game.DefaultConfig()
	cfg.TickPeriod = tick
	cfg.Seed = uint16(seed)

	panel := lcd.New()
	sampler := encoder.NewSampler(encoder.New())
	var in hal.Input = sampler.Wheel()
	var rec *replay.Recorder
	if recordPath != "" {
		rec = replay.NewRecorder(in, cfg.Seed, cfg.TickPeriod)
		in = rec
	}

	simLog := game.NewSimLog(false)
	feed := window.NewEventFeed()
	feed.Attach(simLog)

	m := game.NewMachine(cfg, panel, in, ee, simLog)
	sched := game.NewScheduler(cfg, sampler.Sample, m.Tick, m.VBlank)
	m.Start()

	ebiten.SetWindowTitle("Fortuna Invaders")
	ebiten.SetWindowSize(window.Size(scale))
	runErr := ebiten.RunGame(window.New(m, panel, sampler, sched, feed, scale))

	if ee.Dirty() {
		if err := ee.Save(eepromPath); err != nil {
			log.Printf("save eeprom: %v", err)
		}
	}
	if rec != nil {
		if err := replay.Save(recordPath, rec.Recording()); err != nil {
			log.Printf("save recording: %v", err)
		}
	}
	if runErr != nil {
		log.Fatal(runErr)
	}
}
