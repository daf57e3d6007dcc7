package main

import (
	"errors"
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/spikerun/common"
)

func main() {
	debug := flag.Bool("debug", false, "draw sensor probes and the state readout")
	baseMonitor := flag.Bool("m", false, "use base monitor instead of primary (for multi-monitor setups)")
	levelName := flag.String("level", "", "level name in levels/ (basename, .json optional)")
	script := flag.String("script", "", "tengo input script (path or name under prefabs/scripts)")
	watch := flag.Bool("watch", false, "reload prefabs/*.yaml and the input script on change")
	spawnName := flag.String("spawn", "", "spawn point name (default: first in level)")
	flag.Parse()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("spikerun")
	ebiten.SetTPS(common.TPS)

	game, err := NewGame(Config{
		Level:  *levelName,
		Debug:  *debug,
		Script: *script,
		Watch:  *watch,
		Spawn:  *spawnName,
	})
	if err != nil {
		log.Fatal(err)
	}
	err = ebiten.RunGame(game)
	game.Close()
	if err != nil && !errors.Is(err, errQuit) {
		log.Fatal(err)
	}
}
