// Command nescore runs an iNES cartridge.
package main

import (
	"flag"
	"os"

	"github.com/corvidlabs/nescore/console"
	"github.com/golang/glog"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	flag.Parse()
	defer glog.Flush()

	if flag.NArg() != 1 {
		glog.Errorf("usage: %s <rom-path>", os.Args[0])
		os.Exit(1)
	}

	bus, err := console.Load(flag.Arg(0))
	if err != nil {
		glog.Errorf("nescore: %v", err)
		os.Exit(1)
	}

	if err := ebiten.RunGame(bus); err != nil {
		glog.Errorf("nescore: %v", err)
		os.Exit(1)
	}
}
