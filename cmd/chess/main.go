package main

import (
	"flag"
	"log"
	"os"

	"github.com/benbeisheim/chessmatch/internal/console"
	"github.com/benbeisheim/chessmatch/internal/model"
	"github.com/fatih/color"
)

func main() {
	noColor := flag.Bool("no-color", false, "disable colored output")
	flag.Parse()
	if *noColor {
		color.NoColor = true
	}

	game := console.NewGame(model.NewMatch(), os.Stdin, color.Output)
	game.Renderer().Clear = !color.NoColor
	if err := game.Run(); err != nil {
		log.Fatal(err)
	}
}
