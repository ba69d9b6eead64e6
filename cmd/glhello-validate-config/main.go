package main

import (
	"fmt"
	"log"
	"os"

	"github.com/fosdem/glhello/lib/config"
	"github.com/fosdem/glhello/lib/rendering/shaders"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatalf("Usage: %s <config file>", os.Args[0])
	}
	cfg, err := config.Parse(os.Args[1])
	if err != nil {
		fmt.Printf("Config invalid: %s\n", err)
		os.Exit(1)
	}

	var shaderer *shaders.Shaderer
	if cfg.Render.Shaders != nil {
		shaderer, err = shaders.NewShadererFromFiles(string(cfg.Render.Shaders.Vertex), string(cfg.Render.Shaders.Fragment))
	} else {
		shaderer, err = shaders.NewShaderer()
	}
	if err != nil {
		fmt.Printf("Shaders invalid: %s\n", err)
		os.Exit(1)
	}

	fmt.Print("Config valid!\n\n")

	fmt.Print(cfg)

	fmt.Printf("\nShader templates: %v\n", shaderer.TemplateNames())
}
