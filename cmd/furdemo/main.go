package main

import (
	"flag"
	"fmt"
	"os"

	furshell "github.com/sotrh/furshell"
)

func main() {
	configPath := flag.String("config", "config.json", "path to the settings file")
	shaderPath := flag.String("shader", "", "fur shader to load from disk with hot reload (default: embedded)")
	furmapPath := flag.String("furmap", "", "write the strand map for -shell as a PNG and exit")
	shell := flag.Int("shell", furshell.NumShells/2, "shell index for -furmap")
	showNormals := flag.Bool("normals", false, "draw vertex normals as debug lines")
	showBounds := flag.Bool("bounds", false, "draw the fur bounding box as debug lines")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	if *furmapPath != "" {
		if err := furshell.WriteFurMap(*furmapPath, furshell.FurTiling, *shell, 8); err != nil {
			fmt.Fprintf(os.Stderr, "furmap: %v\n", err)
			os.Exit(1)
		}
		return
	}

	cfg, err := furshell.LoadGameConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	app := furshell.NewAppBuilder().
		UseModule(
			furshell.LoggingModule{Prefix: "furdemo", Debug: *debug},
			furshell.TimeModule{},
			furshell.NewWindowModule(&cfg, "furshell"),
			furshell.InputModule{},
			furshell.AssetServerModule{},
			furshell.WalkCameraModule{},
			furshell.FurModule{},
			furshell.DebugModule{},
			furshell.FurSceneModule{
				ShaderPath:       *shaderPath,
				MouseSensitivity: cfg.MouseSensitivity,
				ShowNormals:      *showNormals,
				ShowBounds:       *showBounds,
			},
		).
		Build()

	app.Run()
}
