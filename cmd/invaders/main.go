// Command invaders is the playable host: it loads a ROM image, opens an
// SDL2 window, rasterizes the emulated cabinet's video RAM into it at 60
// Hz, and scans the keyboard into the cabinet's input ports. Grounded on
// the teacher's cmd/emulator/main.go (flag-based CLI, ROM-file loading,
// blocking Run call) and adrichey-go-chip8's processInput/update
// (SDL2 window/renderer/texture setup, PollEvent switch over
// *sdl.KeyboardEvent, texture.Update + Clear/Copy/Present per frame).
package main

import (
	"flag"
	"fmt"
	"os"
	"unsafe"

	"github.com/veandco/go-sdl2/sdl"

	"invaders8080/internal/config"
	"invaders8080/internal/machine"
)

const (
	nativeWidth  = 224 // columns, addressed directly by byte row
	nativeHeight = 256 // rows, addressed by bit within a byte

	windowWidth  = 256 // native height becomes window width after rotation
	windowHeight = 224 // native width becomes window height after rotation

	windowTitle = "Space Invaders"
)

func main() {
	romPath := flag.String("rom", "", "Path to the Space Invaders ROM image")
	configPath := flag.String("config", "", "Path to a cabinet profile YAML file (optional)")
	scale := flag.Int("scale", 3, "Display scale (1-6)")
	flag.Parse()

	if *romPath == "" {
		fmt.Println("Usage: invaders -rom <path-to-rom>")
		fmt.Println("  -rom <path>      Path to the ROM image")
		fmt.Println("  -config <path>   Path to a cabinet profile YAML file (optional)")
		fmt.Println("  -scale <1-6>     Display scale (default: 3)")
		os.Exit(1)
	}
	if *scale < 1 || *scale > 6 {
		fmt.Fprintln(os.Stderr, "Error: scale must be between 1 and 6")
		os.Exit(1)
	}

	romData, err := os.ReadFile(*romPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading ROM file: %v\n", err)
		os.Exit(1)
	}

	profile := config.DefaultCabinetProfile()
	if *configPath != "" {
		f, err := os.Open(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening config file: %v\n", err)
			os.Exit(1)
		}
		profile, err = config.LoadCabinetProfile(f)
		f.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing config file: %v\n", err)
			os.Exit(1)
		}
	}

	m := machine.New()
	if err := m.LoadROM(romData); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ROM: %v\n", err)
		os.Exit(1)
	}
	m.LoadCabinetProfile(profile)
	m.Start()

	if err := sdl.Init(sdl.INIT_EVERYTHING); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing SDL2: %v\n", err)
		os.Exit(1)
	}
	defer sdl.Quit()

	window, err := sdl.CreateWindow(windowTitle, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(windowWidth*(*scale)), int32(windowHeight*(*scale)), sdl.WINDOW_SHOWN)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating window: %v\n", err)
		os.Exit(1)
	}
	defer window.Destroy()

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating renderer: %v\n", err)
		os.Exit(1)
	}
	defer renderer.Destroy()

	texture, err := renderer.CreateTexture(sdl.PIXELFORMAT_RGBA8888, sdl.TEXTUREACCESS_STREAMING, windowWidth, windowHeight)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating texture: %v\n", err)
		os.Exit(1)
	}
	defer texture.Destroy()

	scanner := newKeyScanner()
	pixels := make([]uint32, windowWidth*windowHeight)

	quit := false
	for !quit {
		quit = scanner.poll()

		in := scanner.inputs()
		if !profile.TiltEnabled {
			in.Tilt = false
		}
		vblank := m.RunFrame(in)
		if !vblank {
			continue
		}

		rasterize(m.VRAM(), pixels)
		texture.Update(nil, unsafe.Pointer(&pixels[0]), windowWidth*4)
		renderer.Clear()
		renderer.Copy(texture, nil, nil)
		renderer.Present()
		sdl.Delay(1)
	}
}
