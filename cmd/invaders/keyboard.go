package main

import (
	"github.com/veandco/go-sdl2/sdl"

	"invaders8080/internal/cabinet"
)

// keyScanner tracks which of the cabinet's input bits are currently held
// down, built from SDL keyboard events. Grounded on adrichey-go-chip8's
// processInput (PollEvent loop switching on *sdl.KeyboardEvent /
// *sdl.QuitEvent, KEYDOWN/KEYUP toggling a held-state table).
type keyScanner struct {
	coin, p1Start, p2Start             bool
	p1Left, p1Right, p1Fire            bool
	p2Left, p2Right, p2Fire            bool
	tilt                                bool
}

func newKeyScanner() *keyScanner {
	return &keyScanner{}
}

// poll drains the SDL event queue and reports whether the user asked to
// quit (Escape or a window-close event).
func (k *keyScanner) poll() (quit bool) {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			quit = true
		case *sdl.KeyboardEvent:
			held := e.Type == sdl.KEYDOWN
			switch e.Keysym.Sym {
			case sdl.K_ESCAPE:
				if held {
					quit = true
				}
			case sdl.K_c:
				k.coin = held
			case sdl.K_1:
				k.p1Start = held
			case sdl.K_2:
				k.p2Start = held
			case sdl.K_LEFT:
				k.p1Left = held
			case sdl.K_RIGHT:
				k.p1Right = held
			case sdl.K_SPACE:
				k.p1Fire = held
			case sdl.K_a:
				k.p2Left = held
			case sdl.K_d:
				k.p2Right = held
			case sdl.K_w:
				k.p2Fire = held
			case sdl.K_t:
				k.tilt = held
			}
		}
	}
	return quit
}

// inputs snapshots the scanner's held-key state into a cabinet.Inputs
// value for Machine.RunFrame.
func (k *keyScanner) inputs() cabinet.Inputs {
	return cabinet.Inputs{
		Coin:    k.coin,
		P1Start: k.p1Start,
		P2Start: k.p2Start,
		P1Left:  k.p1Left,
		P1Right: k.p1Right,
		P1Fire:  k.p1Fire,
		P2Left:  k.p2Left,
		P2Right: k.p2Right,
		P2Fire:  k.p2Fire,
		Tilt:    k.tilt,
	}
}
