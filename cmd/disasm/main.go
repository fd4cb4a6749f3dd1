// Command disasm is an offline ROM disassembler: it loads an 8080 ROM
// image and prints one line per instruction from a given start address
// through the end of the loaded image. Grounded on the teacher's
// cmd/trace_cpu_execution (flag-free os.Args-driven ROM-path CLI printing
// a plain-text trace) and the disassembler shape borrowed from
// IntuitionEngine's debug_disasm_z80.go, here run end-to-end over a ROM
// rather than interactively against a live monitor.
package main

import (
	"flag"
	"fmt"
	"os"

	"invaders8080/internal/disasm"
	"invaders8080/internal/memory"
)

func main() {
	romPath := flag.String("rom", "", "Path to the ROM image to disassemble")
	start := flag.Uint("start", 0, "Address to start disassembling from")
	count := flag.Int("count", 0, "Number of instructions to print (0 = to the end of the ROM)")
	flag.Parse()

	if *romPath == "" {
		fmt.Println("Usage: disasm -rom <path-to-rom> [-start addr] [-count n]")
		os.Exit(1)
	}

	romData, err := os.ReadFile(*romPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading ROM file: %v\n", err)
		os.Exit(1)
	}

	mem := memory.New()
	mem.Load(romData, 0)

	pc := uint16(*start)
	end := uint16(len(romData))
	if *count > 0 {
		end = 0xFFFF
	}

	printed := 0
	for pc < end {
		size, mnemonic := disasm.Decode(mem, pc)
		fmt.Printf("%04X  %s\n", pc, mnemonic)
		pc += uint16(size)
		printed++
		if *count > 0 && printed >= *count {
			break
		}
	}
}
