package main

import (
	"github.com/PolarWolf314/kete/cmd"
	"github.com/awnumar/memguard"
)

func main() {
	// Wipe key material on Ctrl-C and on exit.
	memguard.CatchInterrupt()
	memguard.SafeExit(cmd.Execute())
}
