package logging

import (
	"io"
	"log"
	"os"
)

var (
	Debug   *log.Logger
	Scan    *log.Logger
	Enabled bool
)

func init() {
	// Only enable logging if DUVIEW_DEBUG is set; a TUI cannot share
	// stdout with its renderer.
	if os.Getenv("DUVIEW_DEBUG") == "" {
		Debug = log.New(io.Discard, "", 0)
		Scan = log.New(io.Discard, "", 0)
		Enabled = false
		return
	}

	Enabled = true

	// One debug.log shared by all loggers
	debugFile, err := os.OpenFile("debug.log", os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		Debug = log.New(os.Stderr, "[DEBUG] ", log.Ldate|log.Ltime)
		Scan = log.New(os.Stderr, "[SCAN] ", log.Ldate|log.Ltime)
		return
	}

	Debug = log.New(debugFile, "", log.Lmicroseconds)
	Scan = log.New(debugFile, "", log.Lmicroseconds)
}
