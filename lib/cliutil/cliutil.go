package cliutil

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/jedib0t/go-pretty/v6/text"
)

// Success prints an operator-facing status line in the "[+] ..." style.
func Success(format string, args ...any) {
	fmt.Println(text.FgGreen.Sprintf("[+] "+format, args...))
}

func Warn(format string, args ...any) {
	fmt.Println(text.FgYellow.Sprintf("[!] "+format, args...))
}

func Error(format string, args ...any) {
	fmt.Println(text.FgRed.Sprintf("[!] "+format, args...))
}

// Echo prints a result line without any coloring.
func Echo(format string, args ...any) {
	fmt.Printf(format+"\n", args...)
}

func Fatal(message string, err error) {
	slog.Error(message, "err", err.Error())
	Error("%s: %s... exiting.", message, err.Error())
	os.Exit(1)
}
