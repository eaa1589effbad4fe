package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"pacerename/internal/preflight"
)

const statusInfo = "INFO"

var statusColors = map[string]string{
	statusInfo: "\x1b[34m",
	"OK":       "\x1b[32m",
	"WARN":     "\x1b[33m",
	"ERROR":    "\x1b[31m",
}

const ansiReset = "\x1b[0m"

// checkReport renders preflight output with labels padded to the longest name.
type checkReport struct {
	width    int
	colorize bool
}

func newCheckReport(info [][2]string, results []preflight.Result, colorize bool) checkReport {
	width := 0
	for _, row := range info {
		width = max(width, len(row[0]))
	}
	for _, result := range results {
		width = max(width, len(result.Name))
	}
	return checkReport{width: width + 1, colorize: colorize}
}

func (r checkReport) info(label, value string) string {
	return r.line(label, statusInfo, value)
}

func (r checkReport) result(result preflight.Result) string {
	return r.line(result.Name, result.Status(), result.Detail)
}

func (r checkReport) line(label, status, detail string) string {
	text := fmt.Sprintf("  %-*s [%s]", r.width, label+":", status)
	if detail = strings.TrimSpace(detail); detail != "" {
		text += " " + detail
	}
	if color, ok := statusColors[status]; ok && r.colorize {
		return color + text + ansiReset
	}
	return text
}

// summary is the closing line of the check command.
func (r checkReport) summary(results []preflight.Result) string {
	var warned, failed int
	for _, result := range results {
		switch result.Status() {
		case "WARN":
			warned++
		case "ERROR":
			failed++
		}
	}
	status := "OK"
	switch {
	case failed > 0:
		status = "ERROR"
	case warned > 0:
		status = "WARN"
	}
	text := fmt.Sprintf("%d checks, %d warnings, %d errors", len(results), warned, failed)
	if color, ok := statusColors[status]; ok && r.colorize {
		return color + text + ansiReset
	}
	return text
}

func shouldColorize(writer io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
