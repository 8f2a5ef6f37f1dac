// Command graphreport-tui browses a results snapshot written by graphreport
package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dd0wney/cluso-graphreport/pkg/logging"
	"github.com/dd0wney/cluso-graphreport/pkg/report"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "Usage: graphreport-tui <results.json[.sz]>")
		os.Exit(2)
	}

	res, err := report.ReadSnapshot(os.Args[1])
	if err != nil {
		logging.ErrorLog("failed to read snapshot", logging.Path(os.Args[1]), logging.Error(err))
		os.Exit(1)
	}

	p := tea.NewProgram(initialModel(res), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logging.ErrorLog("tui exited with error", logging.Error(err))
		os.Exit(1)
	}
}
