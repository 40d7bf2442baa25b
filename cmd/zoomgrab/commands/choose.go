package commands

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"zoomgrab/lib/cliutil"
	"zoomgrab/lib/scrapers/zoominfo"

	"github.com/jedib0t/go-pretty/v6/table"
)

// promptChooser asks the operator to pick a search candidate on stdin.
// It blocks until the operator answers.
type promptChooser struct{}

func (promptChooser) Choose(company string, candidates []zoominfo.Candidate) (int, error) {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"#", "Company", "Similarity", "Link"})
	for i, c := range candidates {
		t.AppendRow(table.Row{
			i + 1,
			c.ResultCompany,
			fmt.Sprintf("%.2f", c.Similarity),
			c.Href,
		})
	}
	t.Render()

	cliutil.Warn("which search result matches your company (%d to exit)?", zoominfo.ChoiceAbort)

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return 0, err
	}
	choice, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, fmt.Errorf("expected a number: %s", err)
	}
	return choice, nil
}
