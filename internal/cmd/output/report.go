package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/agentstation/radarmap/pkg/differ"
	"github.com/agentstation/radarmap/pkg/reconciler"
	"github.com/agentstation/radarmap/pkg/sync"
)

// Report is the serialisable outcome of an update run.
type Report struct {
	RunID    string                `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	Output   string                `json:"output" yaml:"output"`
	DryRun   bool                  `json:"dry_run" yaml:"dry_run"`
	Written  bool                  `json:"written" yaml:"written"`
	Inputs   Inputs                `json:"inputs" yaml:"inputs"`
	Roster   reconciler.Statistics `json:"roster" yaml:"roster"`
	Warnings []string              `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Changes  *differ.Changeset     `json:"changes" yaml:"changes"`
}

// Inputs counts what each input contributed.
type Inputs struct {
	Stations  int `json:"stations" yaml:"stations"`
	Prior     int `json:"prior" yaml:"prior"`
	Available int `json:"available" yaml:"available"`
}

// NewReport builds a report from a run result.
func NewReport(r *sync.Result) *Report {
	report := &Report{
		RunID:   r.RunID,
		Output:  r.OutputPath,
		DryRun:  r.DryRun,
		Written: r.Written,
		Inputs: Inputs{
			Stations:  r.Stations,
			Prior:     r.Prior,
			Available: r.Available,
		},
		Changes: r.Changes,
	}
	if r.Merge != nil {
		report.Roster = r.Merge.Stats()
		report.Warnings = r.Merge.Warnings()
	}
	return report
}

// SummaryTable lays out the run counters.
func SummaryTable(report *Report) Data {
	rows := [][]string{
		{"Listed stations", strconv.Itoa(report.Inputs.Stations)},
		{"Previous stations", strconv.Itoa(report.Inputs.Prior)},
		{"Stations with data", strconv.Itoa(report.Inputs.Available)},
		{"Roster", strconv.Itoa(report.Roster.Total)},
		{"Active", strconv.Itoa(report.Roster.Active)},
		{"Inactive", strconv.Itoa(report.Roster.Inactive)},
		{"New", strconv.Itoa(report.Roster.Created)},
		{"Disambiguated", strconv.Itoa(report.Roster.Disambiguated)},
		{"Obsolete", strconv.Itoa(report.Roster.Obsolete)},
		{"Without data", strconv.Itoa(report.Roster.Unavailable)},
	}
	for _, w := range report.Warnings {
		rows = append(rows, []string{"Warning", w})
	}

	return Data{
		Title:           fmt.Sprintf("Output: %s%s", report.Output, status(report)),
		Headers:         []string{"Metric", "Value"},
		Rows:            rows,
		ColumnAlignment: []Align{AlignLeft, AlignRight},
	}
}

func status(report *Report) string {
	switch {
	case report.DryRun:
		return " (dry run)"
	case report.Written:
		return " (written)"
	}
	return ""
}

// ChangesTable lists every change of a changeset.
func ChangesTable(changes *differ.Changeset) Data {
	data := Data{
		Title:   "Changes",
		Headers: []string{"Change", "ID", "Name", "Region", "Old", "New"},
	}
	if changes == nil {
		return data
	}
	for _, c := range changes.All() {
		data.Rows = append(data.Rows, []string{string(c.Type), c.ID, c.Name, c.Region, c.Old, c.New})
	}
	return data
}

// FormatResult writes the outcome of a run to w in format.
func FormatResult(w io.Writer, r *sync.Result, format Format) error {
	report := NewReport(r)
	formatter := NewFormatter(format)

	switch format {
	case FormatJSON, FormatYAML:
		return formatter.Format(w, report)
	}

	tables := []Data{SummaryTable(report)}
	if report.Changes != nil && report.Changes.HasChanges() {
		tables = append(tables, ChangesTable(report.Changes))
	}
	return formatter.Format(w, tables)
}
