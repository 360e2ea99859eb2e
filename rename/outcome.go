package rename

import (
	"errors"
)

type (
	Status string

	// Outcome records what happened to one manifest entry.
	// Path and Target are empty when the entry never got that far.
	Outcome struct {
		Err    error
		File   string
		Path   string
		Target string
		Status Status
		Index  int
	}

	Result struct {
		Outcomes []Outcome
	}

	Summary struct {
		Total    int `json:"total" yaml:"total"`
		Renamed  int `json:"renamed" yaml:"renamed"`
		Planned  int `json:"planned" yaml:"planned"`
		Skipped  int `json:"skipped" yaml:"skipped"`
		Excluded int `json:"excluded" yaml:"excluded"`
		Invalid  int `json:"invalid" yaml:"invalid"`
		Failed   int `json:"failed" yaml:"failed"`
	}
)

const (
	Renamed Status = "renamed"
	// Dry run only.
	Planned  Status = "planned"
	Skipped  Status = "skipped"
	Excluded Status = "excluded"
	Invalid  Status = "invalid"
	Failed   Status = "failed"
)

// Errors reports whether the status counts against the run's exit status.
func (s Status) Errors() bool {
	return s == Invalid || s == Failed
}

func (r *Result) add(o Outcome) {
	r.Outcomes = append(r.Outcomes, o)
}

func (r *Result) Summary() Summary {
	s := Summary{Total: len(r.Outcomes)}

	for i := range r.Outcomes {
		switch r.Outcomes[i].Status {
		case Renamed:
			s.Renamed += 1
		case Planned:
			s.Planned += 1
		case Skipped:
			s.Skipped += 1
		case Excluded:
			s.Excluded += 1
		case Invalid:
			s.Invalid += 1
		case Failed:
			s.Failed += 1
		}
	}

	return s
}

// Err joins the errors of invalid and failed outcomes. Skips are not errors.
func (r *Result) Err() error {
	var errs []error

	for i := range r.Outcomes {
		if r.Outcomes[i].Status.Errors() {
			errs = append(errs, r.Outcomes[i].Err)
		}
	}

	return errors.Join(errs...)
}
