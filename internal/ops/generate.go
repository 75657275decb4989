package ops

import (
	"database/sql"
	"time"

	"hourzero/internal/clock"
	"hourzero/internal/config"
	"hourzero/internal/db"
	"hourzero/internal/engine"
)

// GenerateInput carries the raw parameters of a generate request. Start and
// End are HH:MM text; empty FinishMode/Rounding/Curve fall back to the
// configured defaults. When Save is set the run is stored in the catalog.
type GenerateInput struct {
	Start      string  `json:"start"`
	End        string  `json:"end"`
	Days       int     `json:"days"`
	FinishMode string  `json:"finish_mode,omitempty"`
	Rounding   string  `json:"rounding,omitempty"`
	Curve      string  `json:"curve,omitempty"`
	Save       bool    `json:"save,omitempty"`
	Name       *string `json:"name,omitempty"`
	Note       *string `json:"note,omitempty"`
}

// GenerateOutput is the full schedule plus the ID of the saved run, when one
// was saved.
type GenerateOutput struct {
	RunID   *string     `json:"run_id,omitempty"`
	Input   InputView   `json:"input"`
	Rows    []RowView   `json:"rows"`
	Summary SummaryView `json:"summary"`
}

// Generate parses and resolves the request, runs the narrowing engine, and
// optionally saves the run. Validation errors from parsing and the engine
// pass through with their codes intact.
func Generate(database *sql.DB, cfg *config.Config, input GenerateInput) (*GenerateOutput, error) {
	in, err := resolveInput(cfg, input)
	if err != nil {
		return nil, err
	}

	sched, err := engine.Generate(in)
	if err != nil {
		return nil, err
	}

	out := &GenerateOutput{
		Input:   inputView(in),
		Rows:    rowViews(sched.Rows),
		Summary: summaryView(sched.Summary),
	}

	if input.Save {
		id := newRunID()
		run := &db.Run{
			ID:          id,
			Name:        input.Name,
			Note:        input.Note,
			StartMin:    int(in.Start),
			EndMin:      int(in.End),
			Days:        in.Days,
			FinishMode:  string(in.FinishMode),
			Rounding:    string(in.Rounding),
			Curve:       string(in.Curve),
			LengthMin:   sched.Summary.Length,
			CollapseMin: int(sched.Summary.Collapse),
			CreatedAt:   time.Now().Unix(),
		}
		if err := db.InsertRun(database, run); err != nil {
			return nil, err
		}
		out.RunID = &id
	}

	return out, nil
}

// resolveInput parses the clock times and applies configured defaults for
// unset mode fields. Unknown mode values are left for the engine to reject.
func resolveInput(cfg *config.Config, input GenerateInput) (engine.Input, error) {
	start, err := clock.Parse(input.Start)
	if err != nil {
		return engine.Input{}, err
	}
	end, err := clock.Parse(input.End)
	if err != nil {
		return engine.Input{}, err
	}

	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	return engine.Input{
		Start:      start,
		End:        end,
		Days:       input.Days,
		FinishMode: engine.FinishMode(defaultString(input.FinishMode, cfg.DefaultFinishMode)),
		Rounding:   engine.Rounding(defaultString(input.Rounding, cfg.DefaultRounding)),
		Curve:      engine.Curve(defaultString(input.Curve, cfg.DefaultCurve)),
	}, nil
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
