package covlearn

import (
	"encoding/json"
	"io"
	"time"

	"github.com/hscells/covlearn/dataset"
)

// Report describes a training run.
type Report struct {
	RunID      string           `json:"run_id"`
	Gamma      float64          `json:"gamma"`
	Manifest   string           `json:"manifest"`
	ModelPath  string           `json:"model_path"`
	Categories []CategoryReport `json:"categories"`
	Summary    dataset.Summary  `json:"summary"`
	Started    time.Time        `json:"started"`
	Finished   time.Time        `json:"finished"`
	Error      string           `json:"error,omitempty"`
}

// CategoryReport is what one category of the manifest contributed.
type CategoryReport struct {
	Dir     string   `json:"dir"`
	Label   int      `json:"label"`
	Samples int      `json:"samples"`
	Skipped []string `json:"skipped,omitempty"`
	Error   string   `json:"error,omitempty"`
}

func (r *Report) addGroups(groups []dataset.Group) {
	for _, g := range groups {
		c := CategoryReport{
			Dir:     g.Category.Dir,
			Label:   g.Category.Label,
			Samples: len(g.Samples),
			Skipped: g.Skipped,
		}
		if g.Err != nil {
			c.Error = g.Err.Error()
		}
		r.Categories = append(r.Categories, c)
	}
}

// WriteJSON writes the report as indented JSON.
func (r Report) WriteJSON(w io.Writer) error {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(b, '\n'))
	return err
}
