package dispatch

import (
	"encoding/json"
	"io"
	"time"
)

// Report is the JSON shape handed to the calling pipeline layer, which is
// responsible for displaying or annotating it; polycheck itself does not
// aggregate across jobs.
type Report struct {
	GeneratedAt time.Time `json:"generated_at"`
	*Outcome
}

// WriteJSON emits the outcome as an indented JSON report
func (o *Outcome) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Report{GeneratedAt: time.Now().UTC(), Outcome: o})
}
