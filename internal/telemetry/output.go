// Package telemetry writes per-tick encounter samples as CSV.
package telemetry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
)

// AgentSample is one agent at one tick.
type AgentSample struct {
	Tick           int64   `csv:"tick"`
	Time           float64 `csv:"time_s"`
	Enemy          int     `csv:"enemy"`
	State          string  `csv:"state"`
	X              float64 `csv:"x"`
	Z              float64 `csv:"z"`
	Visible        bool    `csv:"visible"`
	Collidable     bool    `csv:"collidable"`
	Target         int     `csv:"target"` // 0 when none held
	TargetDarkness float64 `csv:"target_darkness"`
	ChaseCooldown  bool    `csv:"chase_cooldown"`
}

// ZoneSample is one darkness zone at one tick.
type ZoneSample struct {
	Tick     int64   `csv:"tick"`
	Time     float64 `csv:"time_s"`
	Zone     string  `csv:"zone"`
	Light    float64 `csv:"light"`
	Darkness float64 `csv:"darkness_at_center"`
}

// EventSample is a discrete encounter event.
type EventSample struct {
	Tick   int64   `csv:"tick"`
	Time   float64 `csv:"time_s"`
	Enemy  int     `csv:"enemy"`
	Kind   string  `csv:"kind"`
	Detail string  `csv:"detail"`
}

type csvFile struct {
	f             *os.File
	headerWritten bool
}

func (c *csvFile) write(records any) error {
	if !c.headerWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, c.f); err != nil {
			return err
		}
		c.headerWritten = true
		return nil
	}
	return gocsv.MarshalWithoutHeaders(records, c.f)
}

// Output handles CSV logging into a directory.
type Output struct {
	dir    string
	agents csvFile
	zones  csvFile
	events csvFile
}

// NewOutput creates the output directory and its CSV files.
// Returns nil if dir is empty (output disabled); a nil Output ignores writes.
func NewOutput(dir string) (*Output, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	o := &Output{dir: dir}
	for _, out := range []struct {
		name string
		dst  *csvFile
	}{
		{"agents.csv", &o.agents},
		{"zones.csv", &o.zones},
		{"events.csv", &o.events},
	} {
		f, err := os.Create(filepath.Join(dir, out.name))
		if err != nil {
			o.Close()
			return nil, fmt.Errorf("creating %s: %w", out.name, err)
		}
		out.dst.f = f
	}
	return o, nil
}

// Dir returns the output directory.
func (o *Output) Dir() string {
	if o == nil {
		return ""
	}
	return o.dir
}

// WriteAgents appends agent samples to agents.csv.
func (o *Output) WriteAgents(rows []AgentSample) error {
	if o == nil || len(rows) == 0 {
		return nil
	}
	if err := o.agents.write(rows); err != nil {
		return fmt.Errorf("writing agents: %w", err)
	}
	return nil
}

// WriteZones appends zone samples to zones.csv.
func (o *Output) WriteZones(rows []ZoneSample) error {
	if o == nil || len(rows) == 0 {
		return nil
	}
	if err := o.zones.write(rows); err != nil {
		return fmt.Errorf("writing zones: %w", err)
	}
	return nil
}

// WriteEvents appends event samples to events.csv.
func (o *Output) WriteEvents(rows []EventSample) error {
	if o == nil || len(rows) == 0 {
		return nil
	}
	if err := o.events.write(rows); err != nil {
		return fmt.Errorf("writing events: %w", err)
	}
	return nil
}

// Close closes all open files.
func (o *Output) Close() error {
	if o == nil {
		return nil
	}
	var first error
	for _, c := range []*csvFile{&o.agents, &o.zones, &o.events} {
		if c.f == nil {
			continue
		}
		if err := c.f.Close(); err != nil && first == nil {
			first = err
		}
		c.f = nil
	}
	return first
}
