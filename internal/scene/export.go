package scene

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// SlotRecord is the exported form of one slot.
type SlotRecord struct {
	Index    int        `yaml:"index"`
	Name     string     `yaml:"name"`
	Category Category   `yaml:"category"`
	Model    string     `yaml:"model"`
	Position mgl32.Vec3 `yaml:"position,flow"`
	Blend    BlendMode  `yaml:"blend"`
	Surface  bool       `yaml:"surface,omitempty"`
}

// RangeRecord is the exported form of one category range.
type RangeRecord struct {
	Category Category `yaml:"category"`
	First    int      `yaml:"first"`
	Last     int      `yaml:"last"`
}

// PlanRecord is the exported form of a plan.
type PlanRecord struct {
	Seed    int64          `yaml:"seed"`
	Ranges  []RangeRecord  `yaml:"ranges"`
	Skipped map[string]int `yaml:"skipped,omitempty"`
	Slots   []SlotRecord   `yaml:"slots"`
}

// Record converts the plan for export.
func (p *Plan) Record() PlanRecord {
	rec := PlanRecord{Seed: p.Seed, Skipped: p.Skipped}
	for _, e := range p.Registry.Schedule() {
		rec.Ranges = append(rec.Ranges, RangeRecord{Category: e.Category, First: e.Range.First, Last: e.Range.Last})
	}
	for _, s := range p.Registry.Slots() {
		rec.Slots = append(rec.Slots, SlotRecord{
			Index:    s.Index,
			Name:     s.Name,
			Category: s.Category,
			Model:    p.modelName(s.Mesh),
			Position: s.Position,
			Blend:    s.Blend,
			Surface:  s.Surface,
		})
	}
	return rec
}

func (p *Plan) modelName(h MeshHandle) string {
	if int(h) < 0 || int(h) >= len(p.Models) {
		return fmt.Sprintf("#%d", h)
	}
	return p.Models[h].Name
}

// WriteYAML writes the plan as YAML.
func (p *Plan) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(p.Record()); err != nil {
		return err
	}
	return enc.Close()
}

// WriteTable writes one aligned line per slot. A positive limit stops after
// that many slots.
func (p *Plan) WriteTable(w io.Writer, limit int) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "INDEX\tCATEGORY\tNAME\tMODEL\tX\tY\tZ\tBLEND")
	for i, s := range p.Record().Slots {
		if limit > 0 && i >= limit {
			break
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%.1f\t%.1f\t%.1f\t%s\n",
			s.Index, s.Category, s.Name, s.Model,
			s.Position[0], s.Position[1], s.Position[2], s.Blend)
	}
	return tw.Flush()
}

// WriteRanges writes the category ranges, one per line.
func (p *Plan) WriteRanges(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATEGORY\tFIRST\tLAST\tCOUNT")
	for _, e := range p.Registry.Schedule() {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%d\n", e.Category, e.Range.First, e.Range.Last, e.Range.Len())
	}
	return tw.Flush()
}

// WriteSkipped writes one line per layer that skipped units, sorted by
// layer name.
func (p *Plan) WriteSkipped(w io.Writer) error {
	layers := make([]string, 0, len(p.Skipped))
	for layer, n := range p.Skipped {
		if n > 0 {
			layers = append(layers, layer)
		}
	}
	sort.Strings(layers)
	for _, layer := range layers {
		if _, err := fmt.Fprintf(w, "%s: %d skipped\n", layer, p.Skipped[layer]); err != nil {
			return err
		}
	}
	return nil
}
