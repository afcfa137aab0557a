package tea

import "fmt"

// PathwayKind selects the mass-balance treatment of an end-of-life pathway.
// The set is closed: pathway behavior is one of three hardcoded shapes, not a
// plugin surface.
type PathwayKind int

const (
	// PathwaySimple routes a fraction of the functional unit through the
	// technology once.
	PathwaySimple PathwayKind = iota
	// PathwayClosedLoopSingle recycles through one technology whose output
	// re-enters use directly (mechanical cleaning).
	PathwayClosedLoopSingle
	// PathwayClosedLoopTwoStage recycles through the technology plus a linked
	// downstream regeneration step before material re-enters use (solvent
	// treatment feeding film production).
	PathwayClosedLoopTwoStage
)

var pathwayKindNames = map[PathwayKind]string{
	PathwaySimple:             "simple",
	PathwayClosedLoopSingle:   "closed-loop-single",
	PathwayClosedLoopTwoStage: "closed-loop-two-stage",
}

func (k PathwayKind) String() string {
	if name, ok := pathwayKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("PathwayKind(%d)", int(k))
}

// ParsePathwayKind converts a config-file kind string to a PathwayKind.
func ParsePathwayKind(s string) (PathwayKind, error) {
	for k, name := range pathwayKindNames {
		if s == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown pathway kind %q", s)
}

// Pathway is one end-of-life allocation entry: a fraction of the functional
// unit routed to one technology, with the closed-loop cycle count and the
// mass-balance kind to apply.
type Pathway struct {
	// Technology receiving this fraction of used film.
	Technology string
	// Product is the pathway technology's primary output.
	Product string
	// Fraction of the functional unit routed here, in [0, 1].
	Fraction float64
	// Cycles is the number of closed-loop reuse cycles, >= 0. Zero for
	// simple pathways.
	Cycles int
	// Kind picks the mass-balance formula.
	Kind PathwayKind
	// Downstream names the regeneration step for two-stage loops. Left
	// empty, it is resolved from the structure table.
	Downstream string
}
