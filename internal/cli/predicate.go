package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roach88/tdgeo/internal/harness"
	"github.com/roach88/tdgeo/internal/spatialir"
)

// predicateFlags describes a predicate on the command line: either a single
// leaf through --kind and friends, or a YAML tree through --predicate.
type predicateFlags struct {
	File     string
	Kind     string
	Property string
	WKT      string
	GeoJSON  string
	Distance float64
	Swapped  bool
}

func (p *predicateFlags) register(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&p.File, "predicate", "", "YAML file holding a predicate tree")
	f.StringVar(&p.Kind, "kind", "", "spatial kind (Equals, Disjoint, Intersects, BBOX, Crosses, Within, Contains, Overlaps, Touches, DWithin, Beyond)")
	f.StringVar(&p.Property, "property", "", "geometry column (default geom)")
	f.StringVar(&p.WKT, "wkt", "", "literal geometry as WKT")
	f.StringVar(&p.GeoJSON, "geojson", "", "literal geometry as GeoJSON")
	f.Float64Var(&p.Distance, "distance", 0, "buffer distance for DWithin and Beyond")
	f.BoolVar(&p.Swapped, "swapped", false, "literal is the first operand")
}

// build returns the predicate described by the flags.
func (p *predicateFlags) build(cmd *cobra.Command) (spatialir.Predicate, error) {
	leafFlags := []string{"kind", "property", "wkt", "geojson", "distance", "swapped"}

	if p.File != "" {
		for _, name := range leafFlags {
			if cmd.Flags().Changed(name) {
				return nil, fmt.Errorf("--predicate cannot be combined with --%s", name)
			}
		}
		return loadPredicateFile(p.File)
	}

	if p.Kind == "" {
		return nil, fmt.Errorf("either --predicate or --kind is required")
	}
	spec := harness.PredicateSpec{
		Kind:     p.Kind,
		Property: p.Property,
		WKT:      p.WKT,
		GeoJSON:  p.GeoJSON,
		Swapped:  p.Swapped,
	}
	if cmd.Flags().Changed("distance") {
		d := p.Distance
		spec.Distance = &d
	}
	return spec.Build()
}

func loadPredicateFile(path string) (spatialir.Predicate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read predicate: %w", err)
	}

	var spec harness.PredicateSpec
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&spec); err != nil {
		return nil, fmt.Errorf("parse predicate %s: %w", path, err)
	}
	return spec.Build()
}
