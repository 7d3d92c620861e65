package cli

import (
	"fmt"
	"maps"
	"slices"

	"github.com/hupe1980/geovec/engine"
	"github.com/hupe1980/geovec/engine/planar"
)

// engines maps engine names to constructors. Builds with the geos tag add
// "geos".
var engines = map[string]func() (engine.Engine, error){
	"planar": func() (engine.Engine, error) { return planar.New(), nil },
}

// EngineNames returns the engines compiled into this binary.
func EngineNames() []string {
	return slices.Sorted(maps.Keys(engines))
}

func openEngine(name string) (engine.Engine, error) {
	open, ok := engines[name]
	if !ok {
		return nil, fmt.Errorf("unknown engine %q", name)
	}
	return open()
}
