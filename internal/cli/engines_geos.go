//go:build geos && cgo

package cli

import (
	"github.com/hupe1980/geovec/engine"
	"github.com/hupe1980/geovec/engine/geos"
)

func init() {
	engines["geos"] = func() (engine.Engine, error) { return geos.New() }
}
