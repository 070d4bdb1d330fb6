/*
Package polygon turns paths into geometry: triangle strip meshes ("ribbons")
following a path, and planar footprints of those ribbons on the ground
plane.

Footprints live in the x/z plane (y is up) and are held as polyclip
polygons, which gives us boolean operations on them. This lets clients
check whether two tracks overlap and by how much:

	a, _ := polygon.Footprint(s1, 2, 16)
	b, _ := polygon.Footprint(s2, 2, 16)
	if polygon.Overlap(a, b) > 0 {
	    ...
	}

Polygons may also be built knot by knot, as in

	pg := polygon.NullPolygon().Knot(p0).Knot(p1).Knot(p2).Cycle()

# BSD License

# Copyright (c) Norbert Pillmayer

All rights reserved.

Please refer to the license file for more information.
*/
package polygon

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'splines.polygon'
func tracer() tracing.Trace {
	return tracing.Select("splines.polygon")
}

var (
	ErrInvalidWidth      = errors.New("ribbon width must be positive")
	ErrInvalidResolution = errors.New("resolution must be at least 1")
)
