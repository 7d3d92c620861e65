package ufunc

import (
	"github.com/hupe1980/geovec"
	"github.com/hupe1980/geovec/array"
	"github.com/hupe1980/geovec/engine"
)

// Unary predicates.
var (
	IsEmpty  = register(newUnaryPredicate("is_empty", engine.Engine.IsEmpty))
	IsSimple = register(newUnaryPredicate("is_simple", engine.Engine.IsSimple))
	IsRing   = register(newUnaryPredicate("is_ring", engine.Engine.IsRing))
	HasZ     = register(newUnaryPredicate("has_z", engine.Engine.HasZ))
	IsClosed = register(newUnaryPredicate("is_closed", engine.Engine.IsClosed))
	IsValid  = register(newUnaryPredicate("is_valid", engine.Engine.IsValid))
)

// Binary predicates.
var (
	Disjoint   = register(newBinaryPredicate("disjoint", engine.Engine.Disjoint))
	Touches    = register(newBinaryPredicate("touches", engine.Engine.Touches))
	Intersects = register(newBinaryPredicate("intersects", engine.Engine.Intersects))
	Crosses    = register(newBinaryPredicate("crosses", engine.Engine.Crosses))
	Within     = register(newBinaryPredicate("within", engine.Engine.Within))
	Contains   = register(newBinaryPredicate("contains", engine.Engine.Contains))
	Overlaps   = register(newBinaryPredicate("overlaps", engine.Engine.Overlaps))
	Equals     = register(newBinaryPredicate("equals", engine.Engine.Equals))
	Covers     = register(newBinaryPredicate("covers", engine.Engine.Covers))
	CoveredBy  = register(newBinaryPredicate("covered_by", engine.Engine.CoveredBy))

	EqualsExact = register(newTolerancePredicate("equals_exact", engine.Engine.EqualsExact))
)

// Unary transforms.
var (
	Clone                = register(newUnaryTransform("clone", engine.Engine.Clone))
	Envelope             = register(newUnaryTransform("envelope", engine.Engine.Envelope))
	ConvexHull           = register(newUnaryTransform("convex_hull", engine.Engine.ConvexHull))
	Boundary             = register(newUnaryTransform("boundary", engine.Engine.Boundary))
	UnaryUnion           = register(newUnaryTransform("unary_union", engine.Engine.UnaryUnion))
	PointOnSurface       = register(newUnaryTransform("point_on_surface", engine.Engine.PointOnSurface))
	GetCentroid          = register(newUnaryTransform("get_centroid", engine.Engine.Centroid))
	LineMerge            = register(newUnaryTransform("line_merge", engine.Engine.LineMerge))
	ExtractUniquePoints  = register(newUnaryTransform("extract_unique_points", engine.Engine.ExtractUniquePoints))
	GetStartPoint        = register(newUnaryTransform("get_start_point", engine.Engine.StartPoint))
	GetEndPoint          = register(newUnaryTransform("get_end_point", engine.Engine.EndPoint))
	GetExteriorRing      = register(newUnaryTransform("get_exterior_ring", engine.Engine.ExteriorRing))
	Normalize            = register(newUnaryTransform("normalize", normalize))
	PolygonsWithoutHoles = register(newUnaryTransform("polygons_without_holes", withoutHoles))
)

// Indexed and parametric transforms.
var (
	GetInteriorRingN = register(newIndexedTransform("get_interior_ring_n", engine.Engine.InteriorRingN))
	GetPointN        = register(newIndexedTransform("get_point_n", engine.Engine.PointN))
	GetGeometryN     = register(newIndexedTransform("get_geometry_n", engine.Engine.GeometryN))

	Interpolate              = register(newParametricTransform("interpolate", engine.Engine.Interpolate))
	InterpolateNormalized    = register(newParametricTransform("interpolate_normalized", engine.Engine.InterpolateNormalized))
	Simplify                 = register(newParametricTransform("simplify", engine.Engine.Simplify))
	TopologyPreserveSimplify = register(newParametricTransform("topology_preserve_simplify", engine.Engine.TopologyPreserveSimplify))

	Buffer = register(newBufferTransform("buffer", engine.Engine.Buffer))
	Snap   = register(newSnapTransform("snap", engine.Engine.Snap))
)

// Set operations.
var (
	Intersection        = register(newBinaryTransform("intersection", engine.Engine.Intersection))
	Difference          = register(newBinaryTransform("difference", engine.Engine.Difference))
	SymmetricDifference = register(newBinaryTransform("symmetric_difference", engine.Engine.SymDifference))
	Union               = register(newBinaryTransform("union", engine.Engine.Union))
	SharedPaths         = register(newBinaryTransform("shared_paths", engine.Engine.SharedPaths))
)

// Measures, codes and counts.
var (
	GetX      = register(newMeasure("get_x", engine.Engine.X))
	GetY      = register(newMeasure("get_y", engine.Engine.Y))
	Area      = register(newMeasure("area", engine.Engine.Area))
	Length    = register(newMeasure("length", engine.Engine.Length))
	GetLength = register(newMeasure("get_length", engine.Engine.CurveLength))

	Distance          = register(newBinaryMeasure("distance", engine.Engine.Distance))
	HausdorffDistance = register(newBinaryMeasure("hausdorff_distance", engine.Engine.HausdorffDistance))

	Project           = register(newProjection("project", engine.Engine.Project))
	ProjectNormalized = register(newProjection("project_normalized", engine.Engine.ProjectNormalized))

	GeomTypeID              = register(newCode("geom_type_id", engine.Engine.TypeID))
	GetDimensions           = register(newCode("get_dimensions", engine.Engine.Dimensions))
	GetCoordinateDimensions = register(newCode("get_coordinate_dimensions", engine.Engine.CoordinateDimension))

	GetSRID             = register(newCount("get_srid", engine.Engine.SRID))
	GetNumGeometries    = register(newCount("get_num_geometries", engine.Engine.NumGeometries))
	GetNumInteriorRings = register(newCount("get_num_interior_rings", engine.Engine.NumInteriorRings))
	GetNumPoints        = register(newCount("get_num_points", engine.Engine.NumPoints))
	GetNumCoordinates   = register(newCount("get_num_coordinates", engine.Engine.NumCoordinates))
)

// Constructors.
var (
	Points = register(&PointBuilder{sequenceBuilder{
		base: base{name: "points", kind: KindPoints, types: "d->O", sig: array.MustParseSignature("(d)->()")},
		seq:  geovec.SeqPoint,
	}})
	LineStrings = register(&LineStringBuilder{sequenceBuilder{
		base: base{name: "linestrings", kind: KindLineStrings, types: "d->O", sig: array.MustParseSignature("(i,d)->()")},
		seq:  geovec.SeqLineString,
	}})
	LinearRings = register(&LinearRingBuilder{sequenceBuilder{
		base: base{name: "linearrings", kind: KindLinearRings, types: "d->O", sig: array.MustParseSignature("(i,d)->()")},
		seq:  geovec.SeqLinearRing,
	}})
	PolygonsWithHoles = register(&PolygonBuilder{
		base: base{name: "polygons_with_holes", kind: KindPolygonsWithHoles, types: "OO->O", sig: array.MustParseSignature("(),(i)->()")},
	})
)
