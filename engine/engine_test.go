package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTypeIDString(t *testing.T) {
	tests := []struct {
		id   TypeID
		want string
	}{
		{Point, "Point"},
		{LineString, "LineString"},
		{LinearRing, "LinearRing"},
		{Polygon, "Polygon"},
		{MultiPoint, "MultiPoint"},
		{MultiLineString, "MultiLineString"},
		{MultiPolygon, "MultiPolygon"},
		{GeometryCollection, "GeometryCollection"},
		{TypeID(8), "Unknown"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.id.String())
	}
}

func TestTypeIDCodes(t *testing.T) {
	assert.Equal(t, TypeID(0), Point)
	assert.Equal(t, TypeID(7), GeometryCollection)
}
