package polyline

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// Feature wraps ls into a GeoJSON feature. The feature carries the number
// of vertices and the length of ls as properties, together with props.
func Feature(ls orb.LineString, props map[string]interface{}) *geojson.Feature {
	f := geojson.NewFeature(ls)
	for k, v := range props {
		f.Properties[k] = v
	}
	f.Properties["vertices"] = len(ls)
	f.Properties["length"] = Length(ls)
	return f
}

// MarshalGeoJSON exports polylines as a GeoJSON feature collection.
// Coordinates are written unchanged, i.e. they are not interpreted as
// geographic coordinates.
func MarshalGeoJSON(lines ...orb.LineString) ([]byte, error) {
	if len(lines) == 0 {
		return nil, ErrEmpty
	}
	fc := geojson.NewFeatureCollection()
	for i, ls := range lines {
		fc.Append(Feature(ls, map[string]interface{}{"index": i}))
	}
	return fc.MarshalJSON()
}
