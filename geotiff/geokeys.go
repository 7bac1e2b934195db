package geotiff

import (
	"errors"
	"fmt"
	"log"
)

// GeoKeyID identifies a key inside the GeoKey directory.
type GeoKeyID uint16

// GeoTIFF configuration and geographic CS parameter keys.
const (
	GTModelTypeGeoKey           GeoKeyID = 1024
	GTRasterTypeGeoKey          GeoKeyID = 1025
	GTCitationGeoKey            GeoKeyID = 1026
	GeographicTypeGeoKey        GeoKeyID = 2048
	GeogCitationGeoKey          GeoKeyID = 2049
	GeogGeodeticDatumGeoKey     GeoKeyID = 2050
	GeogPrimeMeridianGeoKey     GeoKeyID = 2051
	GeogLinearUnitsGeoKey       GeoKeyID = 2052
	GeogLinearUnitSizeGeoKey    GeoKeyID = 2053
	GeogAngularUnitsGeoKey      GeoKeyID = 2054
	GeogAngularUnitSizeGeoKey   GeoKeyID = 2055
	GeogEllipsoidGeoKey         GeoKeyID = 2056
	GeogSemiMajorAxisGeoKey     GeoKeyID = 2057
	GeogSemiMinorAxisGeoKey     GeoKeyID = 2058
	GeogInvFlatteningGeoKey     GeoKeyID = 2059
	GeogAzimuthUnitsGeoKey      GeoKeyID = 2060
	GeogPrimeMeridianLongGeoKey GeoKeyID = 2061
)

// Projected and vertical CS parameter keys.
const (
	ProjectedCSTypeGeoKey          GeoKeyID = 3072
	PCSCitationGeoKey              GeoKeyID = 3073
	ProjectionGeoKey               GeoKeyID = 3074
	ProjCoordTransGeoKey           GeoKeyID = 3075
	ProjLinearUnitsGeoKey          GeoKeyID = 3076
	ProjLinearUnitSizeGeoKey       GeoKeyID = 3077
	ProjStdParallel1GeoKey         GeoKeyID = 3078
	ProjStdParallel2GeoKey         GeoKeyID = 3079
	ProjNatOriginLongGeoKey        GeoKeyID = 3080
	ProjNatOriginLatGeoKey         GeoKeyID = 3081
	ProjFalseEastingGeoKey         GeoKeyID = 3082
	ProjFalseNorthingGeoKey        GeoKeyID = 3083
	ProjFalseOriginLongGeoKey      GeoKeyID = 3084
	ProjFalseOriginLatGeoKey       GeoKeyID = 3085
	ProjFalseOriginEastingGeoKey   GeoKeyID = 3086
	ProjFalseOriginNorthingGeoKey  GeoKeyID = 3087
	ProjCenterLongGeoKey           GeoKeyID = 3088
	ProjCenterLatGeoKey            GeoKeyID = 3089
	ProjCenterEastingGeoKey        GeoKeyID = 3090
	ProjCenterNorthingGeoKey       GeoKeyID = 3091
	ProjScaleAtNatOriginGeoKey     GeoKeyID = 3092
	ProjScaleAtCenterGeoKey        GeoKeyID = 3093
	ProjAzimuthAngleGeoKey         GeoKeyID = 3094
	ProjStraightVertPoleLongGeoKey GeoKeyID = 3095
	VerticalCSTypeGeoKey           GeoKeyID = 4096
	VerticalCitationGeoKey         GeoKeyID = 4097
	VerticalDatumGeoKey            GeoKeyID = 4098
	VerticalUnitsGeoKey            GeoKeyID = 4099
)

var geoKeyToLabel = map[GeoKeyID]string{
	GTModelTypeGeoKey:              "GTModelTypeGeoKey",
	GTRasterTypeGeoKey:             "GTRasterTypeGeoKey",
	GTCitationGeoKey:               "GTCitationGeoKey",
	GeographicTypeGeoKey:           "GeographicTypeGeoKey",
	GeogCitationGeoKey:             "GeogCitationGeoKey",
	GeogGeodeticDatumGeoKey:        "GeogGeodeticDatumGeoKey",
	GeogPrimeMeridianGeoKey:        "GeogPrimeMeridianGeoKey",
	GeogLinearUnitsGeoKey:          "GeogLinearUnitsGeoKey",
	GeogLinearUnitSizeGeoKey:       "GeogLinearUnitSizeGeoKey",
	GeogAngularUnitsGeoKey:         "GeogAngularUnitsGeoKey",
	GeogAngularUnitSizeGeoKey:      "GeogAngularUnitSizeGeoKey",
	GeogEllipsoidGeoKey:            "GeogEllipsoidGeoKey",
	GeogSemiMajorAxisGeoKey:        "GeogSemiMajorAxisGeoKey",
	GeogSemiMinorAxisGeoKey:        "GeogSemiMinorAxisGeoKey",
	GeogInvFlatteningGeoKey:        "GeogInvFlatteningGeoKey",
	GeogAzimuthUnitsGeoKey:         "GeogAzimuthUnitsGeoKey",
	GeogPrimeMeridianLongGeoKey:    "GeogPrimeMeridianLongGeoKey",
	ProjectedCSTypeGeoKey:          "ProjectedCSTypeGeoKey",
	PCSCitationGeoKey:              "PCSCitationGeoKey",
	ProjectionGeoKey:               "ProjectionGeoKey",
	ProjCoordTransGeoKey:           "ProjCoordTransGeoKey",
	ProjLinearUnitsGeoKey:          "ProjLinearUnitsGeoKey",
	ProjLinearUnitSizeGeoKey:       "ProjLinearUnitSizeGeoKey",
	ProjStdParallel1GeoKey:         "ProjStdParallel1GeoKey",
	ProjStdParallel2GeoKey:         "ProjStdParallel2GeoKey",
	ProjNatOriginLongGeoKey:        "ProjNatOriginLongGeoKey",
	ProjNatOriginLatGeoKey:         "ProjNatOriginLatGeoKey",
	ProjFalseEastingGeoKey:         "ProjFalseEastingGeoKey",
	ProjFalseNorthingGeoKey:        "ProjFalseNorthingGeoKey",
	ProjFalseOriginLongGeoKey:      "ProjFalseOriginLongGeoKey",
	ProjFalseOriginLatGeoKey:       "ProjFalseOriginLatGeoKey",
	ProjFalseOriginEastingGeoKey:   "ProjFalseOriginEastingGeoKey",
	ProjFalseOriginNorthingGeoKey:  "ProjFalseOriginNorthingGeoKey",
	ProjCenterLongGeoKey:           "ProjCenterLongGeoKey",
	ProjCenterLatGeoKey:            "ProjCenterLatGeoKey",
	ProjCenterEastingGeoKey:        "ProjCenterEastingGeoKey",
	ProjCenterNorthingGeoKey:       "ProjCenterNorthingGeoKey",
	ProjScaleAtNatOriginGeoKey:     "ProjScaleAtNatOriginGeoKey",
	ProjScaleAtCenterGeoKey:        "ProjScaleAtCenterGeoKey",
	ProjAzimuthAngleGeoKey:         "ProjAzimuthAngleGeoKey",
	ProjStraightVertPoleLongGeoKey: "ProjStraightVertPoleLongGeoKey",
	VerticalCSTypeGeoKey:           "VerticalCSTypeGeoKey",
	VerticalCitationGeoKey:         "VerticalCitationGeoKey",
	VerticalDatumGeoKey:            "VerticalDatumGeoKey",
	VerticalUnitsGeoKey:            "VerticalUnitsGeoKey",
}

func (id GeoKeyID) String() string {
	v, ok := geoKeyToLabel[id]
	if !ok {
		return fmt.Sprintf("UnknownGeoKey(%d)", uint16(id))
	}
	return v
}

// Known reports whether the id belongs to the recognized key set.
func (id GeoKeyID) Known() bool {
	_, ok := geoKeyToLabel[id]
	return ok
}

// GeoKey is one decoded key record: its id and its direct 16-bit value.
// Indirect or multi-valued records are never represented as GeoKeys.
type GeoKey struct {
	ID    GeoKeyID
	Value uint16
}

func (k GeoKey) String() string {
	return fmt.Sprintf("%s(%d)", k.ID, k.Value)
}

// GeoKeyDir is the decoded GeoKey directory: the 4-value header followed by
// the key records that decoded successfully, in header order.
type GeoKeyDir struct {
	Version       uint16
	Revision      uint16
	MinorRevision uint16
	Keys          []GeoKey
}

// GeoKeys decodes the GeoKey directory nested in the GeoKeyDirectory tag.
// Records whose value lives in another tag (location != 0 with a count other
// than 1) are skipped with a diagnostic. A failure here never affects raster
// access.
func (ifd *IFD) GeoKeys() (*GeoKeyDir, error) {
	entry, ok := ifd.get(GeoKeyDirectory)
	if !ok {
		return nil, errors.New("GeoKeyDirectory tag not found")
	}
	shorts, ok := entry.Value.shortValues()
	if !ok {
		return nil, fmt.Errorf("GeoKeyDirectory value is %s, want SHORT", entry.FType)
	}
	if len(shorts) < 4 {
		return nil, fmt.Errorf("GeoKeyDirectory header too short: %d values", len(shorts))
	}

	dir := &GeoKeyDir{
		Version:       shorts[0],
		Revision:      shorts[1],
		MinorRevision: shorts[2],
	}
	keyCount := int(shorts[3])
	dir.Keys = make([]GeoKey, 0, keyCount)

	for i := 0; i < keyCount; i++ {
		start := 4 + 4*i
		if start+4 > len(shorts) {
			return nil, fmt.Errorf("GeoKeyDirectory truncated: %d keys declared, record %d missing", keyCount, i)
		}
		rec := shorts[start : start+4]
		id, location, count, value := GeoKeyID(rec[0]), rec[1], rec[2], rec[3]
		if location != 0 && count != 1 {
			// The value is stored in another tag (GeoDoubleParams,
			// GeoAsciiParams, ...), which is not supported.
			log.Printf("geotiff: skipping geo key %s: indirect value in tag %d (count %d)", id, location, count)
			continue
		}
		dir.Keys = append(dir.Keys, GeoKey{ID: id, Value: value})
	}
	return dir, nil
}
