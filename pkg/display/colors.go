package display

import (
	"github.com/ladybug-tools/dragonfly-display/pkg/geometry"
	"github.com/ladybug-tools/dragonfly-display/pkg/honeybee"
)

// category is one color-by layer.
type category struct {
	id    string
	name  string
	color geometry.Color
}

// Type categories in display order.
var typeCategories = []category{
	{"Shade", "Shade", geometry.RGB(120, 75, 190)},
	{"Indoor_Shade", "Indoor Shade", geometry.RGB(159, 99, 255)},
	{"Wall", "Wall", geometry.RGB(230, 180, 60)},
	{"Interior_Wall", "Interior Wall", geometry.RGB(230, 215, 150)},
	{"Roof", "Roof", geometry.RGB(128, 20, 20)},
	{"Ceiling", "Ceiling", geometry.RGB(255, 128, 128)},
	{"Floor", "Floor", geometry.RGB(128, 128, 128)},
	{"Interior_Floor", "Interior Floor", geometry.RGB(255, 190, 190)},
	{"Air_Boundary", "Air Boundary", geometry.RGB(255, 255, 200)},
	{"Aperture", "Aperture", geometry.Color{R: 64, G: 180, B: 255, A: 100}},
	{"Interior_Aperture", "Interior Aperture", geometry.Color{R: 128, G: 225, B: 255, A: 100}},
	{"Door", "Door", geometry.RGB(160, 150, 100)},
	{"Interior_Door", "Interior Door", geometry.RGB(165, 160, 130)},
	{"Glass_Door", "Glass Door", geometry.Color{R: 128, G: 204, B: 255, A: 100}},
}

// Boundary condition categories in display order.
var bcCategories = []category{
	{"Outdoors", "Outdoors", geometry.RGB(64, 180, 255)},
	{"Ground", "Ground", geometry.RGB(165, 82, 0)},
	{"Adiabatic", "Adiabatic", geometry.RGB(255, 128, 128)},
	{"Surface", "Surface", geometry.RGB(0, 128, 0)},
	{"Other", "Other", geometry.RGB(255, 255, 200)},
}

// Envelope edge colors by category.
var edgeColors = map[string]geometry.Color{
	honeybee.RoofsToWalls:          geometry.RGB(0, 0, 255),
	honeybee.SlabsToWalls:          geometry.RGB(255, 0, 0),
	honeybee.ExposedFloorsToWalls:  geometry.RGB(255, 128, 0),
	honeybee.WallsToWalls:          geometry.RGB(0, 160, 0),
	honeybee.RoofRidges:            geometry.RGB(128, 0, 255),
	honeybee.RoofsToRoofs:          geometry.RGB(0, 200, 255),
	honeybee.ExposedFloorsToFloors: geometry.RGB(255, 200, 0),
	honeybee.WindowFrames:          geometry.RGB(0, 128, 255),
	honeybee.SkylightFrames:        geometry.RGB(0, 255, 255),
	honeybee.DoorFrames:            geometry.RGB(160, 100, 50),
	honeybee.Mullions:              geometry.RGB(90, 90, 90),
}

var (
	wireColor = geometry.RGB(0, 0, 0)
	gridColor = geometry.RGB(80, 80, 80)
	textColor = geometry.RGB(0, 0, 0)
)
