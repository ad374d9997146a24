// Package display builds visualization sets from room-level models.
//
// # Builders
//
// [ModelToVisSet] colors a model by face type or boundary condition, adds
// attribute overlays ([attr.RoomAttribute], [attr.FaceAttribute]), sensor
// grids and a wireframe. [ModelComparisonToVisSet] overlays two models in
// two colors. [ModelEnvelopeEdgesToVisSet] draws classified envelope edges.
//
// # Layer order
//
// Layers are only added when they hold geometry. The color-by layers come
// first in a fixed category order; the wireframe, when included, is always
// last.
package display
