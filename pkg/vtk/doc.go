// Package vtk renders visualization sets for the vtk.js viewer.
//
// # Archive layout
//
// A .vtkjs file is a zip archive holding a scene description (index.json)
// and one vtkPolyData dataset per layer under <layer id>/. Dataset arrays
// are stored as little-endian binaries named by their md5 hash. Each layer
// carries per-cell RGB colors; the lowest alpha of a layer becomes the
// actor opacity.
//
// # HTML
//
// [Backend.WritePage] embeds the archive as base64 in a page that loads
// vtk.js from a CDN.
//
// Text labels have no polydata form and are left out of both outputs.
package vtk
