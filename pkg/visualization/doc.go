// Package visualization holds display-ready scenes: a [VisualizationSet] is
// an ordered list of uniquely identified layers.
//
// # Layers
//
// A [ContextGeometry] draws display objects ([DisplayMesh3D],
// [DisplayFace3D], [DisplayLineSegment3D], [DisplayPoint3D],
// [DisplayText3D]) with fixed colors. An [AnalysisGeometry] holds meshes and
// one or more [VisualizationData] sets with one value per mesh, colored
// through a legend.
//
// # Serialization
//
// Sets encode to the VisualizationSet dictionary shape through
// encoding/json, and to pickles of that dictionary through [VisualizationSet.ToPkl].
// [FromDict] and [ReadPkl] rebuild a set.
package visualization
