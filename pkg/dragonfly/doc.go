// Package dragonfly models districts of buildings described by 2D room
// footprints and converts them to room-level models.
//
// # Hierarchy
//
// A [Model] holds [Building]s, each holding unique [Story] objects whose
// [Room2D]s carry a floor footprint, floor height and floor-to-ceiling
// height. Stories repeat through their multiplier.
//
// # Files
//
// Models are read from DFJSON or DFpkl (a pickled DFJSON dictionary). [Load]
// and [Read] detect the encoding from the first byte of the data. A room's
// program and construction set are read from properties.energy when the flat
// program and construction_set keys are absent.
//
// # Conversion
//
// [Model.ToHoneybee] extrudes each Room2D into a closed room, adds plenums,
// pairs adjacent walls and optionally ceilings, merges rooms and splits the
// result into one or more [honeybee.Model] values.
package dragonfly
