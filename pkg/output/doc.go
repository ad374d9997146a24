// Package output serializes visualization sets.
//
// # Formats
//
// Five formats are understood, matched case-insensitively:
//
//   - vsf and json: the JSON visualization set dictionary
//   - pkl: the same dictionary pickled
//   - vtkjs: a vtk.js scene archive, base64 encoded when not written to a file
//   - html: a standalone vtk.js viewer page
//
// The last two need a [Backend]. Unknown formats fail before anything is
// written.
//
// # Targets
//
// A [Target] says where the result goes: [Memory] returns it as a string,
// [File] writes a named file, [Stream] and [Stdout] write to a writer and
// [Blob] puts it into object storage.
package output
