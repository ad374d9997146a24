// Package pkg holds the libraries behind dragonfly-display.
//
// # Overview
//
// dragonfly-display turns dragonfly district models into ladybug
// visualization sets. The packages fall into three groups:
//
//  1. Domain: [dragonfly] (district models), [honeybee] (room models),
//     [geometry], [visualization] (the VisualizationSet), [display]
//     (set builders) and [tree] (hierarchy diagrams)
//  2. Output: [output] (format dispatch), [vtk] (vtk.js archives and pages),
//     [pickle] and [blob] (local and S3 targets)
//  3. Infrastructure: [pipeline], [cache], [config], [errors],
//     [observability] and [buildinfo]
//
// # Architecture
//
// The data flow of every command:
//
//	DFJSON / DFpkl file
//	         ↓
//	    [dragonfly] package (load, normalize)
//	         ↓
//	    [dragonfly] ToHoneybee (rooms and faces)
//	         ↓
//	    [display] package (visualization set)
//	         ↓
//	    [output] package (vsf, json, pkl, vtkjs, html)
//
// [pipeline.Runner] strings these together with caching, and both the CLI
// and the HTTP server in internal/ call it.
//
// # Quick Start
//
//	m, err := dragonfly.Load("district.dfjson")
//	if err != nil {
//		return err
//	}
//	vs, err := pipeline.ModelToVisSet(m, pipeline.DefaultOptions())
//	if err != nil {
//		return err
//	}
//	html, err := output.New(vtk.New(nil), nil).Render(vs, "html")
package pkg
