package vtk

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"html"
	"io"

	"github.com/ladybug-tools/dragonfly-display/pkg/errors"
	"github.com/ladybug-tools/dragonfly-display/pkg/visualization"
)

// ViewerScript is the vtk.js bundle the page loads.
const ViewerScript = "https://unpkg.com/vtk.js@29/vtk.js"

const pageCSS = `
    html, body { margin: 0; padding: 0; width: 100%; height: 100%; overflow: hidden; background: #fff; }
    #viewer { width: 100%; height: 100%; }
    #title { position: absolute; top: 8px; left: 12px; font: 14px sans-serif; color: #333; }`

const pageJS = `
    const bytes = Uint8Array.from(atob(sceneData), c => c.charCodeAt(0));
    const view = vtk.Rendering.Misc.vtkFullScreenRenderWindow.newInstance({
      rootContainer: document.getElementById('viewer'),
      background: [1, 1, 1],
    });
    const renderer = view.getRenderer();
    const renderWindow = view.getRenderWindow();
    const helper = vtk.IO.Core.DataAccessHelper.get('zip', {
      zipContent: bytes.buffer,
      callback: () => {
        const loader = vtk.IO.Core.vtkHttpSceneLoader.newInstance({ renderer, dataAccessHelper: helper });
        loader.setUrl('index.json');
        loader.onReady(() => { renderer.resetCamera(); renderWindow.render(); });
      },
    });`

// WritePage writes a standalone HTML page embedding the vtk.js archive of
// vs as base64.
func (b *Backend) WritePage(w io.Writer, vs *visualization.VisualizationSet) error {
	var archive bytes.Buffer
	if err := b.WriteArchive(&archive, vs); err != nil {
		return err
	}

	var buf bytes.Buffer
	title := html.EscapeString(vs.Name())
	buf.WriteString("<!DOCTYPE html>\n<html>\n<head>\n  <meta charset=\"utf-8\">\n")
	fmt.Fprintf(&buf, "  <title>%s</title>\n", title)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", pageCSS)
	fmt.Fprintf(&buf, "  <script src=\"%s\"></script>\n", ViewerScript)
	buf.WriteString("</head>\n<body>\n")
	fmt.Fprintf(&buf, "  <div id=\"title\">%s</div>\n  <div id=\"viewer\"></div>\n", title)
	fmt.Fprintf(&buf, "  <script>\n    const sceneData = \"%s\";%s\n  </script>\n",
		base64.StdEncoding.EncodeToString(archive.Bytes()), pageJS)
	buf.WriteString("</body>\n</html>\n")

	if _, err := w.Write(buf.Bytes()); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write html page")
	}
	return nil
}
