package cli

import (
	"bytes"
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ladybug-tools/dragonfly-display/pkg/blob"
	"github.com/ladybug-tools/dragonfly-display/pkg/dragonfly"
	"github.com/ladybug-tools/dragonfly-display/pkg/output"
	"github.com/ladybug-tools/dragonfly-display/pkg/pipeline"
)

// loadModel reads a DFJSON or DFpkl file.
func (c *CLI) loadModel(path string) (*dragonfly.Model, error) {
	prog := newProgress(c.Logger)
	m, err := dragonfly.Load(path)
	if err != nil {
		return nil, err
	}
	prog.done("loaded model", "file", filepath.Base(path), "buildings", len(m.Buildings), "rooms", m.RoomCount())
	return m, nil
}

// outputFormat resolves and checks the output format before any file is read.
func (c *CLI) outputFormat(cmd *cobra.Command, out outputFlags) (string, error) {
	format := stringFlag(cmd.Flags(), "output-format", out.format, c.Config.ModelToVis.OutputFormat)
	if _, err := output.ParseFormat(format); err != nil {
		return "", err
	}
	return format, nil
}

// visualize builds req and writes the result.
func (c *CLI) visualize(cmd *cobra.Command, req pipeline.Request, format string, out outputFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	runner, err := c.newRunner(out.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	res, err := runner.Execute(ctx, req)
	if err != nil {
		return err
	}

	target, err := c.target(ctx, cmd, out.file)
	if err != nil {
		return err
	}
	path, err := c.newFormatter().Write(ctx, res.VisSet, format, target)
	if err != nil {
		return err
	}

	buildings := len(req.Model.Buildings)
	if req.Incoming != nil {
		buildings += len(req.Incoming.Buildings)
	}
	printSuccess("Visualization set written as %s", format)
	printStats(res.VisSet.Len(), buildings, res.CacheHit)
	switch {
	case path != "":
		printFile(path)
	case blob.IsURL(out.file):
		printFile(out.file)
	}
	return nil
}

// target maps --output-file to a destination.
func (c *CLI) target(ctx context.Context, cmd *cobra.Command, file string) (output.Target, error) {
	switch {
	case file == "" || file == "-":
		return output.Stream(cmd.OutOrStdout()), nil
	case blob.IsURL(file):
		store, key, err := c.s3Store(ctx, file)
		if err != nil {
			return output.Target{}, err
		}
		return output.Blob(store, key), nil
	}
	return output.File(file), nil
}

func (c *CLI) s3Store(ctx context.Context, url string) (*blob.S3Store, string, error) {
	bucket, key, err := blob.ParseURL(url)
	if err != nil {
		return nil, "", err
	}
	store, err := blob.NewS3Store(ctx, blob.S3Config{
		Bucket:    bucket,
		Region:    c.Config.Blob.Region,
		Endpoint:  c.Config.Blob.Endpoint,
		PathStyle: c.Config.Blob.PathStyle,
	})
	if err != nil {
		return nil, "", err
	}
	return store, key, nil
}

// writeData writes raw bytes to stdout, a local file or an s3 object.
func (c *CLI) writeData(cmd *cobra.Command, data []byte, file, contentType string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	var (
		store blob.Store
		key   string
		err   error
	)
	switch {
	case file == "" || file == "-":
		_, err = cmd.OutOrStdout().Write(data)
		return err
	case blob.IsURL(file):
		store, key, err = c.s3Store(ctx, file)
	default:
		abs, aerr := filepath.Abs(file)
		if aerr != nil {
			return aerr
		}
		store, err = blob.NewFSStore(filepath.Dir(abs))
		key = filepath.Base(abs)
	}
	if err != nil {
		return err
	}
	return store.Put(ctx, key, bytes.NewReader(data), contentType)
}
