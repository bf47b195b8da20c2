// Package gears draws three rotating gears into each eye of a stereo
// pipeline.
//
// The renderer implements stereo.FrameRenderer on OpenGL ES 2.0:
//
//	gl, err := gles.Load()
//	if err != nil {
//	    return err
//	}
//	defer gl.Close()
//
//	r := gears.NewRenderer(gl, pipeline.Context(), gears.Options{HUD: true})
//	err = pipeline.Run(ctx, r)
//
// Gear meshes are built on the CPU as triangle strips of interleaved
// position and normal data. An optional HUD labels each eye with its name
// and the transmission format.
package gears
