// Package anim turns the closed-form models of package mechanics into
// animations: sequences of render scenes plus a table of the quantities
// behind each frame.
//
// Scripts are looked up by name in a [Registry]:
//
//	reg := anim.NewRegistry()
//	a, err := reg.Get("mohr-strain", cfg)
//	frames, err := anim.RenderFrames(ctx, a, 960, 640, 0)
//
// Every script reads its model parameters from config.Config.Params, using
// the names the model reports through GetParams.
package anim
