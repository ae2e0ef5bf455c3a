// Package tip renders annotation balloons ("tips") that point at data
// points and list the channel values of each record.
//
// Rendering happens in two phases. [Mark.Render] synchronously emits one
// placeholder group per record into an SVG element tree: an empty outline
// path and a text element whose lines are already truncated to the
// configured width. The outline cannot be drawn yet because it depends on
// the rendered size of the text, so Render schedules a single continuation
// on a [schedule.Scheduler]: a microtask if the [Surface] is already
// connected, or a frame callback otherwise. When the continuation runs
// against a connected surface it measures every group, resolves its
// orientation with [anchor.Resolve] and fills in the outline and text
// position in place.
//
//	loop := schedule.NewLoop()
//	mark, err := tip.New(tip.DefaultOptions())
//	...
//	pass, err := mark.Render(ctx, tip.Input{Channels: set, Dimensions: dims},
//	    tip.Env{Parent: svg, Surface: surface.NewEstimate(false), Scheduler: loop})
//	loop.Flush()
//	// pass.State() == tip.Finalized
//
// If the surface never connects, the pass stays a [Placeholder]; this is not
// an error.
package tip
