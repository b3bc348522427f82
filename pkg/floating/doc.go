// Package floating computes where a floating element (a tooltip, a popover)
// should sit next to a reference element.
//
// ComputePosition starts from the coordinates implied by a Placement and
// runs a middleware pipeline over them:
//
//	res, err := floating.ComputePosition(ctx, platform, anchor, tip, floating.Config{
//	    Strategy: floating.Fixed,
//	    Middleware: []floating.Middleware{
//	        floating.Offset(4),
//	        floating.Shift(floating.ShiftOptions{}),
//	        floating.AutoPlacement(floating.AutoPlacementOptions{
//	            AllowedPlacements: []floating.Placement{floating.Top},
//	        }),
//	    },
//	})
//
// Middleware may request a reset with a different placement; the pipeline
// then restarts from the first middleware. Platform abstracts measurement so
// the package works with any element handle type.
package floating
