// Package server hosts the rating demo: an HTML page of stars with
// tooltips, star SVG and PNG assets, Prometheus metrics, and live sessions
// over WebSocket.
//
// A live session keeps a dom.Document mirroring the page. The browser
// reports element rects and forwards trigger events; the tooltips react
// inside the mirror exactly as they would in a browser host, and every
// inline style they change is sent back as a patch:
//
//	cfg := server.FromConfig(cfg)
//	srv := server.New(cfg)
//	err := srv.Run(ctx)
package server
