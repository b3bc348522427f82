// Package protocol defines the JSON messages exchanged between the browser
// and a live session over a WebSocket text frame.
//
// The browser mirrors its layout and forwards trigger events:
//
//	{"type":"layout","viewport":{"width":1280,"height":720},"scroll":{"x":0,"y":0},
//	 "rects":{"star-1":{"x":10,"y":40,"width":24,"height":24}}}
//	{"type":"event","target":"star-1","event":"pointerenter"}
//	{"type":"ping"}
//
// The server answers with inline style patches for the elements it changed:
//
//	{"type":"hello","session":"0190..."}
//	{"type":"patch","patches":[{"id":"tip-1","style":"left: 7px; top: 12px;"}]}
//	{"type":"error","code":"E402","message":"Unknown element id"}
//	{"type":"pong"}
package protocol
