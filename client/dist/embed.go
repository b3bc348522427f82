package clientdist

import _ "embed"

// RatingJS is the thin client for live sessions.
//
// It is served by the live server at "/client.js".
//go:embed rating.js
var RatingJS []byte
