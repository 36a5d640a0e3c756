package quotepaper

import _ "embed"

// Version is stamped by the release workflow; the default is used for
// development builds.
var Version = "0.1.0-dev"

// DefaultConfig is written by `quotepaper --installconfig`.
//
//go:embed quotepaper.toml
var DefaultConfig string
