// Package config loads quickdoc settings and watches them for changes.
//
// Settings come from four places, later ones overriding earlier ones:
//
//	┌─────────────────────────────┐
//	│  4. Command line flags      │  ← Highest priority
//	├─────────────────────────────┤
//	│  3. Environment             │  ← KEYSTORM_QUICKDOC_DELAY_MS
//	├─────────────────────────────┤
//	│  2. Config file             │  ← ~/.config/quickdoc/config.toml
//	├─────────────────────────────┤
//	│  1. Built-in defaults       │  ← Lowest priority
//	└─────────────────────────────┘
//
// A config file looks like:
//
//	[hover]
//	enabled = true
//	delay_ms = 500
//
//	[log]
//	level = "info"
//	file = "/tmp/quickdoc.log"
//
//	[ui]
//	gutter = true
//	theme = "monokai"
//
// The environment is read once at startup. While running, only
// hover.enabled follows edits to the file; see Watcher.
package config
