// Package weaver holds build metadata for the weaver CLI.
package weaver

// Version is the current weaver release, overridden at build time with
// -ldflags "-X github.com/simonhull/firebird-suite/weaver.Version=...".
var Version = "0.1.0"
