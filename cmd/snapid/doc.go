// Package main hosts the snapid CLI entrypoint and command graph.
//
// The Cobra-based command tree covers the daemon (`serve`), one-shot
// recognition (`recognize`), embedding index maintenance (`index build`,
// `index list`, `index info`), and configuration scaffolding (`config init`,
// `config validate`). It centralizes configuration resolution and structured
// logging setup so subcommands can focus on user experience instead of
// wiring.
//
// Keep this package lean: add new functionality by extending the internal
// packages first, then surface it through dedicated commands or flags here.
package main
