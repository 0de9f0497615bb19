// Command valkeysnap decodes, replays, or raw-copies a Redis/Valkey
// RDB snapshot, either from a live PSYNC handshake or a local file.
package main

import (
	"os"

	"valkeysnap/internal/cli"
)

func main() {
	os.Exit(cli.Execute(os.Args[1:]))
}
