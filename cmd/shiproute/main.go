// Command shiproute plans fuel-optimal maritime routes. Run it with no
// arguments for usage, or `shiproute --help` for the full command tree.
package main

import "github.com/MeKo-Tech/shiproute/internal/cmd"

func main() {
	cmd.Execute()
}
