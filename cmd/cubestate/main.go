// cubestate - CLI application for entering, checking and replaying Rubik's Cube states.
package main

import (
	"github.com/SeamusWaldron/cubestate/internal/cli"
)

func main() {
	cli.Execute()
}
