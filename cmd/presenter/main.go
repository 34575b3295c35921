// Command presenter composes screenshots onto gradient backgrounds.
//
// Usage:
//
//	presenter render shot.png -o framed.png
//	presenter template save "Dark" --mode custom --start '#000000' --end '#ffffff'
//	presenter open shot.png
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
