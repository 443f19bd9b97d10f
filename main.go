// main.go - mvtcodec CLI entry point
package main

import "github.com/halcyon-geo/mvtcodec/cmd"

func main() {
	cmd.Execute()
}
