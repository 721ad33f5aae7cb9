package main

import "github.com/iksnae/artist-canvas/cmd"

func main() {
	cmd.Execute()
}
