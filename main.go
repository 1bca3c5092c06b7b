package main

import "mosaic-media/cmd"

func main() {
	cmd.Execute()
}
