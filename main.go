package main

import "github.com/kozaktomas/image-catalog/cmd"

func main() {
	cmd.Execute()
}
