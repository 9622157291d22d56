package main

import "github.com/glitchub/sscan/cmd"

func main() {
	cmd.Execute()
}
