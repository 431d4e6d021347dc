package main

import "github.com/mouse-blink/docent/cmd"

func main() {
	cmd.Execute()
}
