package main

import "github.com/framewheel/framewheel/cmd"

func main() {
	cmd.Execute()
}
