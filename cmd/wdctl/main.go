package main

import "github.com/GriffinCanCode/wdremote/internal/cli"

func main() {
	cli.Execute()
}
