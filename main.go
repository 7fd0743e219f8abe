package main

import "github.com/mkarren/gherkit/cmd"

func main() {
	cmd.Execute()
}
