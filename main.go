package main

import "github.com/retrobit-labs/chippy/cmd"

func main() {
	cmd.Execute()
}
