package main

import "github.com/alphawork/alphawork/cmd"

func main() {
	cmd.Execute()
}
