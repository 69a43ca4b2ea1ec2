package main

import "github.com/theakshaypant/doven/cmd/doven/cmd"

func main() {
	cmd.Execute()
}
