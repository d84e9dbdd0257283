package main

import "github.com/ticked-app/ticked/cmd"

func main() {
	cmd.Execute()
}
