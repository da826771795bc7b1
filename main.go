package main

import "github.com/secret-dreams/fonts/cmd"

func main() {
	cmd.Execute()
}
