package main

import "github.com/filestack/filestack/cmd"

func main() {
	cmd.Execute()
}
