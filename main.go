package main

import "github.com/nicdiaze/Finances/cmd"

func main() {
	cmd.Execute()
}
