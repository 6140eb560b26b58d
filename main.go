package main

import "github.com/mabhi256/r8deobf/cmd"

func main() {
	cmd.Execute()
}
