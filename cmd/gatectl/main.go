package main

import "github.com/aussiebroadwan/gatekeep/cmd/gatectl/cmd"

func main() {
	cmd.Execute()
}
