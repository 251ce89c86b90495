package main

import "github.com/tantalor93/dnsblast/cmd"

func main() {
	cmd.Execute()
}
