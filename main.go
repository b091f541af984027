package main

import "github.com/KaramelBytes/mpstats/cmd"

func main() {
	cmd.Execute()
}
