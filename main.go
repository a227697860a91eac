package main

import "github.com/naka-gawa/github-diversity/cmd"

func main() {
	cmd.Execute()
}
