package main

import "github.com/agentic-research/regroup/cmd"

func main() {
	cmd.Execute()
}
