package main

import "github.com/SelfStudyHebrew/SelfStudyHebrew/internal/cli"

func main() {
	cli.Execute()
}
