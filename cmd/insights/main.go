package main

import "github.com/hermine-app/insights/internal/cli"

func main() {
	cli.Execute()
}
