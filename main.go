package main

import "github.com/onrcanogul/prod-analyzer/cmd"

func main() {
	cmd.Execute()
}
