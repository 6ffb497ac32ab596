package main

import "github.com/oshokin/smart-guard/cmd/smart-guard/cmd"

func main() {
	cmd.Execute()
}
