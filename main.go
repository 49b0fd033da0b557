package main

import "github.com/darmiel/vouch/cmd"

func main() {
	cmd.Execute()
}
