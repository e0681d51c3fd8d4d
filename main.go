package main

import "github.com/timeplus-io/chameleon/locsync/cmd"

func main() {
	cmd.Execute()
}
