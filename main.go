package main

import "github.com/ariebrainware/basis-data-dental/cmd"

func main() {
	cmd.Execute()
}
