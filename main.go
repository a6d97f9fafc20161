package main

import "github.com/jsphweid/chorale/cmd"

func main() {
	cmd.Execute()
}
