package main

import "github.com/kozaktomas/passport-photo/cmd"

func main() {
	cmd.Execute()
}
