package main

import "github.com/pranav-iyer/relscribe/cmd"

func main() {
	cmd.Execute()
}
