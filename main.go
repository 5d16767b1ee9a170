package main

import "polycheck/cmd"

func main() {
	cmd.Execute()
}
