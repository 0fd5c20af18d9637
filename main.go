package main

import "searchprep/cmd"

func main() {
	cmd.Execute()
}
