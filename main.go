package main

import "github.com/alexiusacademia/geocons/cmd"

func main() {
	cmd.Execute()
}
