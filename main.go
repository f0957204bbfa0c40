package main

import "hotel-catalog/cmd"

func main() {
	cmd.Execute()
}
