package main

import "rolepolicies/cmd"

func main() {
	cmd.Execute()
}
