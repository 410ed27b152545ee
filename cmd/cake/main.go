package main

import "cakecrumb/cmd/cake/root"

func main() {
	root.Execute()
}
