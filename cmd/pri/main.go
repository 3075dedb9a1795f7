package main

import "github.com/octagorm/priorities/cmd/pri/root"

func main() {
	root.Execute()
}
