package main

import "github.com/fitaura/fitaura-cli/cmd/fitaura"

func main() {
	fitaura.Execute()
}
