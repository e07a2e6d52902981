package main

import "github.com/MaelVB/Drawsyn-sub000/internal/cli"

func main() {
	cli.Execute()
}
