package main

import "github.com/soocke/lipstick-ar-go/cmd"

func main() {
	cmd.Execute()
}
