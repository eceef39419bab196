package main

import "github.com/Busmate-Lk/busmatectl/cmd"

func main() {
	cmd.Execute()
}
