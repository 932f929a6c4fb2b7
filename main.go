package main

import "github.com/mzdunek/monitorwatcher/cmd"

func main() {
	cmd.Execute()
}
