package main

import "github.com/progsightdimitri-maker/timesheet/cmd"

func main() {
	cmd.Execute()
}
