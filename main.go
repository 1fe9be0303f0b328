package main

import "school-timetable/cmd"

func main() {
	cmd.Execute()
}
