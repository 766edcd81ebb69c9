package main

import "github.com/VeraSamohina/skypro-course-work-OOP/cmd"

func main() {
	cmd.Execute()
}
