package main

import "github.com/abdelwahed/go-task-keeper/internal/cli"

func main() {
	cli.Execute()
}
