package main

import "taskboard/go-backend/internal/adapters/cli"

func main() {
	cli.Execute()
}
