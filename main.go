package main

import (
	"logi-migrate/cmd"

	_ "github.com/lib/pq"
)

func main() {
	cmd.Execute()
}
