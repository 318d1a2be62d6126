package main

import "github.com/Tsedii1275/campusadmin/internal/cli"

func main() {
	cli.Execute()
}
