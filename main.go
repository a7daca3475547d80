package main

import "github.com/harrisonrobin/daybrief/pkg/cli"

func main() {
	cli.Execute()
}
