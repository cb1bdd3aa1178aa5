package main

import "github.com/cmmoran/apidocgen/cmd"

func main() {
	cmd.Execute()
}
