package main

import "github.com/emrgen/sitepress/cmd"

func main() {
	cmd.Execute()
}
