package main

import "github.com/emaland/spotprice/cmd"

func main() {
	cmd.Execute()
}
