package main

import "github.com/Laisky/laisky-blog-api/cmd"

func main() {
	cmd.Execute()
}
