package main

import "poewikibot/cmd"

func main() {
	cmd.Execute()
}
