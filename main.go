package main

import "github.com/rajeshpachaikani/honeybee-kiosk-app/cmd"

func main() {
	cmd.Execute()
}
