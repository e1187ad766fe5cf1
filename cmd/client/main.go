package main

import "licensekeeper/cmd/client/cmd"

func main() {
	cmd.Execute()
}
