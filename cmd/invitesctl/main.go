// Command invitesctl is an administrative client for the invitation service.
package main

import "os"

func main() {
	os.Exit(execute(os.Args[1:]))
}
