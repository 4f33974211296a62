package main

import (
	"guestexpect/cmd/guestexpect/internal"
)

func main() {
	internal.Execute()
}
