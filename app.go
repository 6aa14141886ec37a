package main

import (
	"github.com/masmgr/brdiff/cmd"
)

func main() {
	cmd.Run()
}
