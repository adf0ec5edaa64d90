package main

import (
	"os"

	"github.com/see12357/TFYA-KR-KP/cmd/krkp/cmd"
)

func main() {
	os.Exit(cmd.Execute())
}
