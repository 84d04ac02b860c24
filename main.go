package main

import (
	"github.com/ValentinKolb/rDS/cmd"
)

func main() {
	cmd.Execute()
}
