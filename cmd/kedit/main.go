package main

import (
	"os"

	"github.com/kobzarvs/kedit/internal/app"
)

func main() {
	os.Exit(app.Main(os.Args[1:]))
}
