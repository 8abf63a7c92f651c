package main

import (
	"github.com/parkwoobin/News-temperature/internal/app"
)

func main() {
	app.Run()
}
