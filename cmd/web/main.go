package main

import "propel_backend/internal/app"

func main() {
	app.Run()
}
