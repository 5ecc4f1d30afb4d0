package main

import "hela9_backend/internal/app"

func main() {
	app.Run()
}
