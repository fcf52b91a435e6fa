package main

import "fintrack_backend/internal/app"

func main() {
	app.Run()
}
