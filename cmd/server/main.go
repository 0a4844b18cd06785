package main

import "workpulse/internal/app/server"

func main() {
	server.Run()
}
