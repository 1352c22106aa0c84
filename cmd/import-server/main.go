package main

import (
	"keyimport-core/internal/server"
	"keyimport-core/pkg/config"
	"keyimport-core/pkg/logger"
)

func main() {
	// 0. configuration
	config.Init()

	// 1. logging
	logger.Init(config.Global.App.Env)
	defer logger.Sync()

	// 2. HTTP router
	r := server.NewHTTPRouter()

	// 3. run until signalled
	app := server.New(server.Config{
		HttpPort: config.Global.App.HttpPort,
	}, r)
	app.Run()
}
