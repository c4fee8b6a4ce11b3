package main

import (
	"textgraph/internal/server"
	"textgraph/internal/util"
	"textgraph/pkg/logger"
)

func main() {
	util.LoadEnv()

	debug := util.GetEnvBool("DEBUG", false)
	logger.Init(logger.Params{
		Debug: debug,
	})

	server.Init()
}
