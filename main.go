package main

import (
	"flag"
	"fmt"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"mortality-engine/internal/config"
	"mortality-engine/internal/engine"
	"mortality-engine/internal/handler"
	"mortality-engine/internal/tableregistry"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Println(`{"op": "main", "level": "fatal", "msg": "failed to initiate logger"}`)
		panic(err)
	}
	defer logger.Sync()

	configLocation := flag.String("config", "", "path to configuration file")
	flag.Parse()

	conf, err := config.LoadConfiguration(*configLocation)
	if err != nil {
		logger.Fatal(fmt.Sprintf("failed to load configuration at %s", *configLocation),
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	registry := tableregistry.New(conf.TableAPIURL, conf.TableAPITimeout, logger)
	eng := engine.New(registry, logger)
	h := handler.New(eng, logger)

	logger.Info("mortality engine starting",
		zap.String("op", "main"),
		zap.String("port", conf.Port),
	)
	if err := fasthttp.ListenAndServe(":"+conf.Port, h.Handle); err != nil {
		logger.Fatal("server failed",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}
