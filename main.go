package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/schemahub/schemahub/config"
	"github.com/schemahub/schemahub/database"
	"github.com/schemahub/schemahub/logger"
	"github.com/schemahub/schemahub/web"

	"github.com/joho/godotenv"
	"github.com/op/go-logging"
	"gorm.io/gorm"
)

func runWebServer() {
	log.Printf("%v %v", config.GetName(), config.GetVersion())

	_ = godotenv.Load()

	switch config.GetLogLevel() {
	case config.Debug:
		logger.InitLogger(logging.DEBUG)
	case config.Info:
		logger.InitLogger(logging.INFO)
	case config.Notice:
		logger.InitLogger(logging.NOTICE)
	case config.Warn:
		logger.InitLogger(logging.WARNING)
	case config.Error:
		logger.InitLogger(logging.ERROR)
	default:
		log.Fatal("unknown log level:", config.GetLogLevel())
	}

	db, err := database.InitDB(config.GetDBPath())
	if err != nil {
		log.Fatal(err)
	}
	defer func(db *gorm.DB) {
		if err := database.CloseDB(db); err != nil {
			logger.Warning("close database err:", err)
		}
		logger.CloseLogger()
	}(db)

	server := web.NewServer(db)
	if err := server.Start(); err != nil {
		log.Println(err)
		return
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGINT)
	for {
		sig := <-sigCh

		switch sig {
		case syscall.SIGHUP:
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			server = web.NewServer(db)
			if err := server.Start(); err != nil {
				log.Println(err)
				return
			}
		default:
			if err := server.Stop(); err != nil {
				logger.Warning("stop server err:", err)
			}
			return
		}
	}
}

func main() {
	runWebServer()
}
