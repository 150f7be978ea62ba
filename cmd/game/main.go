package main

import (
	"flag"
	"os"

	"grimdelve/internal/agent"
	"grimdelve/internal/engine"
	"grimdelve/internal/infrastructure/storage"
	"grimdelve/internal/server"
	"grimdelve/internal/version"
	"grimdelve/pkg/logger"

	"github.com/joho/godotenv"
)

func init() {
	// .env необязателен: LOG_LEVEL / LOG_FORMAT удобно держать в нем
	_ = godotenv.Load()
	logger.Init()
}

func main() {
	// 1. Парсинг конфигурации
	var (
		seed       int64
		turns      int
		configPath string
		replayPath string
		record     bool
		debugPort  int
	)
	flag.Int64Var(&seed, "seed", 0, "Master seed (0 for random)")
	flag.IntVar(&turns, "turns", 200, "Player turns to simulate")
	flag.StringVar(&configPath, "config", "", "Path to grimdelve.yaml")
	flag.StringVar(&replayPath, "replay", "", "Path to .gcrp replay file to simulate")
	flag.BoolVar(&record, "record", false, "Save the session as a replay file")
	flag.IntVar(&debugPort, "debug-port", 0, "Debug HTTP server port (0 = off)")
	flag.Parse()

	logger.Log.Info("Starting Grimdelve...")
	logger.Log.Info(version.String())

	cfg, err := engine.LoadConfig(configPath)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load config")
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	if debugPort != 0 {
		cfg.DebugPort = debugPort
	}

	bestiary := engine.NewBestiary()
	replays := storage.NewReplayService(cfg.SaveDir)

	// РЕЖИМ РЕПЛЕЯ: восстанавливаем сид из файла и прогоняем
	// записанные команды. Детерминизм ядра гарантирует тот же исход.
	if replayPath != "" {
		session, err := replays.Load(replayPath)
		if err != nil {
			logger.Log.WithError(err).Fatal("Failed to load replay")
		}
		cfg.Seed = session.Seed

		logger.Log.WithField("seed", session.Seed).Info("Replaying session")
		game := engine.NewGame(cfg, bestiary)
		result := game.ReplayCommands(session.Commands)

		logger.Log.Infof("Replay finished: %s", game.Status())
		if result.PlayerDied {
			logger.Log.Info("Replay outcome: player died")
		}
		return
	}

	logger.Log.WithField("seed", cfg.Seed).Info("Master seed")

	game := engine.NewGame(cfg, bestiary)

	if cfg.DebugPort != 0 {
		go func() {
			if err := server.New(game, cfg.DebugPort).Run(); err != nil {
				logger.Log.WithError(err).Error("Debug server stopped")
			}
		}()
	}

	// Headless-прогон: бот играет за игрока
	bot := agent.NewBot(game)
	for i := 0; i < turns; i++ {
		if !bot.Step() {
			logger.Log.Info("The player has died.")
			break
		}
	}

	logger.Log.Infof("Simulation finished: %s", game.Status())

	if record {
		path, err := replays.Save(game.Replay)
		if err != nil {
			logger.Log.WithError(err).Error("Failed to save replay")
			os.Exit(1)
		}
		logger.Log.WithField("path", path).Info("Replay saved")
	}
}
