package app

import (
	"log"

	"cleanquest/internal/classifier"
	"cleanquest/internal/config"
	"cleanquest/internal/database"
	"cleanquest/internal/repository"
	"cleanquest/internal/service"
	"cleanquest/internal/storage"
)

func App(cfg *config.Config) (*database.DB, *repository.Repository, *service.Service) {
	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("Не удалось подключиться к БД: %v", err)
	}

	// connection MinIO (опционально: без него base64 хранится в БД как есть)
	var store storage.Storage
	if cfg.MinIO.Endpoint != "" {
		minioClient, err := storage.NewMinIOClient(cfg)
		if err != nil {
			log.Fatalf("Не удалось инициализировать MinIO: %v", err)
		}
		store = minioClient
	} else {
		log.Println("MinIO не настроен, фото жалоб сохраняются в БД")
	}

	// AI-классификатор (опционально: без ключа применяются значения по умолчанию)
	var ai classifier.Classifier
	if cfg.AI.GeminiAPIKey != "" {
		ai = classifier.NewGeminiClassifier(cfg.AI.GeminiAPIKey, cfg.AI.ModelTimeout)
	} else {
		log.Println("GEMINI_API_KEY не задан, классификация жалоб отключена")
	}

	// enabling dependencies
	repo := repository.NewRepository(db.DB)

	services := service.NewService(repo, cfg, store, ai)

	return db, repo, services
}
