package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/example/tenkanji/internal/corpus"
	"github.com/example/tenkanji/internal/daily"
	"github.com/example/tenkanji/internal/database"
	"github.com/example/tenkanji/internal/excel"
	"github.com/example/tenkanji/internal/server"
	"github.com/example/tenkanji/internal/streak"
	"github.com/example/tenkanji/internal/study"
)

func main() {
	// Загружаем .env, если он есть; реальные переменные окружения важнее
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Failed to load .env: %v", err)
	}

	importFile := flag.String("import", "", "import a word list (xlsx/csv) into the corpus file and exit")
	flag.Parse()

	wordsFile := envDefault("WORDS_FILE", filepath.Join("data", "words.json"))
	if *importFile != "" {
		runImport(*importFile, wordsFile)
		return
	}

	// Подключаемся к базе данных
	if err := database.Connect(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Загружаем корпус слов и таблицу кандзи один раз при старте
	words, err := corpus.Load(wordsFile)
	if err != nil {
		log.Fatalf("Failed to load words: %v", err)
	}
	kanji, err := corpus.LoadKanjiTable(envDefault("KANJI_FILE", filepath.Join("data", "kanji.json")))
	if err != nil {
		log.Fatalf("Failed to load kanji table: %v", err)
	}
	log.Printf("Loaded %d words", words.Len())

	// Создаем репозитории и сервисы
	users := database.NewUserRepository()
	statuses := database.NewWordStatusRepository()
	activity := database.NewActivityRepository()
	challenges := database.NewDailyChallengeRepository()

	srv := server.New(
		users,
		statuses,
		study.NewSelector(words, statuses),
		study.NewRecorder(statuses, activity),
		daily.NewService(words, kanji, challenges, activity),
		streak.NewCalculator(challenges, activity),
	)

	httpServer := &http.Server{
		Addr:    ":" + envDefault("PORT", "3000"),
		Handler: srv.Router(),
	}

	// Горутина для обработки сигналов
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Printf("Received signal: %v", sig)

		// Даем время на graceful shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("Error during shutdown: %v", err)
		}
	}()

	// Запускаем сервер
	log.Printf("Server running on http://localhost%s", httpServer.Addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("Server error: %v", err)
	}
	log.Println("Server stopped successfully")
}

// runImport converts a scraped word list into the corpus JSON file
func runImport(input, output string) {
	config := excel.DefaultImportConfig()
	config.FilePath = input
	config.OutputPath = output

	result, err := excel.ImportWords(config)
	if err != nil {
		log.Fatalf("Import failed: %v", err)
	}
	log.Printf("Imported %d of %d rows into %s (%d skipped)",
		result.Imported, result.TotalProcessed, output, result.Skipped)
	for _, e := range result.Errors {
		log.Printf("  %s", e)
	}
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
