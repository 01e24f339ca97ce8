package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config collects everything read from the environment. A .env file is
// honored when present but not required.
type Config struct {
	StoreType    string   // sqlite, postgres, excel or csv
	DatabaseDSN  string   // sqlite file path or postgres DSN
	ExcelPath    string   // workbook path for the excel store
	CSVDir       string   // directory for the csv store
	CorpusSource string   // table holding the poems
	LedgerSource string   // table holding per-player progress
	Scheme       string   // binary or graduated
	Players      []string // seeded when the ledger starts empty
	Distractors  int
}

// Load reads the configuration, falling back to defaults that run the
// quiz against a local sqlite file.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		StoreType:    getEnv("STORE_TYPE", "sqlite"),
		DatabaseDSN:  getEnv("DATABASE_DSN", ""),
		ExcelPath:    getEnv("EXCEL_PATH", "data/utaquiz.xlsx"),
		CSVDir:       getEnv("CSV_DIR", "data"),
		CorpusSource: getEnv("CORPUS_SOURCE", "corpus"),
		LedgerSource: getEnv("LEDGER_SOURCE", "progress"),
		Scheme:       getEnv("QUIZ_SCHEME", "graduated"),
		Players:      splitList(getEnv("QUIZ_PLAYERS", "")),
		Distractors:  getEnvInt("QUIZ_DISTRACTORS", 3),
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil && value > 0 {
		return value
	}
	return defaultValue
}

func splitList(value string) []string {
	var names []string
	for _, part := range strings.Split(value, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}
