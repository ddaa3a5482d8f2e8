package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI  string
	MongoDB   string
	RedisAddr string
	RedisPass string
	HTTPPort  string

	// Parámetros del modelo FP-Growth
	MinSupport    float64 // fracción de transacciones (ej. 0.02)
	MinConfidence float64

	// Serving
	PopularCacheTTL  int // segundos
	ModelRefreshSecs int // cada cuánto la API revisa si hay modelo nuevo en Mongo
	BasketContext    int // cuántos ítems recientes del usuario se usan como canasta

	// Nodos trainer (proceso cmd/trainer)
	TrainerAddrs  []string
	TrainerAddr   string // dirección de escucha del trainer
	NodeID        string
	TrainInterval int // segundos; 0 = sin loop periódico
	TrainOnStart  bool
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		MongoURI:  os.Getenv("MONGO_URI"),
		MongoDB:   getEnv("MONGO_DB", "recsys"),
		RedisAddr: getEnv("REDIS_ADDR", ""),
		RedisPass: getEnv("REDIS_PASSWORD", ""),
		HTTPPort:  getEnv("HTTP_PORT", "8080"),

		MinSupport:    getEnvFloat("MIN_SUPPORT", 0.02),
		MinConfidence: getEnvFloat("MIN_CONFIDENCE", 0.2),

		PopularCacheTTL:  getEnvInt("POPULAR_CACHE_TTL", 3600),
		ModelRefreshSecs: getEnvInt("MODEL_REFRESH_SECONDS", 600),
		BasketContext:    getEnvInt("BASKET_CONTEXT_SIZE", 5),

		TrainerAddr:   getEnv("TRAINER_ADDR", ":9001"),
		NodeID:        getEnv("NODE_ID", "?"),
		TrainInterval: getEnvInt("TRAIN_INTERVAL_SECONDS", 0),
		TrainOnStart:  os.Getenv("TRAIN_ON_START") == "true",
	}

	// MONGO_URI manda; si no está, se arma con MONGO_HOST/MONGO_PORT
	if cfg.MongoURI == "" {
		host := getEnv("MONGO_HOST", "localhost")
		port := getEnv("MONGO_PORT", "27017")
		cfg.MongoURI = fmt.Sprintf("mongodb://%s:%s", host, port)
	}

	if env := os.Getenv("TRAINER_ADDRS"); env != "" {
		for _, v := range strings.Split(env, ",") {
			v = strings.TrimSpace(v)
			if v != "" {
				cfg.TrainerAddrs = append(cfg.TrainerAddrs, v)
			}
		}
	}

	return cfg
}

func getEnv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[config] %s=%q no es un entero, usando %d\n", key, v, def)
		return def
	}
	return n
}

func getEnvFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("[config] %s=%q no es un número, usando %g\n", key, v, def)
		return def
	}
	return f
}
