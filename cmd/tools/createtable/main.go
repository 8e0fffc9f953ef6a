package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/khanh208/shop-noithat-vp-sub000/internal/config"
	"github.com/khanh208/shop-noithat-vp-sub000/internal/session"
)

// createtable creates the session table used by session.driver=db.
func main() {
	_ = godotenv.Load()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "dev"
	}
	cfg, err := config.Load("configs", env)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.MySQL.DSN == "" {
		log.Fatal("mysql.dsn is empty; set STOREFRONT_MYSQL__DSN")
	}

	db, err := session.OpenDB(cfg)
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	if err := db.Exec(session.CreateTableSQL).Error; err != nil {
		log.Fatalf("create table: %v", err)
	}
	log.Println("storefront_sessions table ready")
}
