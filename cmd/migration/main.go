package main

import (
	"flag"
	"log"

	"github.com/joho/godotenv"

	"github.com/lojazap/lojazap-backend/internal/infrastructure/database"
)

func main() {
	path := flag.String("path", "migrations", "diretório com os arquivos de migração")
	flag.Parse()

	// Carregar variáveis de ambiente
	if err := godotenv.Load(); err != nil {
		log.Printf("Aviso: Arquivo .env não encontrado: %v", err)
	}

	if err := database.RunMigrations(*path); err != nil {
		log.Fatalf("Erro ao executar migrações: %v", err)
	}

	log.Println("Migrações executadas com sucesso!")
}
