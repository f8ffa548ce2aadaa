package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"

	"github.com/yourorg/watclassroom/internal/buildings"
	"github.com/yourorg/watclassroom/internal/portal"
	"github.com/yourorg/watclassroom/internal/routes"
)

func main() {
	_ = godotenv.Load()

	app := fiber.New()
	app.Use(logger.New())
	app.Use(cors.New())

	// ============================================================================
	// DATASET DE EDIFICIOS
	// ============================================================================
	buildingsFile := os.Getenv("BUILDINGS_FILE")
	if buildingsFile == "" {
		buildingsFile = "buildings.json"
	}
	store := buildings.NewStore(buildingsFile)

	// Carga temprana para reportar problemas al arrancar. Un dataset roto
	// no impide levantar el servidor: /health lo reporta y el resto de los
	// endpoints responden 500 hasta que se corrija.
	if dataset, err := store.Load(); err != nil {
		log.Printf("⚠️  Dataset de edificios no disponible: %v", err)
		log.Println("   El servidor continuará pero /result y /all_buildings fallarán")
	} else {
		log.Printf("✅ Dataset de edificios cargado: %d entradas (%s)", len(dataset), buildingsFile)
	}

	// ============================================================================
	// FEED DEL PORTAL
	// ============================================================================
	client := portal.NewClient()
	log.Printf("🔗 Feed OpenClassrooms: %s", client.FeedURL())

	routes.Register(app, store, client)

	// ============================================================================
	// GRACEFUL SHUTDOWN
	// ============================================================================
	// Capturar señales de terminación (Ctrl+C, kill, etc.)
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		log.Println("\n🛑 Señal de terminación recibida, cerrando servidor...")

		if err := app.Shutdown(); err != nil {
			log.Printf("⚠️  Error cerrando servidor: %v", err)
		}

		log.Println("✅ Servidor cerrado correctamente")
		os.Exit(0)
	}()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("🚀 Servidor escuchando en :%s", port)
	log.Println("📍 Endpoints disponibles:")
	log.Println("   GET /health                  - Health check")
	log.Println("   GET /all_buildings           - Dataset de edificios")
	log.Println("   GET /result/:buildingCode    - Salas abiertas por cercanía")
	log.Println("")
	log.Println("💡 Presiona Ctrl+C para detener")

	if err := app.Listen(":" + port); err != nil {
		log.Fatal(err)
	}
}
