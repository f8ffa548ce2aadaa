package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/yourorg/watclassroom/internal/buildings"
)

func main() {
	_ = godotenv.Load()

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Println("==== WatClassroom CLI ====")
		fmt.Println("1) Health check API")
		fmt.Println("2) Rebuild buildings.json from Open Data API")
		fmt.Println("3) Exit")
		fmt.Print("Select option: ")
		choice, _ := reader.ReadString('\n')
		choice = strings.TrimSpace(choice)
		switch choice {
		case "1":
			doHealthCheck()
		case "2":
			doRebuildDataset()
		case "3":
			fmt.Println("Bye")
			return
		default:
			fmt.Println("Invalid option")
		}
		fmt.Println()
	}
}

func doHealthCheck() {
	base := os.Getenv("BASE_URL")
	if base == "" {
		base = "http://127.0.0.1:8080"
	}
	url := strings.TrimRight(base, "/") + "/health"
	client := &http.Client{Timeout: 5 * time.Second}
	resp, err := client.Get(url)
	if err != nil {
		fmt.Println("Health: ERROR:", err)
		return
	}
	defer resp.Body.Close()
	fmt.Println("Health status:", resp.Status)
}

// doRebuildDataset consulta el API Open Data de UWaterloo y regenera el
// snapshot local de edificios. Requiere UWATERLOO_API_KEY (el endpoint
// /v3/Locations no es público). El servidor debe reiniciarse para tomar
// el archivo nuevo.
func doRebuildDataset() {
	apiKey := strings.TrimSpace(os.Getenv("UWATERLOO_API_KEY"))
	if apiKey == "" {
		fmt.Println("Rebuild: UWATERLOO_API_KEY no definido, abortando")
		return
	}

	baseURL := strings.TrimSpace(os.Getenv("UWATERLOO_API_URL"))
	if baseURL == "" {
		baseURL = buildings.DefaultOpenDataURL
		fmt.Println("UWATERLOO_API_URL no definido, usando Open Data por defecto.")
	}

	outFile := os.Getenv("BUILDINGS_FILE")
	if outFile == "" {
		outFile = "buildings.json"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	dataset, err := buildings.FetchLocations(ctx, baseURL, apiKey)
	if err != nil {
		log.Println("Rebuild: fetch error:", err)
		return
	}
	if len(dataset) == 0 {
		log.Println("Rebuild: el API no retornó edificios usables, no se sobrescribe", outFile)
		return
	}

	if err := buildings.SaveSnapshot(outFile, dataset); err != nil {
		log.Println("Rebuild: save error:", err)
		return
	}
	fmt.Printf("Rebuild OK: %d edificios escritos en %s\n", len(dataset), outFile)
}
