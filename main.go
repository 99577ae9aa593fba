package main

import (
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"github.com/pivolan/customer_dashboard/config"
)

var store = NewSessionStore()
var regionTable = DefaultRegionTable()
var bot *tgbotapi.BotAPI

func main() {
	fmt.Println("started")
	cfg := config.GetConfig()

	if cfg.RegionsFile != "" {
		table, err := LoadRegionTable(cfg.RegionsFile)
		if err != nil {
			log.Fatalln("cannot load regions file", err)
		}
		regionTable = table
	}

	http.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		// Get the uuid from the URL
		id := r.URL.Query().Get("id")

		// Generate the upload form page with the uuid field pre-filled
		tmpl := template.Must(template.ParseFiles("upload.html"))
		err := tmpl.Execute(w, id)
		if err != nil {
			http.Error(w, "Error rendering upload form", http.StatusInternalServerError)
			return
		}
	})

	// Handle a POST request to /upload with a file upload form
	http.HandleFunc("/upload", handleUpload)
	http.HandleFunc("/api/summary", handleAPISummary)
	http.HandleFunc("/api/records", handleAPIRecords)
	http.HandleFunc("/api/salespersons", handleAPISalespersons)
	http.HandleFunc("/api/regions", handleAPIRegions)
	http.HandleFunc("/api/rank", handleAPIRank)
	http.HandleFunc("/api/unassigned", handleAPIUnassigned)
	http.HandleFunc("/api/geo", handleAPIGeo)
	http.HandleFunc("/download/xlsx", handleDownloadExcel)
	http.HandleFunc("/download/csv", handleDownloadCSV)
	http.HandleFunc("/charts", handleCharts)

	go func() {
		for {
			time.Sleep(time.Minute)
			store.Sweep(cfg.SessionTTL)
			removeOldFiles(cfg.UploadDir, time.Now().Add(-2*cfg.SessionTTL))
		}
	}()

	if cfg.TgToken == "" {
		// No bot configured, the web surface still works on its own
		log.Println("TELEGRAM_TOKEN empty, serving http only")
		fmt.Println("listen on:", cfg.HttpAddr)
		err := http.ListenAndServe(cfg.HttpAddr, nil)
		if err != nil {
			fmt.Println("Error starting server:", err)
			os.Exit(1)
		}
		return
	}

	var err error
	bot, err = tgbotapi.NewBotAPI(cfg.TgToken)
	if err != nil {
		log.Fatal("tg error", err)
	}
	fmt.Println("bot init")
	log.Printf("Authorized on account %s", bot.Self.UserName)

	go func() {
		fmt.Println("listen on:", cfg.HttpAddr)
		err := http.ListenAndServe(cfg.HttpAddr, nil)
		if err != nil {
			fmt.Println("Error starting server:", err)
			os.Exit(1)
		}
	}()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates, err := bot.GetUpdatesChan(u)
	if err != nil {
		log.Fatal("tg updates error", err)
	}
	for update := range updates {
		if update.Message == nil {
			continue
		}

		if update.Message.Document != nil {
			go handleDocument(bot, update.Message)
		} else if update.Message.IsCommand() {
			go handleCommand(bot, update)
		} else if update.Message.Text != "" {
			go handleText(bot, update)
		}
	}
}

func removeOldFiles(dirPath string, maxAge time.Time) error {
	// Get a list of files and directories in the directory
	files, err := os.ReadDir(dirPath)
	if err != nil {
		return err
	}

	// Loop through each file/directory
	for _, file := range files {
		filePath := filepath.Join(dirPath, file.Name())

		// If the file is a directory, recursively call this function on it
		if file.IsDir() {
			err := removeOldFiles(filePath, maxAge)
			if err != nil {
				return err
			}
		} else {
			// If the file is older than the max age, remove it
			fileStat, err := os.Stat(filePath)
			if err != nil {
				return err
			}
			fileModTime := fileStat.ModTime()
			if fileModTime.Before(maxAge) {
				err := os.Remove(filePath)
				if err != nil {
					return err
				}
				fmt.Printf("Removed file: %s\n", filePath)
			}
		}
	}

	return nil
}
