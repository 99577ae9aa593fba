package main

import (
	"errors"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"github.com/pivolan/customer_dashboard/config"
	"github.com/pivolan/customer_dashboard/domain/models"
	"github.com/pivolan/customer_dashboard/plot"
)

// handleText answers plain chat messages. A "top 7" / "least 3" style
// message ranks the current dataset, anything else gets an upload link.
func handleText(bot *tgbotapi.BotAPI, update tgbotapi.Update) {
	message := update.Message

	if HasRankRequest(message.Text) {
		sess, ok := store.GetByChat(message.Chat.ID)
		if !ok {
			msg := tgbotapi.NewMessage(message.Chat.ID, "No dataset yet. Send a customer file into the chat first, then ask for top or least salespersons.")
			bot.Send(msg)
			return
		}
		sendRankReply(bot, message.Chat.ID, sess, ParseRankSpec(message.Text))
		return
	}

	msg := tgbotapi.NewMessage(message.Chat.ID, "Send a customer file (csv or xlsx) right into the chat, or upload it in the browser: "+uploadLinkFor(message.Chat.ID))
	_, err := bot.Send(msg)
	if err != nil {
		return
	}
}

// uploadLinkFor reserves an upload id bound to the chat, so a browser
// upload under that link lands back in this conversation.
func uploadLinkFor(chatID int64) string {
	cfg := config.GetConfig()
	return cfg.PublicUrl + "/?id=" + store.Reserve(chatID)
}

func handleDocument(bot *tgbotapi.BotAPI, message *tgbotapi.Message) {
	// Save document to disk
	fileURL, err := bot.GetFileDirectURL(message.Document.FileID)
	if err != nil {
		log.Printf("Error getting file URL: %v", err)
		msg := tgbotapi.NewMessage(message.Chat.ID, "Error on upload file, if file too big try another method, upload by this link: "+uploadLinkFor(message.Chat.ID))
		bot.Send(msg)
		return
	}

	// Download file to disk
	cfg := config.GetConfig()
	filePath := filepath.Join(cfg.UploadDir, strconv.FormatInt(message.Chat.ID, 10), message.Document.FileName)
	err = os.MkdirAll(filepath.Dir(filePath), os.ModePerm)
	if err != nil {
		log.Printf("Error creating directory: %v", err)
		return
	}
	resp, err := http.Get(fileURL)
	if err != nil {
		log.Printf("Error downloading file: %v", err)
		return
	}
	defer resp.Body.Close()
	file, err := os.Create(filePath)
	if err != nil {
		log.Printf("Error creating file: %v", err)
		return
	}
	_, err = io.Copy(file, resp.Body)
	file.Close()
	if err != nil {
		log.Printf("Error writing file: %v", err)
		return
	}

	go func() {
		dataset, err := ingestFile(filePath)
		if err != nil {
			log.Printf("Error importing %s: %v", filePath, err)
			bot.Send(tgbotapi.NewMessage(message.Chat.ID, importErrorText(err)))
			return
		}
		sess := store.PutForChat(message.Chat.ID, dataset)
		sendDashboardReport(bot, message.Chat.ID, sess)
	}()
}

func importErrorText(err error) string {
	var formatErr *FormatError
	switch {
	case errors.As(err, &formatErr):
		return "Cannot read this file: " + formatErr.Reason + ". Send a csv or xlsx with customer_name and sales_person columns."
	case errors.Is(err, ErrEmptyInput):
		return "The file parsed fine but has no data rows, nothing to analyze."
	default:
		return "Error processing file, try again or use another file."
	}
}

// sendDashboardReport pushes the whole dashboard into the chat: KPI and
// salesperson tables as one message, a distribution chart, and the
// xlsx/csv exports.
func sendDashboardReport(bot *tgbotapi.BotAPI, chatID int64, sess *DashboardSession) {
	data := ComputeDashboard(sess.Dataset, nil, regionTable)

	text := FormatSummary(data.Summary) + "\n\n" + FormatCounts("Salesperson", data.SalespersonCounts)
	msg := tgbotapi.NewMessage(chatID, "<pre>\n"+text+"\n</pre>")
	msg.ParseMode = tgbotapi.ModeHTML
	bot.Send(msg)

	if len(data.SalespersonCounts) > 0 {
		labels, values := countsSeries(data.SalespersonCounts)
		graph, err := plot.DrawCountsBar(labels, values, "Customers per salesperson")
		if err != nil {
			log.Printf("Error drawing salesperson chart: %v", err)
		} else {
			sendChart(graph, "salespersons", chatID, bot)
		}
	}

	sendExports(bot, chatID, sess.Dataset.Columns, data.Clean)
}

// sendExports delivers the current view as xlsx and csv documents.
func sendExports(api *tgbotapi.BotAPI, chatID int64, columns []models.Column, rows []models.CustomerRecord) {
	stamp := time.Now().Format("20060102-150405")

	xlsxData, err := ExportExcel(columns, rows)
	if err != nil {
		log.Printf("Error exporting xlsx: %v", err)
	} else {
		doc := tgbotapi.NewDocumentUpload(chatID, tgbotapi.FileBytes{Name: "customers" + stamp + ".xlsx", Bytes: xlsxData})
		doc.Caption = "file"
		api.Send(doc)
	}

	csvData, err := ExportCSV(columns, rows)
	if err != nil {
		log.Printf("Error exporting csv: %v", err)
	} else {
		doc := tgbotapi.NewDocumentUpload(chatID, tgbotapi.FileBytes{Name: "customers" + stamp + ".csv", Bytes: csvData})
		doc.Caption = "file"
		api.Send(doc)
	}
}

func countsSeries(counts []models.CountEntry) ([]string, []float64) {
	labels := make([]string, 0, len(counts))
	values := make([]float64, 0, len(counts))
	for _, c := range counts {
		labels = append(labels, c.Label)
		values = append(values, float64(c.Count))
	}
	return labels, values
}
