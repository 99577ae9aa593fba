package main

import (
	"fmt"
	"log"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"
)

// telegram recompresses photos above ~150kb, larger renders go as documents
const maxSizePhoto = 150000

// sendChart delivers a rendered png to the chat with a caption matching
// the chart kind.
func sendChart(graph []byte, chartName string, chatID int64, api *tgbotapi.BotAPI) {
	fileName := fmt.Sprintf("%s_%s.png", chartName, time.Now().Format("20060102-150405"))
	pngFile := tgbotapi.FileBytes{
		Name:  fileName,
		Bytes: graph,
	}

	if len(graph) < maxSizePhoto {
		photoMsg := tgbotapi.NewPhotoUpload(chatID, pngFile)
		photoMsg.Caption = chartCaption(chartName)
		if _, err := api.Send(photoMsg); err != nil {
			log.Printf("Error sending chart %s: %v", chartName, err)
			api.Send(tgbotapi.NewMessage(chatID, fmt.Sprintf("Could not send the %s chart. Error: %v", chartName, err)))
		}
		return
	}

	docMsg := tgbotapi.NewDocumentUpload(chatID, pngFile)
	docMsg.Caption = chartCaption(chartName)
	if _, err := api.Send(docMsg); err != nil {
		log.Printf("Error sending chart %s: %v", chartName, err)
		api.Send(tgbotapi.NewMessage(chatID, fmt.Sprintf("Could not send the %s chart. Error: %v", chartName, err)))
	}
}

func chartCaption(chartName string) string {
	switch chartName {
	case "salespersons":
		return "Customers per salesperson\nBar height is the number of customers owned by the salesperson."
	case "regions":
		return "Customers per region\nThe ten biggest regions by customer count."
	case "share":
		return "Salesperson share\nEach slice is one salesperson's share of the counted customers."
	default:
		return fmt.Sprintf("Customer chart: %s", chartName)
	}
}
