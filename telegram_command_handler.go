package main

import (
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api"

	"github.com/pivolan/customer_dashboard/domain/models"
	"github.com/pivolan/customer_dashboard/plot"
)

func handleCommand(api *tgbotapi.BotAPI, update tgbotapi.Update) {
	fullCommand := update.Message.Command()

	topPrefix := "top"
	leastPrefix := "least"
	searchPrefix := "search_"

	switch {
	case fullCommand == "start" || fullCommand == "help":
		handleStartCommand(api, update)

	case strings.HasPrefix(fullCommand, topPrefix), strings.HasPrefix(fullCommand, leastPrefix):
		// "/top_10" and "/least_3" carry direction and N in the command itself
		handleRankCommand(api, update, ParseRankSpec(fullCommand))

	case strings.HasPrefix(fullCommand, searchPrefix):
		query := strings.TrimPrefix(fullCommand, searchPrefix)
		if query == "" {
			msg := tgbotapi.NewMessage(update.Message.Chat.ID, "Add the name to look for after search_, like /search_ali")
			api.Send(msg)
			return
		}
		handleSearchCommand(api, update, query)

	case fullCommand == "summary":
		handleSummaryCommand(api, update)
	case fullCommand == "regions":
		handleRegionsCommand(api, update)
	case fullCommand == "unassigned":
		handleUnassignedCommand(api, update)
	case fullCommand == "geo":
		handleGeoCommand(api, update)
	case fullCommand == "chart":
		handleChartCommand(api, update)
	case fullCommand == "export":
		handleExportCommand(api, update)

	default:
		msg := tgbotapi.NewMessage(update.Message.Chat.ID, "Unknown command. Use /summary, /top_5, /least_3, /regions, /unassigned, /search_<name>, /geo, /chart or /export")
		api.Send(msg)
	}
}

// currentSession resolves the chat's dataset, telling the user what to do
// when no file was uploaded yet.
func currentSession(api *tgbotapi.BotAPI, chatID int64) (*DashboardSession, bool) {
	sess, ok := store.GetByChat(chatID)
	if !ok {
		msg := tgbotapi.NewMessage(chatID, "No dataset yet. Send a customer file into the chat first.")
		api.Send(msg)
		return nil, false
	}
	return sess, true
}

func sendPre(api *tgbotapi.BotAPI, chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, "<pre>\n"+text+"\n</pre>")
	msg.ParseMode = tgbotapi.ModeHTML
	api.Send(msg)
}

func handleRankCommand(api *tgbotapi.BotAPI, update tgbotapi.Update, spec models.RankSpec) {
	sess, ok := currentSession(api, update.Message.Chat.ID)
	if !ok {
		return
	}
	sendRankReply(api, update.Message.Chat.ID, sess, spec)
}

func sendRankReply(api *tgbotapi.BotAPI, chatID int64, sess *DashboardSession, spec models.RankSpec) {
	data := ComputeDashboard(sess.Dataset, nil, regionTable)
	ranked := RankCounts(data.SalespersonCounts, spec)

	title := fmt.Sprintf("Top %d salespersons", spec.N)
	if spec.Direction == models.RankLeast {
		title = fmt.Sprintf("Least %d salespersons", spec.N)
	}
	sendPre(api, chatID, title+"\n"+FormatCounts("Salesperson", ranked))
}

func handleSummaryCommand(api *tgbotapi.BotAPI, update tgbotapi.Update) {
	sess, ok := currentSession(api, update.Message.Chat.ID)
	if !ok {
		return
	}
	data := ComputeDashboard(sess.Dataset, nil, regionTable)
	sendPre(api, update.Message.Chat.ID, FormatSummary(data.Summary))
}

func handleRegionsCommand(api *tgbotapi.BotAPI, update tgbotapi.Update) {
	sess, ok := currentSession(api, update.Message.Chat.ID)
	if !ok {
		return
	}
	data := ComputeDashboard(sess.Dataset, nil, regionTable)
	if len(data.RegionCounts) == 0 {
		api.Send(tgbotapi.NewMessage(update.Message.Chat.ID, "The dataset has no region values."))
		return
	}
	sendPre(api, update.Message.Chat.ID, FormatCounts("Region", data.RegionCounts))
}

func handleUnassignedCommand(api *tgbotapi.BotAPI, update tgbotapi.Update) {
	sess, ok := currentSession(api, update.Message.Chat.ID)
	if !ok {
		return
	}
	data := ComputeDashboard(sess.Dataset, nil, regionTable)
	sendPre(api, update.Message.Chat.ID, FormatUnassigned(data.Unassigned, 30))
}

func handleGeoCommand(api *tgbotapi.BotAPI, update tgbotapi.Update) {
	sess, ok := currentSession(api, update.Message.Chat.ID)
	if !ok {
		return
	}
	data := ComputeDashboard(sess.Dataset, nil, regionTable)
	if len(data.Geo) == 0 {
		api.Send(tgbotapi.NewMessage(update.Message.Chat.ID, "The dataset has no region values."))
		return
	}
	sendPre(api, update.Message.Chat.ID, FormatGeo(data.Geo))
}

func handleSearchCommand(api *tgbotapi.BotAPI, update tgbotapi.Update, query string) {
	sess, ok := currentSession(api, update.Message.Chat.ID)
	if !ok {
		return
	}
	criteria := DefaultCriteria(Clean(sess.Dataset))
	criteria.NameQuery = query
	data := ComputeDashboard(sess.Dataset, &criteria, regionTable)
	if data.NoMatch {
		api.Send(tgbotapi.NewMessage(update.Message.Chat.ID, fmt.Sprintf("No customers match %q.", query)))
		return
	}
	sendPre(api, update.Message.Chat.ID, FormatRecords(data.View, 30))
}

func handleChartCommand(api *tgbotapi.BotAPI, update tgbotapi.Update) {
	sess, ok := currentSession(api, update.Message.Chat.ID)
	if !ok {
		return
	}
	data := ComputeDashboard(sess.Dataset, nil, regionTable)
	if len(data.SalespersonCounts) == 0 {
		api.Send(tgbotapi.NewMessage(update.Message.Chat.ID, "No rows with both customer and salesperson, nothing to chart."))
		return
	}

	labels, values := countsSeries(data.SalespersonCounts)
	graph, err := plot.DrawCountsBar(labels, values, "Customers per salesperson")
	if err != nil {
		log.Printf("Error drawing salesperson chart: %v", err)
	} else {
		sendChart(graph, "salespersons", update.Message.Chat.ID, api)
	}

	labels, values = countsSeries(data.TopFive)
	pie, err := plot.DrawPie(labels, values, "Top 5 salespersons")
	if err != nil {
		log.Printf("Error drawing share pie: %v", err)
	} else {
		sendChart(pie, "share", update.Message.Chat.ID, api)
	}

	if len(data.RegionCounts) > 0 {
		labels, values = countsSeries(data.RegionCounts)
		graph, err = plot.DrawCountsBar(labels, values, "Customers per region")
		if err != nil {
			log.Printf("Error drawing region chart: %v", err)
		} else {
			sendChart(graph, "regions", update.Message.Chat.ID, api)
		}
	}
}

func handleExportCommand(api *tgbotapi.BotAPI, update tgbotapi.Update) {
	sess, ok := currentSession(api, update.Message.Chat.ID)
	if !ok {
		return
	}
	data := ComputeDashboard(sess.Dataset, nil, regionTable)
	sendExports(api, update.Message.Chat.ID, sess.Dataset.Columns, data.Clean)
}

func handleStartCommand(api *tgbotapi.BotAPI, update tgbotapi.Update) {
	welcomeText := `Hi! 👋

I build customer dashboards out of sales spreadsheets.

What I can do:
- Read csv and xlsx customer lists
- Accept gzip, lz4 and zip archives
- Count customers per salesperson and per region
- Find customers without a salesperson
- Draw distribution charts and export back to xlsx/csv

How to work with me:
1. Send a customer file right into the chat
2. Or send any message to get a web upload link
3. After the upload, use the commands below

Commands:
/summary - dataset totals
/top_5, /least_3 - salesperson rankings
/regions - customers per region
/unassigned - customers without a salesperson
/search_<name> - find customers by name
/geo - region counts with map coordinates
/chart - distribution charts
/export - the current rows as xlsx and csv
`
	msg := tgbotapi.NewMessage(update.Message.Chat.ID, welcomeText)
	api.Send(msg)
}
