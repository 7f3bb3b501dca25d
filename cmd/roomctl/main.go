// roomctl is a small terminal client for the chat API: it lists current
// participants or the messages visible to a given identity.
package main

import (
	"batepapo/domain"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
)

func main() {
	addr := flag.String("addr", "http://localhost:5000", "chat API base URL")
	user := flag.String("user", "", "identity used to list messages")
	limit := flag.String("limit", "", "optional trailing message count")
	flag.Parse()

	switch flag.Arg(0) {
	case "participants":
		listParticipants(*addr)
	case "messages":
		listMessages(*addr, *user, *limit)
	default:
		fmt.Fprintln(os.Stderr, "usage: roomctl [flags] participants|messages")
		os.Exit(2)
	}
}

func listParticipants(addr string) {
	var participants []domain.Participant
	fetch(addr+"/participants", "", &participants)

	fmt.Println(color.New(color.BgBlack, color.FgGreen).Render("  ====== Participants ======"))
	table := newTable()
	table.SetHeader([]string{"Name", "Last Status (ms)"})
	for _, p := range participants {
		table.Append([]string{p.Name, fmt.Sprintf("%d", p.LastStatus)})
	}
	table.Render()
}

func listMessages(addr, user, limit string) {
	if user == "" {
		log.Fatal("messages requires --user")
	}
	url := addr + "/messages"
	if limit != "" {
		url += "?limit=" + limit
	}
	var messages []domain.Message
	fetch(url, user, &messages)

	fmt.Println(color.New(color.BgBlack, color.FgGreen).Render("  ====== Messages ======"))
	table := newTable()
	table.SetHeader([]string{"Time", "From", "To", "Type", "Text"})
	for _, m := range messages {
		messageType := m.Type
		if messageType == domain.TypePrivate {
			messageType = color.FgYellow.Render(messageType)
		}
		table.Append([]string{m.Time, m.From, m.To, messageType, m.Text})
	}
	table.Render()
}

func newTable() *tablewriter.Table {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

func fetch(url, user string, target any) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		log.Fatalf("Failed to build request: %v", err)
	}
	if user != "" {
		req.Header.Set("user", user)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		log.Fatalf("Request failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Fatalf("Unexpected status: %s", resp.Status)
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		log.Fatalf("Failed to decode response: %v", err)
	}
}
