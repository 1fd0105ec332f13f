package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/bigprints/docgen/internal/config"
	"github.com/bigprints/docgen/internal/form"
	"github.com/bigprints/docgen/internal/logger"
	"github.com/bigprints/docgen/internal/models"
	"github.com/bigprints/docgen/internal/policy"
	"github.com/bigprints/docgen/internal/session"
	"github.com/bigprints/docgen/internal/webhook"
	"go.uber.org/zap"
)

var (
	version   string
	buildDate string
)

// printResult renders the outcome of a submission attempt.
func printResult(res models.SubmissionResult) {
	if res.Success {
		fmt.Println("Submitted successfully.")
		if res.DocumentURL != "" {
			fmt.Println("Document:", res.DocumentURL)
		}
		return
	}
	fmt.Println("Submission failed:", res.Error)
}

// quotationShell runs the quotation sub-loop, editing one draft until it is
// submitted or abandoned.
func quotationShell(scanner *bufio.Scanner, f *form.QuotationForm, user *models.AuthUser) {
	for {
		fmt.Print("quotation> ")
		if !scanner.Scan() {
			return
		}
		args := strings.Fields(strings.TrimSpace(scanner.Text()))
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "help":
			fmt.Println("Available commands: help, show, totals, set <field> <value>, add, rm <n>, item <n> <field> <value>, mock, submit, back")
			fmt.Println("Fields: date, salutation, client, company, address, timetable, downpayment, custom")
			fmt.Println("Item fields: name, size, specs, qty, price")
			fmt.Println("Salutations:", strings.Join(models.SalutationOptions, ", "))
			fmt.Println("Downpayments:", strings.Join(models.DownpaymentOptions, ", "))
		case "show":
			d := f.Draft()
			fmt.Printf("Date: %s\nSalutation: %s\nClient: %s\nCompany: %s\nAddress: %s\nTimetable: %s\nDownpayment: %s (custom: %s)\n",
				d.Date, d.Salutation, d.ClientName, d.CompanyName, d.Address, d.Timetable, d.Downpayment, d.CustomDownpayment)
			for i, it := range d.Items {
				fmt.Printf("  item %d: %s | %s | %s | qty %d | unit %s\n",
					i+1, it.Name, it.Size, it.Specifications, it.Qty, form.FormatAmount(it.UnitPrice))
			}
			if res := f.Result(); res != nil {
				printResult(*res)
			}
		case "totals":
			t := f.Totals()
			fmt.Printf("Subtotal: %s\nDownpayment: %s\nTotal: %s\n",
				form.FormatAmount(t.Subtotal), form.FormatAmount(t.DownpaymentAmount), form.FormatAmount(t.Total))
		case "set":
			if len(args) < 3 {
				fmt.Println("Usage: set <field> <value>")
				continue
			}
			value := strings.Join(args[2:], " ")
			switch args[1] {
			case "date":
				f.SetDate(value)
			case "salutation":
				f.SetSalutation(value)
			case "client":
				f.SetClientName(value)
			case "company":
				f.SetCompanyName(value)
			case "address":
				f.SetAddress(value)
			case "timetable":
				f.SetTimetable(value)
			case "downpayment":
				f.SetDownpayment(value)
			case "custom":
				f.SetCustomDownpayment(value)
			default:
				fmt.Println("Unknown field:", args[1])
			}
		case "add":
			f.AddItem()
			fmt.Printf("Item %d added\n", len(f.Draft().Items))
		case "rm":
			if len(args) < 2 {
				fmt.Println("Usage: rm <n>")
				continue
			}
			id, ok := itemID(f, args[1])
			if !ok {
				continue
			}
			if !f.RemoveItem(id) {
				fmt.Println("Cannot remove the last remaining item")
			}
		case "item":
			if len(args) < 4 {
				fmt.Println("Usage: item <n> <field> <value>")
				continue
			}
			id, ok := itemID(f, args[1])
			if !ok {
				continue
			}
			value := strings.Join(args[3:], " ")
			switch args[2] {
			case "name":
				f.SetItemName(id, value)
			case "size":
				f.SetItemSize(id, value)
			case "specs":
				f.SetItemSpecifications(id, value)
			case "qty":
				qty, err := strconv.Atoi(value)
				if err != nil {
					fmt.Println("Quantity must be an integer")
					continue
				}
				f.SetItemQty(id, qty)
			case "price":
				price, err := strconv.ParseFloat(value, 64)
				if err != nil {
					fmt.Println("Price must be a number")
					continue
				}
				f.SetItemUnitPrice(id, price)
			default:
				fmt.Println("Unknown item field:", args[2])
			}
		case "mock":
			// Mock data is a branch-gated convenience.
			if user.Branch != "test" {
				fmt.Println("Mock data is not available for your branch")
				continue
			}
			f.FillMockData()
			fmt.Println("Mock data loaded")
		case "submit":
			res, err := f.Submit(context.Background(), user.Email, user.Branch)
			if err != nil {
				fmt.Println(err)
				continue
			}
			printResult(res)
		case "back":
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
	}
}

// receiptShell runs the acknowledgement-receipt sub-loop.
func receiptShell(scanner *bufio.Scanner, f *form.ReceiptForm, user *models.AuthUser) {
	for {
		fmt.Print("receipt> ")
		if !scanner.Scan() {
			return
		}
		args := strings.Fields(strings.TrimSpace(scanner.Text()))
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "help":
			fmt.Println("Available commands: help, show, set <field> <value>, submit, back")
			fmt.Println("Fields: date, received, client, phone, company, address, amount, type, project, mode, ref")
			fmt.Println("Payment types:", strings.Join(models.PaymentTypeOptions, ", "))
			fmt.Println("Payment modes:", strings.Join(models.ModeOfPaymentOptions, ", "))
		case "show":
			d := f.Draft()
			fmt.Printf("Date: %s\nReceived: %s\nClient: %s\nPhone: %s\nCompany: %s\nAddress: %s\nAmount: %s\nPayment type: %s\nProject: %s\nMode: %s\n",
				d.Date, d.ReceivedDate, d.ClientName, d.PhoneNumber, d.CompanyName, d.Address, d.Amount, d.PaymentType, d.ProjectType, d.ModeOfPayment)
			if f.RequiresReference() {
				fmt.Printf("Reference: %s\n", d.ReferenceNumber)
			}
			if res := f.Result(); res != nil {
				printResult(*res)
			}
		case "set":
			if len(args) < 3 {
				fmt.Println("Usage: set <field> <value>")
				continue
			}
			value := strings.Join(args[2:], " ")
			switch args[1] {
			case "date":
				f.SetDate(value)
			case "received":
				f.SetReceivedDate(value)
			case "client":
				f.SetClientName(value)
			case "phone":
				f.SetPhoneNumber(value)
			case "company":
				f.SetCompanyName(value)
			case "address":
				f.SetAddress(value)
			case "amount":
				f.SetAmount(value)
			case "type":
				f.SetPaymentType(value)
			case "project":
				f.SetProjectType(value)
			case "mode":
				f.SetModeOfPayment(value)
			case "ref":
				f.SetReferenceNumber(value)
			default:
				fmt.Println("Unknown field:", args[1])
			}
		case "submit":
			res, err := f.Submit(context.Background(), user.Email, user.Branch)
			if err != nil {
				fmt.Println(err)
				continue
			}
			printResult(res)
		case "back":
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
	}
}

// repl runs the interactive shell loop, accepting commands to manage the
// session and open document forms.
func repl(store *session.Store, client *webhook.Client, zapLogger *zap.Logger) {
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 64*1024), 64*1024)

	quotation := form.NewQuotationForm(client, zapLogger)
	receipt := form.NewReceiptForm(client, zapLogger)

	for {
		fmt.Print("docgen> ")
		if !scanner.Scan() {
			break
		}
		args := strings.Fields(strings.TrimSpace(scanner.Text()))
		if len(args) == 0 {
			continue
		}
		switch args[0] {
		case "help":
			fmt.Println("Available commands: help, login <id-token>, demo, whoami, logout, quotation, receipt, exit")
		case "login":
			if len(args) < 2 {
				fmt.Println("Usage: login <id-token>")
				continue
			}
			user, err := store.Establish(args[1])
			if err != nil {
				fmt.Println("Login failed:", err)
				continue
			}
			fmt.Printf("Signed in as %s (%s)\n", user.Name, user.Email)
		case "demo":
			user := store.EstablishDemo()
			fmt.Printf("Signed in as %s\n", user.Name)
		case "whoami":
			user := store.User()
			if user == nil {
				fmt.Println("Not signed in")
				continue
			}
			fmt.Printf("%s <%s> branch=%s\n", user.Name, user.Email, user.Branch)
		case "logout":
			store.Clear()
			fmt.Println("Signed out")
		case "quotation":
			user := store.User()
			if user == nil {
				fmt.Println("Sign in first")
				continue
			}
			quotationShell(scanner, quotation, user)
		case "receipt":
			user := store.User()
			if user == nil {
				fmt.Println("Sign in first")
				continue
			}
			receiptShell(scanner, receipt, user)
		case "exit":
			fmt.Println("Bye")
			return
		default:
			fmt.Println("Unknown command. Type 'help' for a list of commands.")
		}
	}
}

// itemID resolves a 1-based item index entered in the shell to the item's ID.
func itemID(f *form.QuotationForm, arg string) (string, bool) {
	n, err := strconv.Atoi(arg)
	items := f.Draft().Items
	if err != nil || n < 1 || n > len(items) {
		fmt.Println("No such item")
		return "", false
	}
	return items[n-1].ID, true
}

// main wires the session store, the webhook client and the shell together.
func main() {
	var showVer bool
	flag.BoolVar(&showVer, "version", false, "show build version and date")
	options := config.Parse()

	if showVer {
		fmt.Printf("docgen Client\nVersion: %s\nBuild Date: %s\n", version, buildDate)
		return
	}

	appLog := logger.New()
	defer func() { _ = appLog.Log.Sync() }()
	if err := appLog.Init("Warn"); err != nil {
		log.Fatal(err)
	}
	zapLogger := appLog.Log

	kv, err := session.OpenFileStore(options.SessionFile)
	if err != nil {
		log.Fatal(err)
	}

	store := session.New(kv, policy.Default(), nil, zapLogger)
	if user := store.Restore(); user != nil {
		fmt.Printf("Welcome back, %s (%s)\n", user.Name, user.Email)
	}

	client := webhook.NewClient(options.WebhookURL, zapLogger)
	repl(store, client, zapLogger)
}
