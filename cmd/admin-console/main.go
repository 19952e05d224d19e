// Command admin-console is a terminal front end for the event back office.
// It drives the same form, validation and submission workflow the web console
// uses, against a running API.
//
// Usage:
//
//	admin-console -base-url http://localhost:8080/api -token $TOKEN list [-search robo]
//	admin-console -base-url ... -token ... create -file event.json
//	admin-console -base-url ... -token ... update -id <event-id> -file event.json
//	admin-console -base-url ... -token ... delete -id <event-id>
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/noah-isme/techfest-api/internal/admin"
	"github.com/noah-isme/techfest-api/internal/models"
)

type consoleNotifier struct{}

func (consoleNotifier) Success(msg string) { fmt.Println(msg) }
func (consoleNotifier) Error(msg string)   { fmt.Fprintln(os.Stderr, msg) }

func main() {
	baseURL := flag.String("base-url", "http://localhost:8080/api", "API base URL")
	token := flag.String("token", os.Getenv("TECHFEST_TOKEN"), "Bearer token for write operations")
	flag.Parse()

	if flag.NArg() == 0 {
		log.Fatal("expected a command: list, create, update, delete")
	}

	logr, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	client := admin.NewClient(*baseURL, admin.StaticToken(*token), nil)
	notify := consoleNotifier{}
	list := admin.NewListView(client, notify, logr)
	ctrl := admin.NewController(client, list, notify, logr)
	ctx := context.Background()

	switch cmd := flag.Arg(0); cmd {
	case "list":
		fs := flag.NewFlagSet("list", flag.ExitOnError)
		search := fs.String("search", "", "Case-insensitive substring filter")
		_ = fs.Parse(flag.Args()[1:])

		if err := list.Load(ctx); err != nil {
			os.Exit(1)
		}
		for _, e := range list.Filter(*search) {
			fmt.Printf("%s\t%s\t%s\t%s\n", e.ID, e.Date, e.EventType, e.Title)
		}

	case "create":
		fs := flag.NewFlagSet("create", flag.ExitOnError)
		file := fs.String("file", "", "Path to the event JSON")
		_ = fs.Parse(flag.Args()[1:])

		dialog := admin.NewDialog(loadForm(*file, nil))
		if err := ctrl.Create(ctx, dialog); err != nil {
			printFieldErrors(dialog.Errors)
			os.Exit(1)
		}

	case "update":
		fs := flag.NewFlagSet("update", flag.ExitOnError)
		id := fs.String("id", "", "Event ID")
		file := fs.String("file", "", "Path to the event JSON")
		_ = fs.Parse(flag.Args()[1:])
		if *id == "" {
			log.Fatal("update requires -id")
		}

		existing, err := client.GetEvent(ctx, *id)
		if err != nil {
			log.Fatalf("failed to load event: %v", err)
		}
		dialog := admin.NewDialog(loadForm(*file, existing))
		if err := ctrl.Update(ctx, *id, dialog); err != nil {
			printFieldErrors(dialog.Errors)
			os.Exit(1)
		}

	case "delete":
		fs := flag.NewFlagSet("delete", flag.ExitOnError)
		id := fs.String("id", "", "Event ID")
		_ = fs.Parse(flag.Args()[1:])
		if *id == "" {
			log.Fatal("delete requires -id")
		}

		confirm := &admin.ConfirmDialog{EventID: *id, Open: true}
		if err := ctrl.Delete(ctx, confirm); err != nil {
			os.Exit(1)
		}

	default:
		log.Fatalf("unknown command %q", cmd)
	}
}

// loadForm seeds a working copy from an existing event (edit flow) or from
// defaults (create flow), then overlays the fields present in the JSON file.
func loadForm(path string, existing *models.Event) *admin.Form {
	form := admin.InitEmpty()
	if existing != nil {
		form = admin.InitFromEvent(*existing)
	}
	if path == "" {
		return form
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("failed to read %s: %v", path, err)
	}
	var overlay models.Event
	if err := json.Unmarshal(raw, &overlay); err != nil {
		log.Fatalf("failed to parse %s: %v", path, err)
	}

	base := models.Event{}
	if existing != nil {
		base = *existing
	}
	merged := mergeEvents(base, overlay)
	return admin.InitFromEvent(merged)
}

// mergeEvents overlays non-zero fields from the file onto the stored event.
// Booleans and zero fees are taken from the overlay as-is; the file is the
// operator's full statement of intent for those.
func mergeEvents(base, overlay models.Event) models.Event {
	merged := overlay
	if merged.Title == "" {
		merged.Title = base.Title
	}
	if merged.Description == "" {
		merged.Description = base.Description
	}
	if merged.Date == "" {
		merged.Date = base.Date
	}
	if merged.Location == "" {
		merged.Location = base.Location
	}
	if merged.EventType == "" {
		merged.EventType = base.EventType
	}
	if merged.Image == "" {
		merged.Image = base.Image
	}
	if merged.Capacity == 0 {
		merged.Capacity = base.Capacity
	}
	return merged
}

func printFieldErrors(errs admin.FieldErrors) {
	for field, msg := range errs {
		fmt.Fprintf(os.Stderr, "  %s: %s\n", field, msg)
	}
}
