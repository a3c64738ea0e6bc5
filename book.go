package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"strings"
	"time"
)

// appointmentDuration is fixed; variable-length appointments are not
// supported.
const appointmentDuration = time.Hour

// BookingRequest carries the six required booking fields. When uses the
// `2006-01-02 15:04` layout.
type BookingRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Type      string `json:"type"`
	When      string `json:"date"`
}

type BookingResult struct {
	EventID      string `json:"eventId"`
	CalendarLink string `json:"calendarLink"`
}

func (r *BookingRequest) validate() (AppointmentType, *ValidationError) {
	required := []struct {
		name, value string
	}{
		{"firstName", r.FirstName},
		{"lastName", r.LastName},
		{"email", r.Email},
		{"phone", r.Phone},
		{"type", r.Type},
		{"date", r.When},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return "", &ValidationError{Field: f.name, Reason: "required"}
		}
	}

	typ, ok := normalizeType(r.Type)
	if !ok {
		return "", &ValidationError{Field: "type", Reason: fmt.Sprintf("unknown appointment type %q", r.Type)}
	}
	return typ, nil
}

// Book performs the two-step dual write: calendar insert first (the leading
// write), then ledger append. If the insert fails nothing is written
// anywhere. If the append fails, a compensating calendar delete is attempted;
// only when that also fails is the system left inconsistent, reported as a
// PartialWriteError.
func (a *App) Book(ctx context.Context, req BookingRequest) (BookingResult, error) {
	typ, verr := req.validate()
	if verr != nil {
		return BookingResult{}, verr
	}
	start, err := time.ParseInLocation(bookingTimeLayout, strings.TrimSpace(req.When), a.loc)
	if err != nil {
		return BookingResult{}, &ValidationError{Field: "date", Reason: fmt.Sprintf("want %q format", bookingTimeLayout)}
	}

	ev := Event{
		Summary: eventSummary(req.FirstName, req.LastName, typ),
		Description: fmt.Sprintf("Type: %s\nEmail: %s\nPhone: %s",
			typ.Display(), req.Email, req.Phone),
		Start:     start,
		End:       start.Add(appointmentDuration),
		Attendees: []string{req.Email, a.cfg.OwnerEmail},
	}

	created, err := a.calendar.Insert(ctx, ev, true)
	if err != nil {
		return BookingResult{}, err
	}
	printVerbosely(2, "  ✨ Calendar event created: %s\n", created.ID)

	row := LedgerRow{
		time.Now().In(a.loc).Format(time.RFC3339),
		req.FirstName,
		req.LastName,
		req.Email,
		req.Phone,
		string(typ),
		start.Format(ledgerTimeLayout),
		created.HTMLLink,
	}
	if err := a.ledger.Append(ctx, row); err != nil {
		if delErr := a.calendar.Delete(ctx, created.ID, true); delErr != nil {
			return BookingResult{}, &PartialWriteError{
				EventID:       created.ID,
				AppendErr:     err,
				CompensateErr: delErr,
			}
		}
		return BookingResult{}, fmt.Errorf("booking rolled back, calendar event %s deleted: %w", created.ID, err)
	}
	printVerbosely(2, "  📥 Ledger row appended\n")

	// Confirmation mail is not critical; a failure is logged inside.
	a.sendConfirmation(ctx, req, typ, start, created.HTMLLink)

	return BookingResult{EventID: created.ID, CalendarLink: created.HTMLLink}, nil
}

func runBook(config *Config, args []string) {
	flags := flag.NewFlagSet("book", flag.ExitOnError)
	var req BookingRequest
	flags.StringVar(&req.FirstName, "first", "", "client first name")
	flags.StringVar(&req.LastName, "last", "", "client last name")
	flags.StringVar(&req.Email, "email", "", "client email")
	flags.StringVar(&req.Phone, "phone", "", "client phone")
	flags.StringVar(&req.Type, "type", "", "appointment type: consultation, followUp or plan")
	flags.StringVar(&req.When, "date", "", "date and time, "+bookingTimeLayout)
	flags.Parse(args)

	ctx := context.Background()
	app, err := newApp(ctx, config)
	if err != nil {
		log.Fatalf("Error initializing: %v", err)
	}
	defer app.Close()

	result, err := app.Book(ctx, req)
	if err != nil {
		log.Fatalf("Error booking appointment: %v", err)
	}
	fmt.Printf("✅ Appointment booked: %s\n", result.EventID)
	if result.CalendarLink != "" {
		fmt.Printf("🔗 %s\n", result.CalendarLink)
	}
}
