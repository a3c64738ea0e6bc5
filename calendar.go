package main

import (
	"context"
	"errors"
	"strings"
	"time"

	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
)

type googleCalendar struct {
	service    *calendar.Service
	calendarID string
	maxResults int64
	loc        *time.Location
}

func remoteErr(system, op string, err error) *RemoteError {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return &RemoteError{System: system, Op: op, Code: apiErr.Code, Err: err}
	}
	return &RemoteError{System: system, Op: op, Err: err}
}

func sendUpdates(notify bool) string {
	if notify {
		return "all"
	}
	return "none"
}

func (g *googleCalendar) ListUpcoming(ctx context.Context) ([]Event, error) {
	res, err := g.service.Events.List(g.calendarID).
		TimeMin(time.Now().In(g.loc).Format(time.RFC3339)).
		MaxResults(g.maxResults).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, remoteErr("calendar", "list", err)
	}

	events := make([]Event, 0, len(res.Items))
	for _, item := range res.Items {
		events = append(events, fromGoogleEvent(item))
	}
	return events, nil
}

func (g *googleCalendar) Insert(ctx context.Context, ev Event, notify bool) (Event, error) {
	attendees := make([]*calendar.EventAttendee, 0, len(ev.Attendees))
	for _, email := range ev.Attendees {
		attendees = append(attendees, &calendar.EventAttendee{Email: email})
	}

	body := &calendar.Event{
		Summary:     ev.Summary,
		Description: ev.Description,
		Start: &calendar.EventDateTime{
			DateTime: ev.Start.Format(time.RFC3339),
			TimeZone: g.loc.String(),
		},
		End: &calendar.EventDateTime{
			DateTime: ev.End.Format(time.RFC3339),
			TimeZone: g.loc.String(),
		},
		Attendees: attendees,
		// Fixed business policy: a mail reminder the day before and an alert
		// ten minutes before. Not user-configurable.
		Reminders: &calendar.EventReminders{
			UseDefault: false,
			Overrides: []*calendar.EventReminder{
				{Method: "email", Minutes: 24 * 60},
				{Method: "popup", Minutes: 10},
			},
			ForceSendFields: []string{"UseDefault"},
		},
	}

	created, err := g.service.Events.Insert(g.calendarID, body).
		SendUpdates(sendUpdates(notify)).
		Context(ctx).
		Do()
	if err != nil {
		return Event{}, remoteErr("calendar", "insert", err)
	}
	return fromGoogleEvent(created), nil
}

func (g *googleCalendar) Delete(ctx context.Context, eventID string, notify bool) error {
	err := g.service.Events.Delete(g.calendarID, eventID).
		SendUpdates(sendUpdates(notify)).
		Context(ctx).
		Do()
	if err != nil {
		return remoteErr("calendar", "delete", err)
	}
	return nil
}

func (g *googleCalendar) BusyBetween(ctx context.Context, start, end time.Time) (bool, error) {
	res, err := g.service.Events.List(g.calendarID).
		TimeMin(start.Format(time.RFC3339)).
		TimeMax(end.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return false, remoteErr("calendar", "list", err)
	}
	return anyBookedAppointment(res.Items), nil
}

// anyBookedAppointment reports whether any of the listed events is a
// still-confirmed appointment created by this system. All-day blocks,
// cancelled events and foreign calendar entries don't count.
func anyBookedAppointment(items []*calendar.Event) bool {
	for _, item := range items {
		if item.Status != "cancelled" && strings.HasPrefix(item.Summary, summaryPrefix) {
			return true
		}
	}
	return false
}

func fromGoogleEvent(item *calendar.Event) Event {
	ev := Event{
		ID:          item.Id,
		Summary:     item.Summary,
		Description: item.Description,
		HTMLLink:    item.HtmlLink,
		Status:      item.Status,
	}
	ev.Start = eventTime(item.Start)
	ev.End = eventTime(item.End)
	for _, a := range item.Attendees {
		ev.Attendees = append(ev.Attendees, a.Email)
	}
	return ev
}

// eventTime extracts the start or end of a Google event. Timed events
// carry an RFC 3339 DateTime; all-day events carry only a Date.
func eventTime(edt *calendar.EventDateTime) time.Time {
	if edt == nil {
		return time.Time{}
	}
	if edt.DateTime != "" {
		t, _ := time.Parse(time.RFC3339, edt.DateTime)
		return t
	}
	if edt.Date != "" {
		t, _ := time.Parse("2006-01-02", edt.Date)
		return t
	}
	return time.Time{}
}
