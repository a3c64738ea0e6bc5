package main

import (
	"context"
	"errors"
	"testing"
)

func TestCancelConfirmedDeletion(t *testing.T) {
	cal := &fakeCalendar{}
	app := newTestApp(cal, &fakeLedger{})

	if !app.Cancel(context.Background(), "evt-42") {
		t.Fatal("Cancel returned false for a confirmed deletion")
	}
	if len(cal.deleted) != 1 || cal.deleted[0] != "evt-42" {
		t.Errorf("deleted = %v, want [evt-42]", cal.deleted)
	}
}

func TestCancelUnknownEventReturnsFalse(t *testing.T) {
	cal := &fakeCalendar{deleteErr: &RemoteError{System: "calendar", Op: "delete", Code: 404, Err: errors.New("not found")}}
	app := newTestApp(cal, &fakeLedger{})

	if app.Cancel(context.Background(), "no-such-event") {
		t.Fatal("Cancel returned true for an unknown event")
	}
}

func TestCancelEmptyIDReturnsFalseWithoutRemoteCall(t *testing.T) {
	cal := &fakeCalendar{}
	app := newTestApp(cal, &fakeLedger{})

	if app.Cancel(context.Background(), "  ") {
		t.Fatal("Cancel returned true for an empty id")
	}
	if len(cal.deleted) != 0 {
		t.Errorf("unexpected remote deletes: %v", cal.deleted)
	}
}

func TestCancelLeavesLedgerUntouched(t *testing.T) {
	cal := &fakeCalendar{}
	led := &fakeLedger{rows: []LedgerRow{ledgerRow("Ana", "García", "consultation", "10/11/2030 09:00")}}
	app := newTestApp(cal, led)

	app.Cancel(context.Background(), "evt-1")
	if len(led.rows) != 1 || len(led.appended) != 0 {
		t.Error("cancellation must not touch the ledger")
	}
}
