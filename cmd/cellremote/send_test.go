package main

import (
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
)

func TestRunSend_PrintsLog(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sendmsg" {
			http.NotFound(w, r)
			return
		}
		if got := r.URL.Query().Get("msg"); got != "turn left" {
			t.Errorf("msg = %q, want %q", got, "turn left")
		}
		if got := r.URL.Query().Get("botname"); got != "robot1" {
			t.Errorf("botname = %q, want %q", got, "robot1")
		}
		_, _ = w.Write([]byte("OK"))
	}))
	defer ts.Close()

	output, err := executeCmd(t, "send", "--server", ts.URL, "--robot", "robot1", "--wait", "5s", "turn", "left")
	if err != nil {
		t.Fatalf("send command error = %v", err)
	}

	want := "OK<br>About to send to robot1: turn left<br>"
	if strings.TrimSpace(output) != want {
		t.Errorf("output = %q, want %q", output, want)
	}
}

func TestRunSend_FailurePrintsAnnounceOnly(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("robot offline"))
	}))
	defer ts.Close()

	output, err := executeCmd(t, "send", "--server", ts.URL, "--robot", "robot2", "--wait", "5s", "stop")
	if err != nil {
		t.Fatalf("send command error = %v", err)
	}

	want := "About to send to robot2: stop<br>"
	if strings.TrimSpace(output) != want {
		t.Errorf("output = %q, want %q", output, want)
	}
}

func TestRunSend_InvalidServer(t *testing.T) {
	_, err := executeCmd(t, "send", "--server", "localhost:8081", "--robot", "robot1", "--wait", "1s", "go")
	if err == nil || !strings.Contains(err.Error(), "invalid --server") {
		t.Errorf("send command error = %v, want invalid --server", err)
	}
}

func TestHeaderPairs(t *testing.T) {
	got, err := headerPairs([]string{"Authorization: Bearer t", "X-Fleet:north"})
	if err != nil {
		t.Fatalf("headerPairs() error = %v", err)
	}
	want := []string{"Authorization", "Bearer t", "X-Fleet", "north"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("headerPairs() = %v, want %v", got, want)
	}

	for _, bad := range []string{"no-colon", ": value"} {
		if _, err := headerPairs([]string{bad}); err == nil {
			t.Errorf("headerPairs(%q) error = nil", bad)
		}
	}
}
