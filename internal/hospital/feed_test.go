package hospital

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const feedFixture = `{
	"Calgary Zone": {
		"Emergency": [
			{"Name": "Foothills Medical Centre", "WaitTime": "2 hr 30 min", "Category": "Emergency", "Address": "1403 29 St NW"},
			{"Name": "  ", "WaitTime": "1 hr", "Category": "Emergency"}
		],
		"Urgent Care": [
			{"Name": "Sheldon M. Chumir Centre", "WaitTime": "45 min", "Category": "Urgent Care"}
		]
	},
	"Edmonton Zone": {
		"Emergency": [
			{"Name": "Grey Nuns Community Hospital", "WaitTime": "Closed", "Category": "Emergency", "Note": "Reopens at 7 AM"}
		]
	}
}`

func TestFeedClientFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(feedFixture))
	}))
	defer srv.Close()

	c := NewFeedClient(srv.URL, 0)
	records, err := c.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Name < records[j].Name })
	want := []FacilityRecord{
		{Name: "Foothills Medical Centre", Category: CategoryEmergency, Region: "Calgary Zone", WaitTime: "2 hr 30 min", Address: "1403 29 St NW"},
		{Name: "Grey Nuns Community Hospital", Category: CategoryEmergency, Region: "Edmonton Zone", WaitTime: "Closed", Note: "Reopens at 7 AM"},
		{Name: "Sheldon M. Chumir Centre", Category: CategoryUrgent, Region: "Calgary Zone", WaitTime: "45 min"},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestFeedClientUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewFeedClient(srv.URL, 0)
	if _, err := c.Fetch(context.Background()); err == nil {
		t.Error("expected an error on 503")
	}
}

func TestMapCategory(t *testing.T) {
	tests := []struct {
		feed string
		want Category
	}{
		{"Emergency", CategoryEmergency},
		{"Urgent Care", CategoryUrgent},
		{"Urgent Care Centre", CategoryUrgent},
		{"Community Clinic", CategoryPrimaryCare},
		{"", CategoryPrimaryCare},
	}
	for _, tt := range tests {
		if got := mapCategory(tt.feed); got != tt.want {
			t.Errorf("mapCategory(%q) = %s, want %s", tt.feed, got, tt.want)
		}
	}
}
