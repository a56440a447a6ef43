package response

import (
	"testing"

	"sms_invoicer/internal/domain/entities"
)

func TestFromClients_EmptyIsNotNil(t *testing.T) {
	out := FromClients(nil)
	if out == nil || len(out) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", out)
	}
}

func TestFromClient(t *testing.T) {
	out := FromClient(entities.Client{ID: "cli-1", BusinessID: "biz-1", Name: "Jane Doe", Notes: "back door"})
	if out.ID != "cli-1" || out.BusinessID != "biz-1" || out.Name != "Jane Doe" || out.Notes != "back door" {
		t.Fatalf("unexpected response: %+v", out)
	}
}
