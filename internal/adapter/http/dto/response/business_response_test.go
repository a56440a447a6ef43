package response

import (
	"testing"
	"time"

	"sms_invoicer/internal/domain/entities"
)

func TestFromBusiness(t *testing.T) {
	now := time.Now().UTC()
	b := entities.Business{ID: "biz-1", Name: "Joe", CompanyName: "Joe's Plumbing", PhoneNumber: "+15550001111", CreatedAt: now, UpdatedAt: now}

	res := FromBusiness(b)
	if res.ID != "biz-1" || res.Name != "Joe" || res.CompanyName != "Joe's Plumbing" || res.PhoneNumber != "+15550001111" {
		t.Fatalf("unexpected fields: %+v", res)
	}
	if !res.CreatedAt.Equal(now) || !res.UpdatedAt.Equal(now) {
		t.Fatalf("unexpected dates: %+v", res)
	}
}
