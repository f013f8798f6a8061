package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestEmptyUpdatesProduceEmptyPatches(t *testing.T) {
	assert.Empty(t, HomeProfileUpdate{}.Patch())
	assert.Empty(t, ApplianceUpdate{}.Patch())
	assert.Empty(t, ServiceRecordUpdate{}.Patch())
	assert.Empty(t, ReminderUpdate{}.Patch())
}

func TestAppliancePatchNormalizesDates(t *testing.T) {
	d, err := ParseDate("2026-05-01T10:00:00Z")
	assert.NoError(t, err)

	patch := ApplianceUpdate{
		Notes:                  ptr("descaled"),
		WarrantyExpirationDate: &d,
	}.Patch()

	assert.Equal(t, map[string]any{
		"notes":                    "descaled",
		"warranty_expiration_date": "2026-05-01",
	}, patch)
}

func TestReminderPatchKeepsFalseValues(t *testing.T) {
	patch := ReminderUpdate{Completed: ptr(false), Recurring: ptr(false)}.Patch()
	assert.Equal(t, map[string]any{"completed": false, "recurring": false}, patch)
}

func TestServiceRecordCreateRow(t *testing.T) {
	d, _ := ParseDate("2025-02-14")
	row := ServiceRecordCreate{
		ApplianceID:  "a1",
		Date:         &d,
		ServiceType:  "Repair",
		ProviderName: "Acme HVAC",
		Cost:         ptr(149.99),
	}.Row()

	assert.Equal(t, "2025-02-14", row["date"])
	assert.Equal(t, 149.99, row["cost"])
	assert.Nil(t, row["provider_contact"])
	assert.Nil(t, row["invoice_document"])
}

func TestHomeProfileCreateRow(t *testing.T) {
	row := HomeProfileCreate{Address: "1 Elm St", ConstructionYear: 1987}.Row("user-1")
	assert.Equal(t, "user-1", row["user_id"])
	assert.Nil(t, row["images"])

	row = HomeProfileCreate{Address: "1 Elm St", ConstructionYear: 1987, Images: []string{"a.png"}}.Row("user-1")
	assert.Equal(t, []string{"a.png"}, row["images"])
}
