package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriverValidate(t *testing.T) {
	valid := Driver{
		FirstName:   "Maria",
		LastName:    "Santos",
		Email:       "maria.santos@example.com",
		DateOfBirth: "1987-04-12",
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(*Driver)
	}{
		{"missing first name", func(d *Driver) { d.FirstName = "" }},
		{"missing last name", func(d *Driver) { d.LastName = "" }},
		{"missing email", func(d *Driver) { d.Email = "" }},
		{"malformed email", func(d *Driver) { d.Email = "not-an-email" }},
		{"missing date of birth", func(d *Driver) { d.DateOfBirth = "" }},
		{"wrong date format", func(d *Driver) { d.DateOfBirth = "04/12/1987" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid
			tt.mutate(&d)
			assert.ErrorIs(t, d.Validate(), ErrValidation)
		})
	}
}

func TestVehicleValidate(t *testing.T) {
	valid := Vehicle{Year: 2022, Make: "Toyota", Model: "RAV4"}
	require.NoError(t, valid.Validate())

	assert.ErrorIs(t, Vehicle{Year: 1850, Make: "Toyota", Model: "RAV4"}.Validate(), ErrValidation)
	assert.ErrorIs(t, Vehicle{Year: 2022, Model: "RAV4"}.Validate(), ErrValidation)
	assert.ErrorIs(t, Vehicle{Year: 2022, Make: "Toyota"}.Validate(), ErrValidation)
}

func TestDedupeAdditionalDrivers(t *testing.T) {
	primary := "maria.santos@example.com"
	drivers := []Driver{
		{FirstName: "Dup", Email: "Maria.Santos@Example.com", IsPrimary: true}, // case-insensitive match
		{FirstName: "Kept", Email: "other@example.com", IsPrimary: true},
		{FirstName: "Spaced", Email: "  maria.santos@example.com  "},
	}

	kept, removed := DedupeAdditionalDrivers(primary, drivers)
	assert.Equal(t, 2, removed)
	require.Len(t, kept, 1)
	assert.Equal(t, "Kept", kept[0].FirstName)
	assert.False(t, kept[0].IsPrimary, "stray IsPrimary flags are cleared")
}

func TestDedupeAdditionalDrivers_Idempotent(t *testing.T) {
	drivers := []Driver{
		{FirstName: "A", Email: "a@example.com"},
		{FirstName: "B", Email: "b@example.com"},
	}

	once, removed := DedupeAdditionalDrivers("primary@example.com", drivers)
	assert.Zero(t, removed)
	twice, removed := DedupeAdditionalDrivers("primary@example.com", once)
	assert.Zero(t, removed)
	assert.Equal(t, once, twice)
}

func TestSetVehiclesKeepsLegacyMirror(t *testing.T) {
	var s QuoteSnapshot

	s.SetVehicles([]Vehicle{
		{Year: 2020, Make: "Honda", Model: "Accord"},
		{Year: 2016, Make: "Subaru", Model: "Outback"},
	})
	require.NotNil(t, s.Vehicle)
	assert.Equal(t, s.Vehicles[0], *s.Vehicle)

	s.SetVehicles(nil)
	assert.Nil(t, s.Vehicle)
	assert.Empty(t, s.Vehicles)
}
