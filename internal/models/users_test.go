package models

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1) // a second pooled conn would see its own empty in-memory db
	require.NoError(t, db.AutoMigrate(&User{}, &Profile{}, &Incident{}, &Alert{}))
	return db
}

func TestProfileInputValidate(t *testing.T) {
	valid := ProfileInput{
		Name: "Asha", Age: "24", Gender: GenderFemale, Place: "Chennai",
		Contact1: "9999999999",
	}

	t.Run("valid without contact2", func(t *testing.T) {
		profile, err := valid.Validate()
		require.NoError(t, err)
		assert.Equal(t, 24, profile.Age)
		assert.Equal(t, []string{"9999999999"}, profile.EmergencyContacts)
	})

	t.Run("valid with contact2", func(t *testing.T) {
		in := valid
		in.Contact2 = "8888888888"
		profile, err := in.Validate()
		require.NoError(t, err)
		assert.Equal(t, []string{"9999999999", "8888888888"}, profile.EmergencyContacts)
	})

	cases := []struct {
		name    string
		mutate  func(*ProfileInput)
		message string
	}{
		{"missing name", func(in *ProfileInput) { in.Name = "" },
			"Please fill in all required fields (Contact 1 is mandatory)"},
		{"missing contact1", func(in *ProfileInput) { in.Contact1 = "" },
			"Please fill in all required fields (Contact 1 is mandatory)"},
		{"missing place", func(in *ProfileInput) { in.Place = "" },
			"Please fill in all required fields (Contact 1 is mandatory)"},
		{"negative age", func(in *ProfileInput) { in.Age = "-5" },
			"Please enter a valid positive number for age."},
		{"zero age", func(in *ProfileInput) { in.Age = "0" },
			"Please enter a valid positive number for age."},
		{"non-numeric age", func(in *ProfileInput) { in.Age = "abc" },
			"Please enter a valid positive number for age."},
		{"unknown gender", func(in *ProfileInput) { in.Gender = "Robot" },
			"Please select a valid gender."},
		{"short contact1", func(in *ProfileInput) { in.Contact1 = "12345" },
			"Please enter a valid 10-digit phone number for Contact 1."},
		{"alpha contact1", func(in *ProfileInput) { in.Contact1 = "99999abc99" },
			"Please enter a valid 10-digit phone number for Contact 1."},
		{"long contact2", func(in *ProfileInput) { in.Contact2 = "12345678901" },
			"Please enter a valid 10-digit phone number for Contact 2."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := valid
			tc.mutate(&in)
			_, err := in.Validate()
			require.Error(t, err)
			assert.Equal(t, tc.message, err.Error())
		})
	}
}

func TestCreateAndAuthenticateUser(t *testing.T) {
	db := openTestDB(t)

	user, err := CreateUser(db, "a@b.com", "pw123456")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, "pw123456", user.PasswordHash)

	t.Run("correct password", func(t *testing.T) {
		got, err := AuthenticateUser(db, "a@b.com", "pw123456")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := AuthenticateUser(db, "a@b.com", "nope")
		assert.Error(t, err)
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := AuthenticateUser(db, "x@y.com", "pw123456")
		assert.Error(t, err)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		_, err := CreateUser(db, "a@b.com", "other")
		assert.Error(t, err)
	})
}

func TestSaveProfileOverwritesWholesale(t *testing.T) {
	db := openTestDB(t)

	first := &Profile{
		Name: "Asha", Age: 24, Gender: GenderFemale, Place: "Chennai",
		EmergencyContacts: []string{"9999999999", "8888888888"},
	}
	require.NoError(t, SaveProfile(db, 7, first))

	// re-save drops contact2 entirely, nothing partial survives
	second := &Profile{
		Name: "Asha R", Age: 25, Gender: GenderFemale, Place: "Madurai",
		EmergencyContacts: []string{"7777777777"},
	}
	require.NoError(t, SaveProfile(db, 7, second))

	got, err := GetProfile(db, 7)
	require.NoError(t, err)
	assert.Equal(t, "Asha R", got.Name)
	assert.Equal(t, 25, got.Age)
	assert.Equal(t, "Madurai", got.Place)
	assert.Equal(t, []string{"7777777777"}, got.EmergencyContacts)

	var count int64
	require.NoError(t, db.Model(&Profile{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestGetProfileMissing(t *testing.T) {
	db := openTestDB(t)
	_, err := GetProfile(db, 42)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
