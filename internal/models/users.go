package models

import (
	"regexp"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"guardian/pkg/errors"
)

type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"size:255;uniqueIndex"`
	PasswordHash string    `json:"-" gorm:"size:255"`
	CreatedAt    time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt    time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

const (
	GenderMale   = "Male"
	GenderFemale = "Female"
	GenderOther  = "Other"
)

// Profile holds a user's identity and emergency contacts. One row per user,
// overwritten wholesale on every save.
type Profile struct {
	UserID            uint      `json:"userId" gorm:"primaryKey"`
	Name              string    `json:"name" gorm:"size:255"`
	Age               int       `json:"age"`
	Gender            string    `json:"gender" gorm:"size:32"`
	Place             string    `json:"place" gorm:"size:255"`
	EmergencyContacts []string  `json:"emergencyContacts" gorm:"serializer:json"`
	CreatedAt         time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt         time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

// ProfileInput is the raw profile form. Age arrives as text, as typed.
type ProfileInput struct {
	Name     string `json:"name"`
	Age      string `json:"age"`
	Gender   string `json:"gender"`
	Place    string `json:"place"`
	Contact1 string `json:"contact1"`
	Contact2 string `json:"contact2"`
}

var phonePattern = regexp.MustCompile(`^[0-9]{10}$`)

// Validate checks the form and builds the profile to store. All checks run
// before any database write; the second contact is optional.
func (in ProfileInput) Validate() (*Profile, error) {
	if in.Name == "" || in.Age == "" || in.Gender == "" || in.Place == "" || in.Contact1 == "" {
		return nil, errors.WithCode(errors.CodeInvalidInput, "Please fill in all required fields (Contact 1 is mandatory)")
	}
	age, err := strconv.Atoi(in.Age)
	if err != nil || age <= 0 {
		return nil, errors.WithCode(errors.CodeInvalidInput, "Please enter a valid positive number for age.")
	}
	switch in.Gender {
	case GenderMale, GenderFemale, GenderOther:
	default:
		return nil, errors.WithCode(errors.CodeInvalidInput, "Please select a valid gender.")
	}
	if !phonePattern.MatchString(in.Contact1) {
		return nil, errors.WithCode(errors.CodeInvalidInput, "Please enter a valid 10-digit phone number for Contact 1.")
	}
	contacts := []string{in.Contact1}
	if in.Contact2 != "" {
		if !phonePattern.MatchString(in.Contact2) {
			return nil, errors.WithCode(errors.CodeInvalidInput, "Please enter a valid 10-digit phone number for Contact 2.")
		}
		contacts = append(contacts, in.Contact2)
	}
	return &Profile{
		Name:              in.Name,
		Age:               age,
		Gender:            in.Gender,
		Place:             in.Place,
		EmergencyContacts: contacts,
	}, nil
}

// CreateUser registers a new account with a bcrypt password hash.
func CreateUser(db *gorm.DB, email, password string) (*User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &User{Email: email, PasswordHash: string(hash)}
	if err := db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// AuthenticateUser checks email/password and returns the matching user.
func AuthenticateUser(db *gorm.DB, email, password string) (*User, error) {
	var user User
	if err := db.Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, err
	}
	return &user, nil
}

// SaveProfile overwrites the user's profile in a single atomic upsert.
func SaveProfile(db *gorm.DB, userID uint, profile *Profile) error {
	profile.UserID = userID
	return db.Clauses(clause.OnConflict{UpdateAll: true}).Create(profile).Error
}

// GetProfile fetches the profile for a user.
func GetProfile(db *gorm.DB, userID uint) (*Profile, error) {
	var profile Profile
	if err := db.First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}
