package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitials(t *testing.T) {
	assert.Equal(t, "MT", Initials("margaret  tan lee"))
	assert.Equal(t, "Z", Initials("zhang"))
	assert.Equal(t, "", Initials("   "))
}

func TestNewBuddyFallsBackToUsername(t *testing.T) {
	b := NewBuddy(User{ID: "u1", Username: "agnes"}, Profile{UserID: "u1"})
	assert.Equal(t, "agnes", b.Name)
	assert.Equal(t, "A", b.Avatar)
	assert.NotNil(t, b.Interests)

	f := Friendship{RequesterID: "u1", AddresseeID: "u2"}
	assert.Equal(t, "u2", f.Other("u1"))
	assert.Equal(t, "u1", f.Other("u2"))
}
