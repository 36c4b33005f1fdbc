package courier

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	c, ok := Lookup(" JNE ")
	assert.True(t, ok)
	assert.Equal(t, Courier{Code: "jne", Name: "JNE"}, c)

	c, ok = Lookup("first")
	assert.True(t, ok)
	assert.Equal(t, "First Logistics", c.Name)

	_, ok = Lookup("dhl")
	assert.False(t, ok)
}

func TestAll_ReturnsCopy(t *testing.T) {
	all := All()
	assert.Len(t, all, 11)
	all[0].Code = "changed"

	_, ok := Lookup("jne")
	assert.True(t, ok)
}

func TestAcceptsPhoneDigits(t *testing.T) {
	assert.True(t, AcceptsPhoneDigits("jne"))
	assert.True(t, AcceptsPhoneDigits("JNE"))
	assert.False(t, AcceptsPhoneDigits("pos"))
}
