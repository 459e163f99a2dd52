package validation

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"unisell/pkg/errors"
)

func TestString(t *testing.T) {
	v, err := String("title", "  Desk lamp ")
	require.NoError(t, err)
	assert.Equal(t, "Desk lamp", v)

	_, err = String("title", " \t ")
	appErr, ok := errors.As(err)
	require.True(t, ok)
	assert.Equal(t, errors.CodeValidation, appErr.Code)
	assert.Equal(t, "title", appErr.Field)
}

func TestPrice(t *testing.T) {
	tests := []struct {
		in   string
		want int
		code string
	}{
		{in: "0", want: 0},
		{in: " 120 ", want: 120},
		{in: "-1", code: errors.CodeInvalidPrice},
		{in: "abc", code: errors.CodeInvalidPrice},
		{in: "12.5", code: errors.CodeInvalidPrice},
		{in: "", code: errors.CodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			text, n, err := Price("price", tt.in)
			if tt.code != "" {
				assert.True(t, errors.Is(err, tt.code), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
			assert.Equal(t, strconv.Itoa(tt.want), text)
		})
	}
}

func TestRatingRejectsOutOfRange(t *testing.T) {
	for _, in := range []string{"0", "6", "-3", "x"} {
		_, err := Rating(in)
		assert.True(t, errors.Is(err, errors.CodeValidation), in)
	}
	for _, in := range []string{"1", "3", " 5 "} {
		_, err := Rating(in)
		assert.NoError(t, err, in)
	}
}

func TestKeywords(t *testing.T) {
	kws, err := Keywords(" books, math ,calculus")
	require.NoError(t, err)
	assert.Equal(t, []string{"books", "math", "calculus"}, kws)

	_, err = Keywords("books,,math")
	assert.True(t, errors.Is(err, errors.CodeValidation))

	_, err = Keywords("   ")
	assert.True(t, errors.Is(err, errors.CodeValidation))
}

func TestSoldFlag(t *testing.T) {
	v, err := SoldFlag("true")
	require.NoError(t, err)
	assert.True(t, v)

	v, err = SoldFlag("false")
	require.NoError(t, err)
	assert.False(t, v)

	for _, in := range []string{"TRUE", "yes", "1", ""} {
		_, err := SoldFlag(in)
		assert.True(t, errors.Is(err, errors.CodeInvalidSoldValue), in)
	}
}

func TestUsername(t *testing.T) {
	v, err := Username("  JDoe42 ")
	require.NoError(t, err)
	assert.Equal(t, "jdoe42", v)

	for _, in := range []string{"abc", "john doe", "jd_oe", ""} {
		_, err := Username(in)
		assert.Error(t, err, in)
	}
}

func TestPassword(t *testing.T) {
	_, err := Password("password", "secret1")
	assert.NoError(t, err)

	_, err = Password("password", "short")
	assert.Error(t, err)

	_, err = Password("password", "has space")
	assert.Error(t, err)

	assert.NoError(t, PasswordConfirmation("secret1", "secret1"))
	assert.Error(t, PasswordConfirmation("secret1", "secret2"))
}

func TestEmailAndDomain(t *testing.T) {
	email, err := Email("Foo@Stevens.EDU")
	require.NoError(t, err)
	assert.Equal(t, "foo@stevens.edu", email)
	assert.Equal(t, "stevens.edu", EmailDomain(email))

	_, err = Email("foo@stevens.com")
	assert.Error(t, err)

	d, err := Domain(" FIT.edu ")
	require.NoError(t, err)
	assert.Equal(t, "fit.edu", d)

	d, err = Domain("cam.ac.uk")
	require.NoError(t, err)
	assert.Equal(t, "cam.ac.uk", d)

	for _, in := range []string{"stevens", "stevens.com", "-bad.edu", "a..edu"} {
		_, err := Domain(in)
		assert.True(t, errors.Is(err, errors.CodeInvalidDomain), in)
	}
}

func TestImageURL(t *testing.T) {
	_, err := ImageURL("https://cdn.example.com/a.jpg")
	assert.NoError(t, err)

	_, err = ImageURL("/public/images/blank.jpg")
	assert.NoError(t, err)

	_, err = ImageURL("not a url")
	assert.Error(t, err)

	assert.Equal(t, "/old.jpg", OptionalImageURL("not a url", "/old.jpg"))
	assert.Equal(t, "/old.jpg", OptionalImageURL("", "/old.jpg"))
	assert.Equal(t, "https://x.edu/n.png", OptionalImageURL("https://x.edu/n.png", "/old.jpg"))
}
