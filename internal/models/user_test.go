package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetPasswordStoresHashNotPlaintext(t *testing.T) {
	user := User{}
	require.NoError(t, user.SetPassword("secret-password"))
	require.NotEmpty(t, user.Password)
	require.NotEqual(t, "secret-password", user.Password)
}

func TestCheckPassword(t *testing.T) {
	user := User{}
	require.NoError(t, user.SetPassword("secret-password"))

	require.True(t, user.CheckPassword("secret-password"))
	require.False(t, user.CheckPassword("wrong-password"))
	require.False(t, user.CheckPassword(""))
}

func TestSanitizeStripsCredentials(t *testing.T) {
	user := User{
		Email: "amina@x.com",
		Name:  "Amina",
		Role:  RolePatient,
	}
	require.NoError(t, user.SetPassword("secret-password"))

	sanitized := user.Sanitize()
	require.Equal(t, "amina@x.com", sanitized.Email)
	require.Equal(t, RolePatient, sanitized.Role)
}

func TestAppointmentTerminal(t *testing.T) {
	cases := map[AppointmentStatus]bool{
		StatusScheduled:  false,
		StatusDispatched: false,
		StatusCompleted:  true,
		StatusCancelled:  true,
	}
	for status, want := range cases {
		a := Appointment{Status: status}
		require.Equal(t, want, a.Terminal(), "status %s", status)
	}
}
